package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mind-engage/campusmate/internal/admission"
	"github.com/mind-engage/campusmate/internal/auth"
	"github.com/mind-engage/campusmate/internal/config"
	"github.com/mind-engage/campusmate/internal/logger"
	"github.com/mind-engage/campusmate/internal/metrics"
	"github.com/mind-engage/campusmate/internal/randsrc"
	"github.com/mind-engage/campusmate/internal/rbac"
	"github.com/mind-engage/campusmate/internal/records"
)

type PredictorDeps struct {
	Config    config.Config
	Log       *logger.Logger
	Data      *records.Live
	Predictor admission.Predictor
	Estimator admission.Estimator

	// Auth, Users and DB are optional. Without them the account and admin
	// routes are not mounted.
	Auth  *auth.AuthService
	Users *auth.UserStore
	DB    *sql.DB
}

type ChatbotDeps struct {
	Config config.Config
	Log    *logger.Logger
	Data   *records.Live
	Rand   randsrc.Source
}

func baseRouter(service string, cfg config.Config, log *logger.Logger) chi.Router {
	if log == nil {
		log = logger.Nop()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, AccessLog(service, log), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Handle("/metrics", metrics.Handler())
	return r
}

// NewPredictorRouter serves the cutoff, probability and recommendation API.
func NewPredictorRouter(d PredictorDeps) http.Handler {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Config.RequireAuth && d.Auth == nil {
		d.Auth = auth.NewAuthService(d.Config.AuthHMACSecret)
	}
	r := baseRouter("predictor", d.Config, d.Log)
	r.Get("/readyz", ReadyHandler(d.Data))
	r.Get("/", PredictorRootHandler(d.Data))

	if d.Users != nil && d.Auth != nil {
		r.Post("/auth/register", auth.RegisterHandler(d.Users))
		r.Post("/auth/login", auth.LoginHandler(d.Auth, d.Users))
		r.With(auth.JWTMiddleware(d.Auth)).
			Post("/auth/change-password", auth.ChangePasswordHandler(d.Users))
	}

	limit := d.Config.RecommendLimit
	r.Group(func(pr chi.Router) {
		if d.Config.RequireAuth {
			pr.Use(auth.JWTMiddleware(d.Auth))
			if d.DB != nil {
				pr.Use(auth.AttachRoleFromDB(d.DB))
			}
			pr.Use(rbac.Require(rbac.PermPredict))
		}
		pr.Post("/predict-cutoff", PredictCutoffHandler(d.Data, d.Predictor))
		pr.Post("/admission-probability", AdmissionProbabilityHandler(d.Data, d.Predictor, d.Estimator))
		pr.Post("/trends", TrendsHandler(d.Data))
		pr.Post("/recommend", RecommendHandler(d.Data, d.Estimator, limit))
		pr.Get("/colleges", CollegesHandler(d.Data))
	})

	if d.Auth != nil && d.DB != nil {
		reload := d.Config.DataSource == "sql"
		r.Route("/admin", func(ar chi.Router) {
			ar.Use(auth.JWTMiddleware(d.Auth), auth.AttachRoleFromDB(d.DB))
			ar.With(rbac.Require(rbac.PermRecordsList)).
				Get("/records/stats", RecordStatsHandler(d.Data))
			ar.With(rbac.Require(rbac.PermRecordsImport)).
				Post("/records/import", ImportRecordsHandler(d.DB, d.Data, reload, d.Log))
			ar.With(rbac.Require(rbac.PermUsersRole)).
				Post("/users/{email}/role", UpdateUserRoleHandler(d.DB))
		})
	}
	return r
}

// NewChatbotRouter serves the chat endpoint.
func NewChatbotRouter(d ChatbotDeps) http.Handler {
	r := baseRouter("chatbot", d.Config, d.Log)
	r.Get("/readyz", ReadyHandler(d.Data))
	r.Get("/", ChatbotRootHandler(d.Data))
	r.Post("/chat", ChatHandler(d.Data, d.Rand))
	return r
}

// ReadyHandler reports 503 until the store holds at least one record.
func ReadyHandler(data *records.Live) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if data.Store().Len() == 0 {
			http.Error(w, "no data", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
