package main

import (
	"context"
	stdlog "log"
	"time"

	"github.com/mind-engage/campusmate/internal/admission"
	api "github.com/mind-engage/campusmate/internal/api/http"
	"github.com/mind-engage/campusmate/internal/auth"
	"github.com/mind-engage/campusmate/internal/config"
	"github.com/mind-engage/campusmate/internal/db"
	"github.com/mind-engage/campusmate/internal/logger"
	"github.com/mind-engage/campusmate/internal/metrics"
	"github.com/mind-engage/campusmate/internal/randsrc"
	"github.com/mind-engage/campusmate/internal/records"
)

func main() {
	cfg := config.FromEnv()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		stdlog.Fatalf("logger: %v", err)
	}
	defer log.Sync()

	// --- DB (users, optional cutoff_history) ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", "driver", cfg.DBDriver, "error", err)
	}
	defer dbh.Close()

	// --- Historical records ---
	var src records.Source = records.CSVSource{Path: cfg.DataPath}
	if cfg.DataSource == "sql" {
		src = records.SQLSource{DB: dbh}
	}
	store, err := records.Open(ctx, src, cfg.AllowEmptyStore)
	if store == nil {
		log.Fatal("cutoff data unavailable", "source", cfg.DataSource, "path", cfg.DataPath, "error", err)
	}
	if err != nil {
		log.Warn("serving without cutoff data", "error", err)
	}
	metrics.StoreRecords.WithLabelValues("predictor").Set(float64(store.Len()))

	// --- Predictor + estimator ---
	kind, err := admission.ParsePredictorKind(cfg.Predictor)
	if err != nil {
		log.Fatal("bad PREDICTOR", "error", err)
	}
	var predictor admission.Predictor = admission.MockPredictor{}
	if kind == admission.PredictorModel {
		m, err := admission.LoadModel(cfg.ModelPath)
		if err != nil {
			log.Fatal("model load failed", "path", cfg.ModelPath, "error", err)
		}
		predictor = m
	}
	strategy, err := admission.ParseStrategy(cfg.ProbabilityStrategy)
	if err != nil {
		log.Fatal("bad PROBABILITY_STRATEGY", "error", err)
	}
	est, err := admission.NewEstimator(strategy, cfg.ProbabilityJitter, randsrc.Global())
	if err != nil {
		log.Fatal("estimator", "error", err)
	}

	h := api.NewPredictorRouter(api.PredictorDeps{
		Config:    cfg,
		Log:       log,
		Data:      records.NewLive(src, store),
		Predictor: predictor,
		Estimator: est,
		Auth:      auth.NewAuthService(cfg.AuthHMACSecret),
		Users:     auth.NewUserStore(dbh),
		DB:        dbh,
	})

	log.Info("predictor listening",
		"addr", cfg.PredictorAddr,
		"mode", cfg.Mode,
		"records", store.Len(),
		"predictor", kind,
		"strategy", strategy,
		"require_auth", cfg.RequireAuth,
	)
	if err := api.Serve(cfg.PredictorAddr, h, log); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
