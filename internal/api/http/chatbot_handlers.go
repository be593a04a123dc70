package http

import (
	"net/http"
	"strings"

	"github.com/mind-engage/campusmate/internal/intent"
	"github.com/mind-engage/campusmate/internal/metrics"
	"github.com/mind-engage/campusmate/internal/randsrc"
	"github.com/mind-engage/campusmate/internal/records"
)

// GET /
func ChatbotRootHandler(data *records.Live) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := data.Store().Len()
		status := "ok"
		if n == 0 {
			status = "no data"
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":          "CampusMate chatbot service",
			"status":           status,
			"database_records": n,
			"features": []string{
				"intent classification",
				"college search by course, category and rank",
				"cutoff statistics",
				"admission guidance",
			},
		})
	}
}

// POST /chat  { "message": "..." }
func ChatHandler(data *records.Live, rnd randsrc.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string `json:"message"`
		}
		if !decode(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			http.Error(w, "message is required", http.StatusBadRequest)
			return
		}
		reply := intent.NewResponder(data.Store(), rnd).Respond(req.Message)
		metrics.Intents.WithLabelValues(string(reply.Intent)).Inc()
		writeJSON(w, http.StatusOK, reply)
	}
}
