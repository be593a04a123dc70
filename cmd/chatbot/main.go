package main

import (
	"context"
	stdlog "log"
	"time"

	api "github.com/mind-engage/campusmate/internal/api/http"
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var src records.Source = records.CSVSource{Path: cfg.DataPath}
	if cfg.DataSource == "sql" {
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatal("db open failed", "driver", cfg.DBDriver, "error", err)
		}
		defer dbh.Close()
		src = records.SQLSource{DB: dbh}
	}
	store, err := records.Open(ctx, src, cfg.AllowEmptyStore)
	if store == nil {
		log.Fatal("cutoff data unavailable", "source", cfg.DataSource, "path", cfg.DataPath, "error", err)
	}
	if err != nil {
		log.Warn("serving without cutoff data", "error", err)
	}
	metrics.StoreRecords.WithLabelValues("chatbot").Set(float64(store.Len()))

	h := api.NewChatbotRouter(api.ChatbotDeps{
		Config: cfg,
		Log:    log,
		Data:   records.NewLive(src, store),
		Rand:   randsrc.Global(),
	})

	log.Info("chatbot listening", "addr", cfg.ChatbotAddr, "mode", cfg.Mode, "records", store.Len())
	if err := api.Serve(cfg.ChatbotAddr, h, log); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
