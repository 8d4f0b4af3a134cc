package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"sales-insights-go/internal/advisor"
	"sales-insights-go/internal/api"
	"sales-insights-go/internal/config"
	"sales-insights-go/internal/dataset"
	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/store"
)

func main() {
	_ = godotenv.Load() // loads .env

	cfg := config.FromEnv()
	log := logger.New()
	log.WithField("service", "sales-insights-go").Info("starting service")

	st := store.New()

	// Optionally preload a workbook so the dashboard works without an upload.
	if cfg.DatasetPath != "" {
		log.WithField("dataset_path", cfg.DatasetPath).Info("preloading workbook")
		tables, err := dataset.Load(cfg.DatasetPath)
		if err != nil {
			log.WithError(err).Fatal("failed to preload workbook")
		}
		st.Replace(cfg.DatasetPath, tables)
		log.WithFields(map[string]interface{}{
			"opportunities": len(tables.Opportunities),
			"activities":    len(tables.Activities),
			"details":       len(tables.Details),
		}).Info("workbook preloaded")
	}

	adv := advisor.New(cfg.GeminiKey, cfg.GeminiModel)
	if cfg.GeminiKey == "" {
		log.Warn("no Gemini API key configured, /ai/insights will report unavailable")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(st, adv),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
