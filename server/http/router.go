package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"labelmatch-service/internal/config"
	matchHnd "labelmatch-service/internal/match/handler"
	"labelmatch-service/internal/match/store"
	"labelmatch-service/internal/middleware"
	"labelmatch-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, st *store.Store) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	// reference table lifecycle
	r.Post("/records", matchHnd.UploadRecords(cfg, logger, st))
	r.Get("/records/stats", matchHnd.RecordStats(logger, st))
	r.Delete("/records", matchHnd.ClearRecords(logger, st))

	// one OCR query against the current table
	r.Post("/match", matchHnd.Match(cfg, logger, st))

	return r
}
