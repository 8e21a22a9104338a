package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"listing_scout/internal/config"
	"listing_scout/internal/domain"
	"listing_scout/internal/lib/metrics"
	"listing_scout/internal/services/pipeline"
	"listing_scout/internal/services/presets"
	"listing_scout/internal/services/scoring"
)

// Scorer — скоринговые операции, доступные через HTTP-границу.
type Scorer interface {
	Motivation(rec domain.Record, history []domain.StatusChange, market domain.Market) scoring.MotivationScore
	Investment(batch []domain.Record) []domain.Record
}

// Refiner прогоняет батч через конвейер пост-обработки.
type Refiner interface {
	Process(batch []domain.Record, req pipeline.Request) ([]domain.Record, error)
}

// Server — тонкая HTTP-граница над сервисами: декодирование, вызов,
// кодирование. Бизнес-логики здесь нет.
type Server struct {
	log     *slog.Logger
	scorer  Scorer
	refiner Refiner
	presets *presets.Registry
	metrics *metrics.PipelineMetrics

	httpServer *http.Server
}

func New(
	log *slog.Logger,
	cfg config.HTTPConfig,
	scorer Scorer,
	refiner Refiner,
	registry *presets.Registry,
	m *metrics.PipelineMetrics,
) *Server {
	s := &Server{
		log:     log,
		scorer:  scorer,
		refiner: refiner,
		presets: registry,
		metrics: m,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Get("/presets", s.handlePresets)
		r.Post("/refine", s.handleRefine)
		r.Post("/score/motivation", s.handleScoreMotivation)
		r.Post("/score/investment", s.handleScoreInvestment)
	})

	// Скоринг дёргается из браузерных клиентов напрямую
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
}

// Run блокируется до остановки сервера.
func (s *Server) Run() error {
	const op = "httpapi.Server.Run"

	s.log.Info("http server started", slog.String("addr", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Stop останавливает сервер, дожидаясь активных запросов в пределах ctx.
func (s *Server) Stop(ctx context.Context) error {
	const op = "httpapi.Server.Stop"

	s.log.Info("stopping http server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
