package app

import (
	"log/slog"

	"listing_scout/internal/config"
	"listing_scout/internal/httpapi"
	"listing_scout/internal/lib/metrics"
	"listing_scout/internal/services/filtering"
	"listing_scout/internal/services/pipeline"
	"listing_scout/internal/services/presets"
	"listing_scout/internal/services/scoring"
	"listing_scout/internal/services/tags"
)

type App struct {
	HTTPServer *httpapi.Server
	// Экспортируются для доступа извне (тесты, дополнительные фронтенды)
	Vocabulary *tags.Vocabulary
	Presets    *presets.Registry
	Pipeline   *pipeline.Service
	Metrics    *metrics.PipelineMetrics
}

func New(log *slog.Logger, cfg *config.Config) *App {
	vocabulary := tags.Default()
	registry := presets.Default()

	pipelineMetrics := metrics.GetPipelineMetrics(log)

	filterService := filtering.New(log, vocabulary)
	scoringService := scoring.New(log)

	pipelineService := pipeline.New(
		log,
		filterService,
		registry,
		scoringService,
		pipelineMetrics,
		pipeline.Config{
			UseAliases:       cfg.Search.UseAliases,
			FuzzyThreshold:   cfg.Search.FuzzyThreshold,
			AddDerivedFields: cfg.Search.AddDerivedFields,
		},
	)

	log.Info("services initialized",
		slog.Int("tag_categories", len(vocabulary.Categories())),
		slog.Int("presets", len(registry.Available())),
		slog.Bool("use_aliases", cfg.Search.UseAliases),
		slog.Float64("fuzzy_threshold", cfg.Search.FuzzyThreshold),
	)

	httpServer := httpapi.New(
		log,
		cfg.HTTP,
		scoringService,
		pipelineService,
		registry,
		pipelineMetrics,
	)

	return &App{
		HTTPServer: httpServer,
		Vocabulary: vocabulary,
		Presets:    registry,
		Pipeline:   pipelineService,
		Metrics:    pipelineMetrics,
	}
}
