package pipeline

import (
	"fmt"
	"log/slog"

	"listing_scout/internal/domain"
	"listing_scout/internal/lib/metrics"
	"listing_scout/internal/services/filtering"
	"listing_scout/internal/services/presets"
	"listing_scout/internal/services/sorting"
)

// InvestmentRanker ранжирует батч по инвестиционной привлекательности.
type InvestmentRanker interface {
	Investment(batch []domain.Record) []domain.Record
}

// Config — значения по умолчанию для параметров, которые запрос
// может не задавать.
type Config struct {
	UseAliases       bool
	FuzzyThreshold   float64
	AddDerivedFields bool
}

// Service — конвейер пост-обработки: производные поля, фильтрация,
// сортировка, опциональное инвестиционное ранжирование.
type Service struct {
	log     *slog.Logger
	filter  *filtering.Service
	presets *presets.Registry
	ranker  InvestmentRanker
	metrics *metrics.PipelineMetrics
	cfg     Config
}

func New(
	log *slog.Logger,
	filter *filtering.Service,
	registry *presets.Registry,
	ranker InvestmentRanker,
	m *metrics.PipelineMetrics,
	cfg Config,
) *Service {
	return &Service{
		log:     log,
		filter:  filter,
		presets: registry,
		ranker:  ranker,
		metrics: m,
		cfg:     cfg,
	}
}

// Process прогоняет батч через конвейер. Ошибки конфигурации запроса
// (неизвестный пресет, невалидный match type, несогласованная спецификация
// сортировки) прерывают вызов до обработки записей. Исходный батч
// не мутируется.
func (s *Service) Process(batch []domain.Record, req Request) ([]domain.Record, error) {
	const op = "pipeline.Service.Process"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("records_in", len(batch)),
		slog.Any("presets", req.Presets),
	)

	// Вся валидация запроса — до первой записи
	params, err := s.presets.Combine(req.Presets, req.explicitParams())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if matchType, ok := params[presets.ParamTagMatchType].(string); ok && matchType != "" {
		if _, err := filtering.ParseMatchType(matchType); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if len(req.SortBy) > 0 {
		if err := sorting.ValidateSpec(req.SortBy, req.SortDirection); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	opts := optionsFromParams(params)
	opts.UseAliases = s.cfg.UseAliases
	if req.UseAliases != nil {
		opts.UseAliases = *req.UseAliases
	}
	opts.UseFuzzy = req.UseFuzzy
	opts.FuzzyThreshold = s.cfg.FuzzyThreshold
	if req.FuzzyThreshold != nil {
		opts.FuzzyThreshold = *req.FuzzyThreshold
	}

	work := batch
	if s.derivedEnabled(req) {
		work = addDerivedFields(batch)
	}

	timer := s.metrics.StartTimer(metrics.StageFilter)
	work, err = s.filter.Apply(work, opts)
	timer.Stop(err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(req.SortBy) > 0 {
		nulls := sorting.NullsLast
		if req.NullsPosition == string(sorting.NullsFirst) {
			nulls = sorting.NullsFirst
		}
		timer = s.metrics.StartTimer(metrics.StageSort)
		work, err = sorting.Sort(work, req.SortBy, req.SortDirection, nulls)
		timer.Stop(err)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if req.RankByInvestment {
		timer = s.metrics.StartTimer(metrics.StageInvestment)
		work = s.ranker.Investment(work)
		timer.Stop(nil)
	}

	if req.Limit > 0 && len(work) > req.Limit {
		work = work[:req.Limit]
	}

	s.metrics.RecordBatch(len(batch), len(work))
	log.Info("pipeline finished", slog.Int("records_out", len(work)))

	return work, nil
}

func (s *Service) derivedEnabled(req Request) bool {
	if req.AddDerivedFields != nil {
		return *req.AddDerivedFields
	}
	return s.cfg.AddDerivedFields
}

// derivedFields — поля, материализуемые в записях перед фильтрацией,
// чтобы диапазонные фильтры и сортировка видели их как обычные.
var derivedFields = []string{"price_per_sqft"}

func addDerivedFields(batch []domain.Record) []domain.Record {
	work := domain.CloneBatch(batch)
	for _, rec := range work {
		for _, field := range derivedFields {
			if _, exists := rec[field]; exists {
				continue
			}
			if value, ok := sorting.Calculate(field, rec); ok {
				rec[field] = value
			}
		}
	}
	return work
}
