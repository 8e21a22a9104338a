package filtering

import (
	"fmt"
	"log/slog"
	"strings"

	"listing_scout/internal/domain"
	"listing_scout/internal/services/tags"
)

// TagExpander расширяет поисковые термины до множества тегов.
type TagExpander interface {
	ExpandSearch(terms []string, opts tags.ExpandOptions) []string
}

// Service — батчевый фильтр записей: тег-предикаты плюс клиентские
// диапазонные и булевы фильтры.
type Service struct {
	log  *slog.Logger
	tags TagExpander
}

func New(log *slog.Logger, tagExpander TagExpander) *Service {
	return &Service{
		log:  log,
		tags: tagExpander,
	}
}

// RangeBound — диапазон по числовому полю записи. nil-границы не проверяются.
type RangeBound struct {
	Min *float64
	Max *float64
}

// Options — параметры фильтрации батча.
type Options struct {
	// Тег-фильтры (термины до расширения)
	TagFilters []string
	TagExclude []string
	MatchType  string

	// Настройки расширения терминов
	UseAliases     bool
	UseFuzzy       bool
	FuzzyThreshold float64

	// Диапазоны по числовым полям: имя поля записи → границы
	Ranges map[string]RangeBound

	// Булевы флаги: имя поля записи → требуемое значение
	Flags map[string]bool

	// Списки допустимых значений строковых полей (без учёта регистра):
	// имя поля записи → значения
	Values map[string][]string
}

// Apply фильтрует батч. Ошибки конфигурации (неизвестный match type)
// прерывают вызов до обработки записей; пробелы в данных отдельных записей
// деградируют тихо и батч не прерывают. Исходный батч не мутируется.
func (s *Service) Apply(batch []domain.Record, opts Options) ([]domain.Record, error) {
	const op = "filtering.Service.Apply"

	matchType := MatchAny
	if opts.MatchType != "" {
		var err error
		matchType, err = ParseMatchType(opts.MatchType)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	var include, exclude []string
	if len(opts.TagFilters) > 0 {
		include = s.tags.ExpandSearch(opts.TagFilters, tags.ExpandOptions{
			UseAliases:     opts.UseAliases,
			UseFuzzy:       opts.UseFuzzy,
			FuzzyThreshold: opts.FuzzyThreshold,
		})
	}
	if len(opts.TagExclude) > 0 {
		// Исключения никогда не расширяются нечётким поиском,
		// чтобы не отсеять лишнего
		exclude = s.tags.ExpandSearch(opts.TagExclude, tags.ExpandOptions{
			UseAliases:     opts.UseAliases,
			UseFuzzy:       false,
			FuzzyThreshold: opts.FuzzyThreshold,
		})
	}

	result := make([]domain.Record, 0, len(batch))
	for _, rec := range batch {
		if !Evaluate(rec.Tags(), include, exclude, matchType) {
			continue
		}
		if !s.passesRanges(rec, opts.Ranges) {
			continue
		}
		if !s.passesFlags(rec, opts.Flags) {
			continue
		}
		if !s.passesValues(rec, opts.Values) {
			continue
		}
		result = append(result, rec)
	}

	s.log.Debug("batch filtered",
		slog.Int("records_in", len(batch)),
		slog.Int("records_out", len(result)),
		slog.String("match_type", string(matchType)),
		slog.Int("include_tags", len(include)),
		slog.Int("exclude_tags", len(exclude)),
	)

	return result, nil
}

// passesRanges проверяет диапазонные фильтры. Отсутствующее поле записи —
// пробел в данных, не причина для отбраковки.
func (s *Service) passesRanges(rec domain.Record, ranges map[string]RangeBound) bool {
	for field, bound := range ranges {
		value, ok := rec.Float(field)
		if !ok {
			continue
		}
		if bound.Min != nil && value < *bound.Min {
			return false
		}
		if bound.Max != nil && value > *bound.Max {
			return false
		}
	}
	return true
}

func (s *Service) passesFlags(rec domain.Record, flags map[string]bool) bool {
	for field, want := range flags {
		value, ok := rec.Bool(field)
		if !ok {
			continue
		}
		if value != want {
			return false
		}
	}
	return true
}

func (s *Service) passesValues(rec domain.Record, values map[string][]string) bool {
	for field, allowed := range values {
		if len(allowed) == 0 {
			continue
		}
		value, ok := rec.String(field)
		if !ok {
			continue
		}
		matched := false
		for _, a := range allowed {
			if strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(a)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
