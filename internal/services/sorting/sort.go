package sorting

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"listing_scout/internal/domain"
)

// NullsPosition — куда группируются отсутствующие значения,
// независимо от направления сортировки.
type NullsPosition string

const (
	NullsFirst NullsPosition = "first"
	NullsLast  NullsPosition = "last"
)

var ErrSortSpecMismatch = errors.New("sort_by and sort_direction must have same length")

// spec — нормализованная спецификация сортировки: len(fields) == len(ascending).
type spec struct {
	fields    []string
	ascending []bool
}

// normalizeSpec приводит направления к длине полей: одиночное направление
// транслируется на все ключи, пустое означает desc.
func normalizeSpec(sortBy, sortDirection []string) (spec, error) {
	const op = "sorting.normalizeSpec"

	if len(sortDirection) == 0 {
		sortDirection = []string{"desc"}
	}
	if len(sortDirection) == 1 && len(sortBy) > 1 {
		direction := sortDirection[0]
		sortDirection = make([]string, len(sortBy))
		for i := range sortDirection {
			sortDirection[i] = direction
		}
	}
	if len(sortBy) != len(sortDirection) {
		return spec{}, fmt.Errorf("%s: %d fields vs %d directions: %w",
			op, len(sortBy), len(sortDirection), ErrSortSpecMismatch)
	}

	ascending := make([]bool, len(sortDirection))
	for i, d := range sortDirection {
		ascending[i] = strings.EqualFold(strings.TrimSpace(d), "asc")
	}
	return spec{fields: sortBy, ascending: ascending}, nil
}

// ValidateSpec проверяет согласованность спецификации сортировки, не трогая
// записи. Позволяет отклонить запрос до начала обработки батча.
func ValidateSpec(sortBy, sortDirection []string) error {
	const op = "sorting.ValidateSpec"

	if _, err := normalizeSpec(sortBy, sortDirection); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Sort выполняет устойчивую многоключевую сортировку батча.
//
// Поля из реестра вычисляемых, отсутствующие в записях, вычисляются и
// подставляются на время сортировки; запрошенные ключи, не являющиеся ни
// хранимым полем, ни вычисляемым, молча игнорируются. Если валидных ключей
// не осталось, батч возвращается без изменений. Подставленные поля
// гарантированно удаляются перед возвратом, так что схема результата
// совпадает со схемой входа. Исходные записи не мутируются.
func Sort(batch []domain.Record, sortBy, sortDirection []string, nulls NullsPosition) ([]domain.Record, error) {
	const op = "sorting.Sort"

	if len(batch) == 0 {
		return batch, nil
	}

	sp, err := normalizeSpec(sortBy, sortDirection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stored := storedKeys(batch)

	var validFields []string
	var validAscending []bool
	for i, field := range sp.fields {
		if stored[field] || IsCalculated(field) {
			validFields = append(validFields, field)
			validAscending = append(validAscending, sp.ascending[i])
		}
	}
	if len(validFields) == 0 {
		return batch, nil
	}

	work := domain.CloneBatch(batch)

	// Подстановка вычисляемых полей — строго на время сортировки
	var injected []string
	for _, field := range validFields {
		if stored[field] || !IsCalculated(field) {
			continue
		}
		injected = append(injected, field)
		calc := calculatedFields[field]
		for _, rec := range work {
			if value, ok := calc(rec); ok {
				rec[field] = value
			}
		}
	}
	defer func() {
		for _, field := range injected {
			for _, rec := range work {
				delete(rec, field)
			}
		}
	}()

	nullsFirst := nulls == NullsFirst

	sort.SliceStable(work, func(i, j int) bool {
		for k, field := range validFields {
			cmp := compareField(work[i], work[j], field, validAscending[k], nullsFirst)
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})

	return work, nil
}

// storedKeys — объединение имён полей по всем записям батча.
func storedKeys(batch []domain.Record) map[string]bool {
	keys := make(map[string]bool)
	for _, rec := range batch {
		for k := range rec {
			keys[k] = true
		}
	}
	return keys
}

// Классы значений для сравнения разнотипных полей: внутри класса значения
// сравнимы, между классами порядок фиксирован для детерминизма.
const (
	classNumber = iota
	classTime
	classString
)

type sortValue struct {
	class  int
	number float64
	str    string
	null   bool
}

func extractValue(rec domain.Record, field string) sortValue {
	if n, ok := rec.Float(field); ok {
		return sortValue{class: classNumber, number: n}
	}
	if t, ok := rec.Time(field); ok {
		return sortValue{class: classTime, number: float64(t.UnixNano())}
	}
	if s, ok := rec.String(field); ok {
		return sortValue{class: classString, str: s}
	}
	return sortValue{null: true}
}

// compareField сравнивает записи по одному ключу: -1, 0 или 1 уже с учётом
// направления; отсутствующие значения группируются независимо от направления.
func compareField(a, b domain.Record, field string, ascending, nullsFirst bool) int {
	av := extractValue(a, field)
	bv := extractValue(b, field)

	if av.null && bv.null {
		return 0
	}
	if av.null {
		if nullsFirst {
			return -1
		}
		return 1
	}
	if bv.null {
		if nullsFirst {
			return 1
		}
		return -1
	}

	cmp := 0
	switch {
	case av.class != bv.class:
		if av.class < bv.class {
			cmp = -1
		} else {
			cmp = 1
		}
	case av.class == classString:
		cmp = strings.Compare(av.str, bv.str)
	default:
		if av.number < bv.number {
			cmp = -1
		} else if av.number > bv.number {
			cmp = 1
		}
	}

	if !ascending {
		cmp = -cmp
	}
	return cmp
}
