package filtering

import (
	"errors"
	"fmt"
	"strings"
)

// MatchType — семантика проверки тегов записи против включающего множества.
type MatchType string

const (
	// MatchAny — достаточно хотя бы одного общего тега
	MatchAny MatchType = "any"
	// MatchAll — включающее множество целиком содержится в тегах записи
	MatchAll MatchType = "all"
	// MatchExact — строгое равенство множеств
	MatchExact MatchType = "exact"
)

var ErrInvalidMatchType = errors.New("invalid tag match type")

// ParseMatchType разбирает значение match type. Неизвестное значение —
// ошибка валидации: она должна отработать до любой обработки записей.
func ParseMatchType(s string) (MatchType, error) {
	const op = "filtering.ParseMatchType"

	switch MatchType(strings.ToLower(strings.TrimSpace(s))) {
	case MatchAny:
		return MatchAny, nil
	case MatchAll:
		return MatchAll, nil
	case MatchExact:
		return MatchExact, nil
	}
	return "", fmt.Errorf("%s: %q (expected any, all or exact): %w", op, s, ErrInvalidMatchType)
}

// Evaluate применяет включающий тест по matchType и исключающий тест к тегам
// записи. Включающее множество уже должно быть расширено (алиасы, нечёткие
// совпадения). Пустое include — вакуумно истинный тест. Исключение всегда
// работает как "any" и применяется после включающего теста.
func Evaluate(propertyTags, include, exclude []string, matchType MatchType) bool {
	tagSet := toSet(propertyTags)

	if len(include) > 0 {
		includeSet := toSet(include)
		switch matchType {
		case MatchAny:
			if !intersects(tagSet, includeSet) {
				return false
			}
		case MatchAll:
			if !containsAll(tagSet, includeSet) {
				return false
			}
		case MatchExact:
			if !setsEqual(tagSet, includeSet) {
				return false
			}
		default:
			return false
		}
	}

	if len(exclude) > 0 && intersects(tagSet, toSet(exclude)) {
		return false
	}

	return true
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

func intersects(a, b map[string]struct{}) bool {
	// Итерируем по меньшему множеству
	if len(b) < len(a) {
		a, b = b, a
	}
	for tag := range a {
		if _, ok := b[tag]; ok {
			return true
		}
	}
	return false
}

func containsAll(tags, required map[string]struct{}) bool {
	for tag := range required {
		if _, ok := tags[tag]; !ok {
			return false
		}
	}
	return true
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	return containsAll(a, b)
}
