package tags

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// fuzzyTopN — сколько лучших нечётких совпадений добавляется при расширении поиска.
const fuzzyTopN = 3

// Match — одно совпадение нечёткого поиска: канонический тег и его близость.
type Match struct {
	Tag   string
	Score float64
}

// ExpandOptions — параметры расширения поискового запроса по тегам.
type ExpandOptions struct {
	UseAliases     bool
	UseFuzzy       bool
	FuzzyThreshold float64
}

func normalizeTerm(term string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(term)), " ", "_")
}

// Normalize приводит поисковый термин к каноническому виду: нижний регистр,
// обрезка пробелов, пробелы → подчёркивания, затем словарь алиасов.
// Неизвестный термин проходит насквозь нормализованным литералом.
// Идемпотентна: Normalize(Normalize(x)) == Normalize(x).
func (v *Vocabulary) Normalize(term string) string {
	normalized := normalizeTerm(term)
	if canonical, ok := v.aliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// ratio — симметричная мера близости строк в [0, 1], равная 1 для
// одинаковых строк: 1 - расстояние Левенштейна / длина большей строки.
func ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0.0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

// FuzzyMatch ищет теги, нечётко совпадающие с термином.
//
// Точное совпадение с ключом алиаса возвращает единственный идеальный
// результат и не разбавляется нечёткими кандидатами. Иначе близость
// считается против объединения канонических тегов, ключей и значений
// алиасов; кандидаты приводятся к канонической форме, результаты ниже
// порога отбрасываются, остальные сортируются по убыванию близости и
// дедуплицируются с сохранением лучшей оценки на тег.
// Пустой ввод или отсутствие совпадений — пустой срез, не ошибка.
func (v *Vocabulary) FuzzyMatch(term string, threshold float64) []Match {
	normalized := normalizeTerm(term)

	if canonical, ok := v.aliases[normalized]; ok {
		return []Match{{Tag: canonical, Score: 1.0}}
	}

	matches := make([]Match, 0)
	for _, candidate := range v.allTerms {
		score := ratio(normalized, candidate)
		if score < threshold {
			continue
		}
		canonical := candidate
		if actual, isAlias := v.aliases[candidate]; isAlias {
			canonical = actual
		}
		matches = append(matches, Match{Tag: canonical, Score: score})
	}

	// Сортировка по убыванию близости; при равенстве — по имени тега,
	// чтобы выдача была детерминированной
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Tag < matches[j].Tag
	})

	seen := make(map[string]struct{}, len(matches))
	unique := matches[:0]
	for _, m := range matches {
		if _, dup := seen[m.Tag]; dup {
			continue
		}
		seen[m.Tag] = struct{}{}
		unique = append(unique, m)
	}

	return unique
}

// ExpandSearch расширяет поисковые термины до множества тегов, против
// которого вычисляются включающие фильтры.
//
// С алиасами термин раскрывается в каноническую форму плюс полное
// замыкание его синонимов: поиск "pool" находит записи с любым синонимом,
// реально встречающимся в данных скрейпера. Без алиасов добавляется голый
// нормализованный литерал. Нечёткий поиск добавляет до трёх лучших
// совпадений независимо от настройки алиасов. Результат — объединение
// по всем терминам, без дубликатов.
func (v *Vocabulary) ExpandSearch(terms []string, opts ExpandOptions) []string {
	expanded := make(map[string]struct{})
	order := make([]string, 0, len(terms))

	add := func(tag string) {
		if _, dup := expanded[tag]; dup {
			return
		}
		expanded[tag] = struct{}{}
		order = append(order, tag)
	}

	for _, term := range terms {
		normalized := normalizeTerm(term)

		if opts.UseAliases {
			canonical := v.Normalize(normalized)
			add(canonical)
			for _, alias := range v.reverse[canonical] {
				add(alias)
			}
		} else {
			add(normalized)
		}

		if opts.UseFuzzy {
			matches := v.FuzzyMatch(normalized, opts.FuzzyThreshold)
			for i, m := range matches {
				if i >= fuzzyTopN {
					break
				}
				add(m.Tag)
			}
		}
	}

	return order
}
