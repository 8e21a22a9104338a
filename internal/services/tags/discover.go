package tags

import (
	"sort"

	"listing_scout/internal/domain"
)

// TagCount — тег и число его вхождений в батч.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// DiscoverReport — статистика по тегам батча.
type DiscoverReport struct {
	TotalUniqueTags int                 `json:"total_unique_tags"`
	AllTags         []string            `json:"all_tags"`
	TagCounts       map[string]int      `json:"tag_counts"`
	MostCommon      []TagCount          `json:"most_common"`
	ByCategory      map[string][]string `json:"by_category"`
	Uncategorized   []string            `json:"uncategorized"`
	TotalProperties int                 `json:"total_properties"`
}

const mostCommonLimit = 20

// Discover собирает статистику тегов по батчу: уникальные теги, частоты,
// разбивку по категориям словаря и самые частые теги.
func (v *Vocabulary) Discover(batch []domain.Record) DiscoverReport {
	counts := make(map[string]int)
	for _, rec := range batch {
		for _, tag := range rec.Tags() {
			counts[tag]++
		}
	}

	unique := make([]string, 0, len(counts))
	for tag := range counts {
		unique = append(unique, tag)
	}
	sort.Strings(unique)

	byCategory := make(map[string][]string)
	var uncategorized []string
	for _, tag := range unique {
		if category, ok := v.CategoryOf(tag); ok {
			byCategory[category] = append(byCategory[category], tag)
		} else {
			uncategorized = append(uncategorized, tag)
		}
	}

	mostCommon := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		mostCommon = append(mostCommon, TagCount{Tag: tag, Count: count})
	}
	sort.SliceStable(mostCommon, func(i, j int) bool {
		if mostCommon[i].Count != mostCommon[j].Count {
			return mostCommon[i].Count > mostCommon[j].Count
		}
		return mostCommon[i].Tag < mostCommon[j].Tag
	})
	if len(mostCommon) > mostCommonLimit {
		mostCommon = mostCommon[:mostCommonLimit]
	}

	return DiscoverReport{
		TotalUniqueTags: len(unique),
		AllTags:         unique,
		TagCounts:       counts,
		MostCommon:      mostCommon,
		ByCategory:      byCategory,
		Uncategorized:   uncategorized,
		TotalProperties: len(batch),
	}
}
