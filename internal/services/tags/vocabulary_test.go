package tags

import (
	"testing"

	"listing_scout/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabulary_ReverseIndexIsExactInversion(t *testing.T) {
	v := Default()

	for alias, canonical := range defaultAliases {
		assert.Contains(t, v.Aliases(canonical), alias)
	}
	for canonical, aliases := range v.reverse {
		for _, alias := range aliases {
			assert.Equal(t, canonical, defaultAliases[alias])
		}
	}
}

func TestVocabulary_CategoryOf(t *testing.T) {
	v := Default()

	category, ok := v.CategoryOf("swimming_pool")
	require.True(t, ok)
	assert.Equal(t, "outdoor", category)

	_, ok = v.CategoryOf("not_a_real_tag")
	assert.False(t, ok)
}

func TestVocabulary_CategoryOf_FirstCategoryWins(t *testing.T) {
	v := New(
		[]string{"first", "second"},
		map[string][]string{
			"first":  {"shared_tag"},
			"second": {"shared_tag"},
		},
		nil,
	)

	category, ok := v.CategoryOf("shared_tag")
	require.True(t, ok)
	assert.Equal(t, "first", category)
}

func TestVocabulary_TagsByCategory_Unknown(t *testing.T) {
	v := Default()

	assert.Empty(t, v.TagsByCategory("no_such_category"))
}

func TestVocabulary_Discover(t *testing.T) {
	v := Default()

	batch := []domain.Record{
		{"property_id": "1", "tags": []string{"swimming_pool", "fireplace"}},
		{"property_id": "2", "tags": []string{"swimming_pool", "mystery_feature"}},
		{"property_id": "3"},
	}

	report := v.Discover(batch)

	assert.Equal(t, 3, report.TotalProperties)
	assert.Equal(t, 3, report.TotalUniqueTags)
	assert.Equal(t, []string{"fireplace", "mystery_feature", "swimming_pool"}, report.AllTags)
	assert.Equal(t, 2, report.TagCounts["swimming_pool"])

	// Самый частый тег идёт первым, равные частоты упорядочены по имени
	require.NotEmpty(t, report.MostCommon)
	assert.Equal(t, TagCount{Tag: "swimming_pool", Count: 2}, report.MostCommon[0])

	assert.Contains(t, report.ByCategory["outdoor"], "swimming_pool")
	assert.Equal(t, []string{"mystery_feature"}, report.Uncategorized)
}

func TestVocabulary_Discover_EmptyBatch(t *testing.T) {
	report := Default().Discover(nil)

	assert.Zero(t, report.TotalUniqueTags)
	assert.Zero(t, report.TotalProperties)
	assert.Empty(t, report.AllTags)
}
