package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve(t *testing.T) {
	r := Default()

	p, err := r.Resolve("luxury")
	require.NoError(t, err)
	assert.Equal(t, "luxury", p.Name)
	assert.Equal(t, float64(500000), p.Filters["price_min"])
	assert.Equal(t, []string{"swimming_pool", "gourmet_kitchen", "high_ceiling", "view"}, p.Filters.TagFilters())

	// Регистр имени не важен
	_, err = r.Resolve("LuXuRy")
	assert.NoError(t, err)
}

func TestRegistry_Resolve_UnknownListsAvailable(t *testing.T) {
	r := Default()

	_, err := r.Resolve("does_not_exist")
	require.ErrorIs(t, err, ErrUnknownPreset)
	// Ошибка перечисляет валидные имена для диагностируемости
	assert.Contains(t, err.Error(), "luxury")
	assert.Contains(t, err.Error(), "no_hoa")
}

func TestRegistry_Apply_OverridesWinKeyByKey(t *testing.T) {
	r := Default()

	params, err := r.Apply("luxury", Params{
		"price_min": float64(750000),
		"beds_min":  float64(4),
	})
	require.NoError(t, err)

	assert.Equal(t, float64(750000), params["price_min"])
	assert.Equal(t, float64(4), params["beds_min"])
	// Непереопределённые ключи пресета сохраняются
	assert.Equal(t, float64(2500), params["sqft_min"])
}

func TestRegistry_Apply_DoesNotMutatePreset(t *testing.T) {
	r := Default()

	params, err := r.Apply("luxury", nil)
	require.NoError(t, err)
	params["price_min"] = float64(1)
	params.TagFilters()[0] = "mutated"

	p, err := r.Resolve("luxury")
	require.NoError(t, err)
	assert.Equal(t, float64(500000), p.Filters["price_min"])
	assert.Equal(t, "swimming_pool", p.Filters.TagFilters()[0])
}

func TestRegistry_Combine_SingleQuirklessOverlay(t *testing.T) {
	r := Default()

	params, err := r.Combine([]string{"pool_home"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"swimming_pool"}, params.TagFilters())
	assert.Equal(t, true, params["has_pool"])
}

func TestRegistry_Combine_TagFiltersAreUnionOfRawPresets(t *testing.T) {
	r := Default()

	params, err := r.Combine([]string{"pool_home", "no_hoa"}, nil)
	require.NoError(t, err)

	// tag_filters — объединение исходных списков пресетов, без дубликатов
	assert.ElementsMatch(t, []string{"swimming_pool", "no_hoa"}, params.TagFilters())
	// Скалярные ключи перезаписываются последним пресетом
	assert.Equal(t, "all", params[ParamTagMatchType])
	assert.Equal(t, true, params["has_pool"])
}

func TestRegistry_Combine_UnknownPresetFailsWhole(t *testing.T) {
	r := Default()

	_, err := r.Combine([]string{"pool_home", "nope"}, nil)
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestRegistry_Combine_OverridesApplyLast(t *testing.T) {
	r := Default()

	params, err := r.Combine([]string{"pool_home", "no_hoa"}, Params{
		ParamTagFilters: []string{"corner_lot"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"corner_lot"}, params.TagFilters())
}

func TestRegistry_Available_Sorted(t *testing.T) {
	names := Default().Available()

	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestRegistry_ByCategory_NamesResolve(t *testing.T) {
	r := Default()

	// rental_property числится в каталоге, но самого пресета нет
	dangling := map[string]bool{"rental_property": true}

	for category, names := range r.ByCategory() {
		for _, name := range names {
			_, err := r.Resolve(name)
			if dangling[name] {
				assert.Error(t, err, "category %q name %q", category, name)
				continue
			}
			assert.NoError(t, err, "category %q name %q", category, name)
		}
	}
}
