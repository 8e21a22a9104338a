package pipeline

import (
	"io"
	"log/slog"
	"testing"

	"listing_scout/internal/domain"
	"listing_scout/internal/lib/metrics"
	"listing_scout/internal/services/filtering"
	"listing_scout/internal/services/presets"
	"listing_scout/internal/services/scoring"
	"listing_scout/internal/services/sorting"
	"listing_scout/internal/services/tags"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testService(t *testing.T) (*Service, *metrics.PipelineMetrics) {
	t.Helper()

	log := testLogger()
	m := metrics.NewPipelineMetrics(log)
	svc := New(
		log,
		filtering.New(log, tags.Default()),
		presets.Default(),
		scoring.New(log),
		m,
		Config{UseAliases: true, FuzzyThreshold: 0.6, AddDerivedFields: true},
	)
	return svc, m
}

func testBatch() []domain.Record {
	return []domain.Record{
		{
			"property_id":     "p1",
			"list_price":      float64(450000),
			"sqft":            float64(2000),
			"estimated_value": float64(500000),
			"has_pool":        true,
			"tags":            []string{"swimming_pool", "fireplace"},
		},
		{
			"property_id":     "p2",
			"list_price":      float64(250000),
			"sqft":            float64(1200),
			"estimated_value": float64(240000),
			"has_pool":        false,
			"tags":            []string{"city_view"},
		},
		{
			"property_id": "p3",
			"list_price":  float64(800000),
			"sqft":        float64(3000),
			"tags":        []string{"no_hoa"},
		},
	}
}

func TestService_Process_TagFilter(t *testing.T) {
	svc, _ := testService(t)

	out, err := svc.Process(testBatch(), Request{TagFilters: []string{"pool"}})
	require.NoError(t, err)
	require.Len(t, out, 1)

	id, _ := out[0].String("property_id")
	assert.Equal(t, "p1", id)
}

func TestService_Process_PresetSeedsFilters(t *testing.T) {
	svc, _ := testService(t)

	out, err := svc.Process(testBatch(), Request{Presets: []string{"pool_home"}})
	require.NoError(t, err)
	require.Len(t, out, 1)

	id, _ := out[0].String("property_id")
	assert.Equal(t, "p1", id)
}

func TestService_Process_ExplicitBeatsPreset(t *testing.T) {
	svc, _ := testService(t)

	// Пресет starter_home отсекает всё дороже 300000
	out, err := svc.Process(testBatch(), Request{Presets: []string{"starter_home"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	id, _ := out[0].String("property_id")
	assert.Equal(t, "p2", id)

	// Явный price_max побеждает потолок пресета
	max := 900000.0
	out, err = svc.Process(testBatch(), Request{
		Presets:  []string{"starter_home"},
		PriceMax: &max,
	})
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestService_Process_UnknownPresetAbortsBeforeRecords(t *testing.T) {
	svc, m := testService(t)

	out, err := svc.Process(testBatch(), Request{Presets: []string{"nope"}})
	assert.ErrorIs(t, err, presets.ErrUnknownPreset)
	assert.Nil(t, out)
	assert.Zero(t, m.GetStats().RecordsIn)
}

func TestService_Process_InvalidMatchTypeAborts(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Process(testBatch(), Request{
		TagFilters:   []string{"pool"},
		TagMatchType: "someof",
	})
	assert.ErrorIs(t, err, filtering.ErrInvalidMatchType)
}

func TestService_Process_InvalidSortSpecAborts(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Process(testBatch(), Request{
		SortBy:        []string{"list_price", "beds"},
		SortDirection: []string{"asc", "desc", "asc"},
	})
	assert.ErrorIs(t, err, sorting.ErrSortSpecMismatch)
}

func TestService_Process_Sorts(t *testing.T) {
	svc, _ := testService(t)

	out, err := svc.Process(testBatch(), Request{
		SortBy:        []string{"list_price"},
		SortDirection: []string{"asc"},
	})
	require.NoError(t, err)
	require.Len(t, out, 3)

	id, _ := out[0].String("property_id")
	assert.Equal(t, "p2", id)
}

func TestService_Process_DerivedFieldsMaterialized(t *testing.T) {
	svc, _ := testService(t)

	// price_per_sqft материализуется до фильтрации: p1=225, p2≈208.33, p3≈266.67
	out, err := svc.Process(testBatch(), Request{
		SortBy:        []string{"price_per_sqft"},
		SortDirection: []string{"asc"},
		Limit:         1,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	id, _ := out[0].String("property_id")
	assert.Equal(t, "p2", id)

	ppsf, ok := out[0].Float("price_per_sqft")
	require.True(t, ok, "derived field must be materialized")
	assert.InDelta(t, 208.33, ppsf, 0.01)
}

func TestService_Process_DerivedFieldsCanBeDisabled(t *testing.T) {
	svc, _ := testService(t)

	disabled := false
	out, err := svc.Process(testBatch(), Request{AddDerivedFields: &disabled})
	require.NoError(t, err)

	for _, rec := range out {
		_, exists := rec["price_per_sqft"]
		assert.False(t, exists)
	}
}

func TestService_Process_RankByInvestment(t *testing.T) {
	svc, _ := testService(t)

	out, err := svc.Process(testBatch(), Request{RankByInvestment: true})
	require.NoError(t, err)
	require.Len(t, out, 3)

	prev, ok := out[0].Float(scoring.InvestmentField)
	require.True(t, ok)
	for i := 1; i < len(out); i++ {
		cur, ok := out[i].Float(scoring.InvestmentField)
		require.True(t, ok)
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestService_Process_Limit(t *testing.T) {
	svc, _ := testService(t)

	out, err := svc.Process(testBatch(), Request{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestService_Process_RecordsMetrics(t *testing.T) {
	svc, m := testService(t)

	_, err := svc.Process(testBatch(), Request{
		TagFilters: []string{"pool"},
		SortBy:     []string{"list_price"},
	})
	require.NoError(t, err)

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats.Filter.CallsTotal)
	assert.Equal(t, int64(1), stats.Sort.CallsTotal)
	assert.Equal(t, int64(3), stats.RecordsIn)
	assert.Equal(t, int64(1), stats.RecordsOut)
}

func TestService_Process_DoesNotMutateInput(t *testing.T) {
	svc, _ := testService(t)
	batch := testBatch()

	_, err := svc.Process(batch, Request{RankByInvestment: true})
	require.NoError(t, err)

	for _, rec := range batch {
		_, exists := rec[scoring.InvestmentField]
		assert.False(t, exists)
		_, exists = rec["price_per_sqft"]
		assert.False(t, exists)
	}
}

func TestRequest_ExplicitParams(t *testing.T) {
	min := 100000.0
	pool := true

	params := Request{
		TagFilters:   []string{"pool"},
		TagMatchType: "all",
		PriceMin:     &min,
		HasPool:      &pool,
		PropertyType: []string{"single_family"},
	}.explicitParams()

	assert.Equal(t, []string{"pool"}, params.TagFilters())
	assert.Equal(t, "all", params[presets.ParamTagMatchType])
	assert.Equal(t, 100000.0, params["price_min"])
	assert.Equal(t, true, params["has_pool"])

	// Незаданные поля не попадают в параметры и не затирают пресеты
	_, exists := params["price_max"]
	assert.False(t, exists)
}

func TestOptionsFromParams(t *testing.T) {
	min := 100000.0
	params := presets.Params{
		presets.ParamTagFilters:   []string{"pool"},
		presets.ParamTagMatchType: "any",
		"price_min":               min,
		"hoa_fee_max":             float64(100),
		"has_pool":                true,
		"property_type":           []string{"single_family"},
	}

	opts := optionsFromParams(params)

	assert.Equal(t, []string{"pool"}, opts.TagFilters)
	assert.Equal(t, "any", opts.MatchType)
	require.NotNil(t, opts.Ranges["list_price"].Min)
	assert.Equal(t, min, *opts.Ranges["list_price"].Min)
	require.NotNil(t, opts.Ranges["hoa_fee"].Max)
	assert.Equal(t, 100.0, *opts.Ranges["hoa_fee"].Max)
	assert.Equal(t, true, opts.Flags["has_pool"])
	assert.Equal(t, []string{"single_family"}, opts.Values["style"])
}
