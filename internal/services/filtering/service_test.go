package filtering

import (
	"io"
	"log/slog"
	"testing"

	"listing_scout/internal/domain"
	"listing_scout/internal/services/tags"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExpander возвращает термины как есть, фиксируя параметры вызова.
type stubExpander struct {
	lastOpts tags.ExpandOptions
}

func (s *stubExpander) ExpandSearch(terms []string, opts tags.ExpandOptions) []string {
	s.lastOpts = opts
	return terms
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testBatch() []domain.Record {
	return []domain.Record{
		{
			"property_id": "p1",
			"list_price":  float64(450000),
			"has_pool":    true,
			"style":       "SINGLE_FAMILY",
			"tags":        []string{"swimming_pool", "fireplace"},
		},
		{
			"property_id": "p2",
			"list_price":  float64(900000),
			"has_pool":    false,
			"style":       "CONDOS",
			"tags":        []string{"city_view"},
		},
		{
			// Запись с пробелами в данных: ни цены, ни флага
			"property_id": "p3",
			"tags":        []string{"fireplace"},
		},
	}
}

func TestService_Apply_TagFilters(t *testing.T) {
	svc := New(testLogger(), tags.Default())

	out, err := svc.Apply(testBatch(), Options{
		TagFilters: []string{"pool"},
		UseAliases: true,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	id, _ := out[0].String("property_id")
	assert.Equal(t, "p1", id)
}

func TestService_Apply_InvalidMatchTypeAbortsBeforeRecords(t *testing.T) {
	svc := New(testLogger(), tags.Default())

	out, err := svc.Apply(testBatch(), Options{
		TagFilters: []string{"pool"},
		MatchType:  "someof",
	})
	assert.ErrorIs(t, err, ErrInvalidMatchType)
	assert.Nil(t, out)
}

func TestService_Apply_ExclusionsNeverFuzzy(t *testing.T) {
	expander := &stubExpander{}
	svc := New(testLogger(), expander)

	_, err := svc.Apply(testBatch(), Options{
		TagExclude:     []string{"fireplace"},
		UseFuzzy:       true,
		FuzzyThreshold: 0.6,
	})
	require.NoError(t, err)

	assert.False(t, expander.lastOpts.UseFuzzy)
}

func TestService_Apply_Ranges(t *testing.T) {
	svc := New(testLogger(), tags.Default())

	min := 400000.0
	max := 500000.0
	out, err := svc.Apply(testBatch(), Options{
		Ranges: map[string]RangeBound{
			"list_price": {Min: &min, Max: &max},
		},
	})
	require.NoError(t, err)

	// p2 вне диапазона; p3 без цены остаётся — пробел в данных не отбраковывает
	require.Len(t, out, 2)
	id0, _ := out[0].String("property_id")
	id1, _ := out[1].String("property_id")
	assert.Equal(t, []string{"p1", "p3"}, []string{id0, id1})
}

func TestService_Apply_Flags(t *testing.T) {
	svc := New(testLogger(), tags.Default())

	out, err := svc.Apply(testBatch(), Options{
		Flags: map[string]bool{"has_pool": true},
	})
	require.NoError(t, err)

	// p2 явно без бассейна отбрасывается, p3 без поля остаётся
	require.Len(t, out, 2)
}

func TestService_Apply_Values(t *testing.T) {
	svc := New(testLogger(), tags.Default())

	out, err := svc.Apply(testBatch(), Options{
		Values: map[string][]string{"style": {"single_family"}},
	})
	require.NoError(t, err)

	// Сравнение без учёта регистра; запись без поля style остаётся
	require.Len(t, out, 2)
}

func TestService_Apply_DoesNotMutateInput(t *testing.T) {
	svc := New(testLogger(), tags.Default())
	batch := testBatch()

	_, err := svc.Apply(batch, Options{TagFilters: []string{"pool"}, UseAliases: true})
	require.NoError(t, err)

	assert.Len(t, batch, 3)
	assert.Equal(t, []string{"swimming_pool", "fireplace"}, batch[0].Tags())
}
