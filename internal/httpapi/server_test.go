package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"listing_scout/internal/config"
	"listing_scout/internal/lib/metrics"
	"listing_scout/internal/services/filtering"
	"listing_scout/internal/services/pipeline"
	"listing_scout/internal/services/presets"
	"listing_scout/internal/services/scoring"
	"listing_scout/internal/services/tags"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewPipelineMetrics(log)
	registry := presets.Default()

	scorer := scoring.NewWithClock(log, func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	})

	refiner := pipeline.New(
		log,
		filtering.New(log, tags.Default()),
		registry,
		scorer,
		m,
		pipeline.Config{UseAliases: true, FuzzyThreshold: 0.6, AddDerivedFields: true},
	)

	srv := New(log, config.HTTPConfig{Address: ":0"}, scorer, refiner, registry, m)

	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHandleHealth(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestHandleScoreMotivation(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts.URL+"/api/score/motivation", map[string]any{
		"property": map[string]any{
			"days_on_market":                150,
			"price_reduction_count":         3,
			"total_price_reduction_percent": 25,
			"current_status":                "off_market",
			"list_date":                     "2025-06-07",
		},
		"history": []map[string]any{
			{"old_status": "pending", "new_status": "off_market"},
		},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	score, ok := body["score"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 90.0, score["total"])
	assert.Equal(t, 25.0, score["dom_component"])
	assert.Equal(t, 30.0, score["reduction_component"])
	assert.Equal(t, 15.0, score["off_market_component"])
	assert.Equal(t, 10.0, score["status_component"])
	assert.Equal(t, 10.0, score["market_component"])
}

func TestHandleScoreMotivation_BadRequest(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/api/score/motivation", "application/json",
		bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2, body := postJSON(t, ts.URL+"/api/score/motivation", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestHandleScoreInvestment(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts.URL+"/api/score/investment", map[string]any{
		"properties": []map[string]any{
			{"property_id": "weak", "price_per_sqft": 400, "days_on_mls": 5},
			{"property_id": "strong", "price_per_sqft": 150, "days_on_mls": 120},
			{"no_identity": true},
		},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 2.0, body["count"])
	assert.Equal(t, 1.0, body["skipped"])

	properties, ok := body["properties"].([]any)
	require.True(t, ok)
	first, ok := properties[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "strong", first["property_id"])
	assert.Contains(t, first, "investment_score")
}

func TestHandleRefine(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts.URL+"/api/refine", map[string]any{
		"properties": []map[string]any{
			{"property_id": "p1", "list_price": 450000, "tags": []string{"swimming_pool"}},
			{"property_id": "p2", "list_price": 250000, "tags": []string{"city_view"}},
		},
		"tag_filters": []string{"pool"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1.0, body["count"])
}

func TestHandleRefine_ValidationErrorsAre400(t *testing.T) {
	ts := testServer(t)

	tests := []struct {
		name string
		req  map[string]any
	}{
		{"unknown preset", map[string]any{
			"properties": []map[string]any{{"property_id": "p1"}},
			"presets":    []string{"nope"},
		}},
		{"invalid match type", map[string]any{
			"properties":     []map[string]any{{"property_id": "p1"}},
			"tag_filters":    []string{"pool"},
			"tag_match_type": "someof",
		}},
		{"sort spec mismatch", map[string]any{
			"properties":     []map[string]any{{"property_id": "p1"}},
			"sort_by":        []string{"list_price", "beds"},
			"sort_direction": []string{"asc", "desc", "asc"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, ts.URL+"/api/refine", tt.req)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandlePresets(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/presets")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	presetsMap, ok := body["presets"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, presetsMap, "luxury")
}

func TestHandleStats(t *testing.T) {
	ts := testServer(t)

	// Прогоняем один запрос, чтобы счётчики сдвинулись
	postJSON(t, ts.URL+"/api/refine", map[string]any{
		"properties": []map[string]any{{"property_id": "p1"}},
	})

	resp, err := http.Get(ts.URL + "/api/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats metrics.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, int64(1), stats.Filter.CallsTotal)
}

func TestCORSHeaders(t *testing.T) {
	ts := testServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/score/motivation", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
