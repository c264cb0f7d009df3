package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tickerscan/internal/contracts"
	"github.com/wonny/tickerscan/internal/dictionary"
	"github.com/wonny/tickerscan/internal/engine"
	"github.com/wonny/tickerscan/pkg/logger"
)

func testHandler() *ScanHandler {
	dict := dictionary.New([]dictionary.Entry{
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "MSFT", Name: "Microsoft Corporation"},
	})
	eng := engine.New(dict, contracts.ScanConfig{})
	return NewScanHandler(eng, nil, nil, 0, logger.Nop())
}

func postScan(t *testing.T, h *ScanHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/scan", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Scan(rec, req)
	return rec
}

func TestScanEndpoint(t *testing.T) {
	rec := postScan(t, testHandler(), ScanRequest{Text: "Bought $AAPL and some MSFT"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Portfolios.Empty())
	assert.Equal(t, "AAPL", resp.Portfolios.Portfolios[0].Entries[0].Symbol)
	assert.False(t, resp.CacheHit)
}

func TestScanEndpointHTMLPayload(t *testing.T) {
	rec := postScan(t, testHandler(), ScanRequest{HTML: "<p>Bought $AAPL today</p>"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Portfolios.Empty())
	assert.Equal(t, "AAPL", resp.Portfolios.Portfolios[0].Entries[0].Symbol)
}

func TestScanEndpointEmptyBody(t *testing.T) {
	rec := postScan(t, testHandler(), ScanRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanEndpointMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/scan", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	testHandler().Scan(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanEndpointNoMentions(t *testing.T) {
	rec := postScan(t, testHandler(), ScanRequest{Text: "nothing to see here"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Portfolios.Empty())
}

func TestDictionaryStats(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/dictionary/stats", nil)
	rec := httptest.NewRecorder()
	testHandler().DictionaryStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats["symbols"])
}
