package builder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tickerscan/internal/contracts"
	"github.com/wonny/tickerscan/internal/dictionary"
)

func testDict() *dictionary.Dictionary {
	return dictionary.New([]dictionary.Entry{
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "MSFT", Name: "Microsoft Corporation"},
	})
}

func entry(symbol string, start, end int, conf, weight float64, mentions int) contracts.PortfolioEntry {
	return contracts.PortfolioEntry{
		Candidate: contracts.TickerCandidate{
			Symbol:     symbol,
			Start:      start,
			End:        end,
			Confidence: conf,
		},
		Weight:   weight,
		Mentions: mentions,
	}
}

func TestBuildAttachesCanonicalNames(t *testing.T) {
	portfolios := []contracts.Portfolio{{
		Entries: []contracts.PortfolioEntry{
			entry("MSFT", 10, 14, 0.9, 0.9, 1),
			entry("AAPL", 0, 5, 1.0, 1.0, 2),
		},
		Score: 0.95,
	}}

	set, err := New(testDict()).Build(portfolios, time.Time{})

	require.NoError(t, err)
	require.Len(t, set.Portfolios, 1)
	built := set.Portfolios[0]
	assert.Equal(t, 0.95, built.Score)
	require.Len(t, built.Entries, 2)

	// Entries come back ordered by text position.
	assert.Equal(t, "AAPL", built.Entries[0].Symbol)
	assert.Equal(t, "Apple Inc.", built.Entries[0].Name)
	assert.Equal(t, 2, built.Entries[0].Mentions)
	assert.Equal(t, "MSFT", built.Entries[1].Symbol)
	assert.Equal(t, "Microsoft Corporation", built.Entries[1].Name)
}

func TestBuildUnknownSymbolIsInconsistency(t *testing.T) {
	portfolios := []contracts.Portfolio{{
		Entries: []contracts.PortfolioEntry{entry("GONE", 0, 4, 1.0, 1.0, 1)},
		Score:   1.0,
	}}

	set, err := New(testDict()).Build(portfolios, time.Time{})

	require.ErrorIs(t, err, contracts.ErrInternalInconsistency)
	assert.True(t, set.Empty())
}

func TestBuildEmptyInput(t *testing.T) {
	set, err := New(testDict()).Build(nil, time.Time{})

	require.NoError(t, err)
	assert.True(t, set.Empty())
}

func TestBuildExpiredDeadlineReturnsPartial(t *testing.T) {
	portfolios := []contracts.Portfolio{{
		Entries: []contracts.PortfolioEntry{entry("AAPL", 0, 5, 1.0, 1.0, 1)},
		Score:   1.0,
	}}

	set, err := New(testDict()).Build(portfolios, time.Now().Add(-time.Second))

	require.NoError(t, err)
	assert.True(t, set.Empty())
}
