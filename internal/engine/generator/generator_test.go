package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tickerscan/internal/contracts"
)

func cand(symbol string, start, end int, conf float64) contracts.TickerCandidate {
	return contracts.TickerCandidate{
		Symbol:     symbol,
		Start:      start,
		End:        end,
		Confidence: conf,
		Path:       []string{symbol},
	}
}

func set(candidates ...contracts.TickerCandidate) contracts.CandidateSet {
	return contracts.CandidateSet{Candidates: candidates}
}

func entrySymbols(p contracts.Portfolio) []string {
	out := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		out = append(out, e.Candidate.Symbol)
	}
	return out
}

func TestGenerateEmpty(t *testing.T) {
	assert.Nil(t, New(10).Generate(contracts.CandidateSet{}, time.Time{}))
}

func TestGenerateSingleCluster(t *testing.T) {
	portfolios := New(10).Generate(set(
		cand("AAPL", 0, 5, 1.0),
		cand("MSFT", 10, 14, 0.9),
	), time.Time{})

	require.NotEmpty(t, portfolios)
	top := portfolios[0]
	assert.Equal(t, []string{"AAPL", "MSFT"}, entrySymbols(top))
	assert.Equal(t, 1, top.Entries[0].Mentions)
	assert.InDelta(t, 1.0, top.Entries[0].Weight, 1e-9)
	assert.Greater(t, top.Score, 0.0)
	assert.Equal(t, 0, top.FirstOffset())
}

func TestGenerateSplitsDistantMentions(t *testing.T) {
	portfolios := New(10).Generate(set(
		cand("AAPL", 0, 5, 1.0),
		cand("MSFT", 500, 504, 1.0),
	), time.Time{})

	// The proximity clustering yields two single-ticker portfolios; the
	// all-in-one grouping adds a third spanning both mentions.
	require.Len(t, portfolios, 3)

	singles := 0
	for _, p := range portfolios {
		if len(p.Entries) == 1 {
			singles++
		}
	}
	assert.Equal(t, 2, singles)
}

func TestGenerateMergesRepeatedMentions(t *testing.T) {
	// "AAPL up, AAPL up more": both mentions land in one cluster and fold
	// into a single entry with a mention-boosted weight.
	portfolios := New(10).Generate(set(
		cand("AAPL", 0, 4, 0.8),
		cand("AAPL", 9, 13, 0.8),
	), time.Time{})

	require.NotEmpty(t, portfolios)
	top := portfolios[0]
	require.Len(t, top.Entries, 1)
	assert.Equal(t, "AAPL", top.Entries[0].Candidate.Symbol)
	assert.Equal(t, 2, top.Entries[0].Mentions)
	assert.InDelta(t, 0.8*1.15, top.Entries[0].Weight, 1e-9)
}

func TestGenerateWeightCappedAtOne(t *testing.T) {
	portfolios := New(10).Generate(set(
		cand("AAPL", 0, 4, 1.0),
		cand("AAPL", 9, 13, 1.0),
		cand("AAPL", 18, 22, 1.0),
	), time.Time{})

	require.NotEmpty(t, portfolios)
	require.Len(t, portfolios[0].Entries, 1)
	assert.Equal(t, 1.0, portfolios[0].Entries[0].Weight)
	assert.Equal(t, 3, portfolios[0].Entries[0].Mentions)
}

func TestGenerateRanksTighterClusterFirst(t *testing.T) {
	portfolios := New(10).Generate(set(
		cand("AAPL", 0, 5, 1.0),
		cand("MSFT", 8, 12, 1.0),
		cand("GOOG", 600, 604, 1.0),
		cand("AMZN", 790, 794, 1.0),
	), time.Time{})

	require.NotEmpty(t, portfolios)
	// Equal confidence everywhere, so cohesion decides: the tight
	// AAPL/MSFT pair outranks the loose GOOG/AMZN pair.
	assert.Equal(t, []string{"AAPL", "MSFT"}, entrySymbols(portfolios[0]))
}

func TestGenerateTruncatesToMaxPortfolios(t *testing.T) {
	candidates := []contracts.TickerCandidate{
		cand("AAPL", 0, 5, 1.0),
		cand("MSFT", 500, 504, 0.9),
		cand("GOOG", 1000, 1004, 0.8),
		cand("AMZN", 1500, 1504, 0.7),
	}

	portfolios := New(2).Generate(set(candidates...), time.Time{})

	assert.Len(t, portfolios, 2)
}

func TestGenerateDeterministic(t *testing.T) {
	candidates := []contracts.TickerCandidate{
		cand("AAPL", 0, 5, 1.0),
		cand("F", 40, 41, 0.35),
		cand("MSFT", 300, 304, 0.9),
		cand("GOOG", 320, 324, 0.6),
		cand("AMZN", 900, 904, 0.8),
	}

	first := New(10).Generate(set(candidates...), time.Time{})
	second := New(10).Generate(set(candidates...), time.Time{})

	assert.Equal(t, first, second)
}

func TestGenerateExpiredDeadline(t *testing.T) {
	deadline := time.Now().Add(-time.Second)

	portfolios := New(10).Generate(set(
		cand("AAPL", 0, 5, 1.0),
		cand("MSFT", 500, 504, 0.9),
	), deadline)

	// Nothing was produced before the deadline, and that is still a
	// valid, empty outcome.
	assert.Empty(t, portfolios)
}
