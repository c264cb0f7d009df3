package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tickerscan/internal/contracts"
	"github.com/wonny/tickerscan/internal/dictionary"
)

func testDict() *dictionary.Dictionary {
	return dictionary.New([]dictionary.Entry{
		{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "Q"},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Exchange: "Q"},
		{Symbol: "GM", Name: "General Motors Company", Exchange: "N"},
		{Symbol: "F", Name: "Ford Motor Company", Exchange: "N"},
		{Symbol: "NVDA", Name: "NVIDIA Corporation", Exchange: "Q"},
	})
}

func newTestEngine(cfg contracts.ScanConfig) *Engine {
	return New(testDict(), cfg)
}

func builtSymbols(p contracts.BuiltPortfolio) []string {
	out := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		out = append(out, e.Symbol)
	}
	return out
}

func TestScanPrefixedAndBareSymbols(t *testing.T) {
	e := newTestEngine(contracts.ScanConfig{})

	result, err := e.Scan("Bought $AAPL and some MSFT this morning")

	require.NoError(t, err)
	require.False(t, result.Portfolios.Empty())

	top := result.Portfolios.Portfolios[0]
	assert.Equal(t, []string{"AAPL", "MSFT"}, builtSymbols(top))
	assert.Equal(t, "Apple Inc.", top.Entries[0].Name)
	assert.Equal(t, "Microsoft Corporation", top.Entries[1].Name)

	// The $-prefixed mention is certain, the bare run slightly less so.
	assert.Equal(t, 1.0, top.Entries[0].Confidence)
	assert.Equal(t, 0.9, top.Entries[1].Confidence)

	assert.False(t, result.Candidates.Approximate)
	assert.Equal(t, 2, result.Metrics.CandidatesResolved)
}

func TestScanPlainProseIsEmpty(t *testing.T) {
	e := newTestEngine(contracts.ScanConfig{})

	result, err := e.Scan("I AM SO HAPPY TODAY")

	require.NoError(t, err)
	assert.True(t, result.Portfolios.Empty())
	assert.Empty(t, result.Candidates.Candidates)
}

func TestScanRepeatedMentionsMergeIntoOneEntry(t *testing.T) {
	e := newTestEngine(contracts.ScanConfig{})

	result, err := e.Scan("AAPL up today, AAPL up even more tomorrow")

	require.NoError(t, err)
	require.False(t, result.Portfolios.Empty())

	top := result.Portfolios.Portfolios[0]
	require.Len(t, top.Entries, 1)
	assert.Equal(t, "AAPL", top.Entries[0].Symbol)
	assert.Equal(t, 2, top.Entries[0].Mentions)
	assert.Greater(t, top.Entries[0].Weight, top.Entries[0].Confidence)
}

func TestScanCompanyNamePhrase(t *testing.T) {
	e := newTestEngine(contracts.ScanConfig{})

	result, err := e.Scan("General Motors reported strong truck sales")

	require.NoError(t, err)
	require.False(t, result.Portfolios.Empty())

	top := result.Portfolios.Portfolios[0]
	require.Len(t, top.Entries, 1)
	assert.Equal(t, "GM", top.Entries[0].Symbol)
	assert.Equal(t, "General Motors Company", top.Entries[0].Name)
	assert.InDelta(t, 0.9, top.Entries[0].Confidence, 1e-9)
}

func TestScanAmbiguousShortTokenScoresLow(t *testing.T) {
	e := newTestEngine(contracts.ScanConfig{})

	result, err := e.Scan("Shares of F slipped while $NVDA rallied")

	require.NoError(t, err)
	require.Len(t, result.Candidates.Candidates, 2)

	bySymbol := make(map[string]float64)
	for _, c := range result.Candidates.Candidates {
		bySymbol[c.Symbol] = c.Confidence
	}
	assert.Equal(t, 0.35, bySymbol["F"])
	assert.Equal(t, 1.0, bySymbol["NVDA"])
}

func TestScanEmptyTextRejected(t *testing.T) {
	e := newTestEngine(contracts.ScanConfig{})

	_, err := e.Scan("")

	require.ErrorIs(t, err, contracts.ErrInvalidInput)
}

func TestScanOversizedTextRejected(t *testing.T) {
	e := newTestEngine(contracts.ScanConfig{MaxTextLen: 16})

	_, err := e.Scan(strings.Repeat("AAPL up. ", 10))

	require.ErrorIs(t, err, contracts.ErrInvalidInput)
}

func TestScanExpiredDeadlineDegradesWithoutError(t *testing.T) {
	e := newTestEngine(contracts.ScanConfig{Deadline: time.Nanosecond})

	var sb strings.Builder
	for i := 0; i < 500; i++ {
		sb.WriteString("Bought $AAPL and some MSFT while General Motors tumbled. ")
	}

	result, err := e.Scan(sb.String())

	require.NoError(t, err)
	assert.True(t, result.Metrics.DeadlineHit)
	// Tagging never degrades, even under an expired deadline.
	assert.Greater(t, result.Metrics.SpansTagged, 0)
}

func TestScanDeterministic(t *testing.T) {
	e := newTestEngine(contracts.ScanConfig{})
	text := "Bought $AAPL and some MSFT. Later NVDA dropped while General Motors and Ford Motor held steady."

	first, err := e.Scan(text)
	require.NoError(t, err)
	second, err := e.Scan(text)
	require.NoError(t, err)

	assert.Equal(t, first.Portfolios, second.Portfolios)
	assert.Equal(t, first.Candidates, second.Candidates)
}

func TestScanRespectsMaxPortfolios(t *testing.T) {
	e := newTestEngine(contracts.ScanConfig{MaxPortfolios: 1})

	gap := strings.Repeat(".", 300)
	result, err := e.Scan("$AAPL " + gap + " $MSFT " + gap + " $NVDA")

	require.NoError(t, err)
	assert.Len(t, result.Portfolios.Portfolios, 1)
}

func TestScanResolvedSetValidates(t *testing.T) {
	e := newTestEngine(contracts.ScanConfig{})

	result, err := e.Scan("MSFT and $MSFT overlap with Microsoft Corporation in one line")

	require.NoError(t, err)
	require.NoError(t, result.Candidates.Validate(1 << 20))
}
