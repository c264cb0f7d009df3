package contracts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentTokenizes(t *testing.T) {
	doc, err := NewDocument("Bought $AAPL, and MSFT.", 0)
	require.NoError(t, err)

	texts := make([]string, 0, len(doc.Words))
	for _, w := range doc.Words {
		texts = append(texts, w.Text)
		assert.Equal(t, w.Text, doc.Text[w.Start:w.End])
	}
	assert.Equal(t, []string{"Bought", "$AAPL", "and", "MSFT"}, texts)
}

func TestNewDocumentRejectsEmpty(t *testing.T) {
	_, err := NewDocument("", 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewDocumentRejectsOversized(t *testing.T) {
	_, err := NewDocument(strings.Repeat("a", 100), 50)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewDocumentTrailingWord(t *testing.T) {
	doc, err := NewDocument("up AAPL", 0)
	require.NoError(t, err)
	require.Len(t, doc.Words, 2)
	assert.Equal(t, "AAPL", doc.Words[1].Text)
	assert.Equal(t, len(doc.Text), doc.Words[1].End)
}

func TestWordIndexAt(t *testing.T) {
	doc, err := NewDocument("one two three", 0)
	require.NoError(t, err)

	assert.Equal(t, 0, doc.WordIndexAt(0))
	assert.Equal(t, 0, doc.WordIndexAt(2))
	assert.Equal(t, -1, doc.WordIndexAt(3)) // the space
	assert.Equal(t, 1, doc.WordIndexAt(4))
	assert.Equal(t, 2, doc.WordIndexAt(8))
	assert.Equal(t, -1, doc.WordIndexAt(100))
}

func TestCandidateSetValidate(t *testing.T) {
	good := CandidateSet{Candidates: []TickerCandidate{
		{Symbol: "AAPL", Start: 0, End: 5, Confidence: 1.0},
		{Symbol: "MSFT", Start: 10, End: 14, Confidence: 0.9},
	}}
	require.NoError(t, good.Validate(20))

	overlapping := CandidateSet{Candidates: []TickerCandidate{
		{Symbol: "AAPL", Start: 0, End: 5, Confidence: 1.0},
		{Symbol: "MSFT", Start: 4, End: 9, Confidence: 0.9},
	}}
	assert.Error(t, overlapping.Validate(20))

	outOfOrder := CandidateSet{Candidates: []TickerCandidate{
		{Symbol: "MSFT", Start: 10, End: 14, Confidence: 0.9},
		{Symbol: "AAPL", Start: 0, End: 5, Confidence: 1.0},
	}}
	assert.Error(t, outOfOrder.Validate(20))

	outOfBounds := CandidateSet{Candidates: []TickerCandidate{
		{Symbol: "AAPL", Start: 0, End: 25, Confidence: 1.0},
	}}
	assert.Error(t, outOfBounds.Validate(20))

	badConfidence := CandidateSet{Candidates: []TickerCandidate{
		{Symbol: "AAPL", Start: 0, End: 5, Confidence: 1.5},
	}}
	assert.Error(t, badConfidence.Validate(20))
}

func TestScanConfigNormalize(t *testing.T) {
	cfg := ScanConfig{}.Normalize()

	assert.Equal(t, DefaultMaxWindowWords, cfg.MaxWindowWords)
	assert.Equal(t, DefaultMaxPortfolios, cfg.MaxPortfolios)
	assert.Equal(t, DefaultDeadline, cfg.Deadline)
	assert.Equal(t, DefaultResolverVisitBudget, cfg.ResolverVisitBudget)
	assert.Equal(t, DefaultMaxTextLen, cfg.MaxTextLen)

	custom := ScanConfig{MaxWindowWords: 2, MaxPortfolios: 3}.Normalize()
	assert.Equal(t, 2, custom.MaxWindowWords)
	assert.Equal(t, 3, custom.MaxPortfolios)
}

func TestPortfolioFirstOffset(t *testing.T) {
	p := Portfolio{Entries: []PortfolioEntry{
		{Candidate: TickerCandidate{Start: 40}},
		{Candidate: TickerCandidate{Start: 7}},
	}}
	assert.Equal(t, 7, p.FirstOffset())
	assert.Equal(t, 0, Portfolio{}.FirstOffset())
}
