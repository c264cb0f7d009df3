package contracts

// PortfolioEntry is one ticker within a candidate portfolio. Mentions of
// the same symbol inside one grouping are merged into a single entry; the
// weight grows with the mention count (see generator).
type PortfolioEntry struct {
	Candidate TickerCandidate `json:"candidate"`
	Weight    float64         `json:"weight"` // in [0,1], weights need not sum to 1
	Mentions  int             `json:"mentions"`
}

// Portfolio is a hypothesized grouping of co-mentioned tickers, scored by
// the generator's heuristic. Not a financial allocation.
type Portfolio struct {
	Entries []PortfolioEntry `json:"entries"`
	Score   float64          `json:"score"`
}

// FirstOffset returns the start offset of the earliest entry, used as the
// stable tie-break when ranking portfolios.
func (p Portfolio) FirstOffset() int {
	if len(p.Entries) == 0 {
		return 0
	}
	first := p.Entries[0].Candidate.Start
	for _, e := range p.Entries[1:] {
		if e.Candidate.Start < first {
			first = e.Candidate.Start
		}
	}
	return first
}

// BuiltEntry is a materialized portfolio entry with the canonical name
// attached from the dictionary.
type BuiltEntry struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
	Confidence float64 `json:"confidence"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Mentions   int     `json:"mentions"`
}

// BuiltPortfolio is the output representation of one ranked portfolio.
type BuiltPortfolio struct {
	Entries []BuiltEntry `json:"entries"`
	Score   float64      `json:"score"`
}

// PortfolioSet is the engine's terminal artifact: the bounded, ranked set
// of built portfolios. Owned exclusively by the caller once returned.
type PortfolioSet struct {
	Portfolios []BuiltPortfolio `json:"portfolios"`
}

// Empty reports whether no portfolio was produced. An empty set is a
// valid, non-error outcome for text without ticker mentions.
func (s PortfolioSet) Empty() bool {
	return len(s.Portfolios) == 0
}
