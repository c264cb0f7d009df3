package contracts

import "time"

// ScanConfig bounds a single engine invocation.
type ScanConfig struct {
	// MaxWindowWords is K, the longest word window the span matcher will
	// test against the dictionary.
	MaxWindowWords int `json:"max_window_words"`

	// MaxPortfolios is M, the most candidate portfolios the generator
	// will emit.
	MaxPortfolios int `json:"max_candidate_portfolios"`

	// Deadline is the wall-clock budget for the whole invocation. A soft
	// signal: stages past the tagger degrade to best-effort results when
	// it expires.
	Deadline time.Duration `json:"deadline"`

	// ResolverVisitBudget caps the nodes the backtracking resolver may
	// visit before falling back to greedy selection.
	ResolverVisitBudget int `json:"resolver_visit_budget"`

	// MaxTextLen rejects oversized documents up front. 0 means the
	// built-in default.
	MaxTextLen int `json:"max_text_len"`
}

// Engine defaults, applied by Normalize.
const (
	DefaultMaxWindowWords      = 4
	DefaultMaxPortfolios       = 10
	DefaultDeadline            = 60 * time.Second
	DefaultResolverVisitBudget = 200000
	DefaultMaxTextLen          = 1 << 20
)

// Normalize fills zero values with defaults and clamps nonsense.
func (c ScanConfig) Normalize() ScanConfig {
	if c.MaxWindowWords < 1 {
		c.MaxWindowWords = DefaultMaxWindowWords
	}
	if c.MaxPortfolios < 1 {
		c.MaxPortfolios = DefaultMaxPortfolios
	}
	if c.Deadline <= 0 {
		c.Deadline = DefaultDeadline
	}
	if c.ResolverVisitBudget < 1 {
		c.ResolverVisitBudget = DefaultResolverVisitBudget
	}
	if c.MaxTextLen < 1 {
		c.MaxTextLen = DefaultMaxTextLen
	}
	return c
}

// ScanMetrics is the diagnostics record emitted alongside every
// PortfolioSet. The engine never logs; callers decide what to do with it.
type ScanMetrics struct {
	SpansTagged        int           `json:"spans_tagged"`
	CandidatesFound    int           `json:"candidates_found"`
	CandidatesResolved int           `json:"candidates_resolved"`
	ResolverVisits     int           `json:"resolver_visits"`
	Approximate        bool          `json:"approximate"`
	DeadlineHit        bool          `json:"deadline_hit"`
	TagElapsed         time.Duration `json:"tag_elapsed"`
	MatchElapsed       time.Duration `json:"match_elapsed"`
	ResolveElapsed     time.Duration `json:"resolve_elapsed"`
	GenerateElapsed    time.Duration `json:"generate_elapsed"`
	BuildElapsed       time.Duration `json:"build_elapsed"`
	TotalElapsed       time.Duration `json:"total_elapsed"`
}

// ScanResult bundles the engine's terminal artifact with its diagnostics
// and the resolved candidate set it was derived from.
type ScanResult struct {
	Portfolios PortfolioSet `json:"portfolios"`
	Candidates CandidateSet `json:"candidates"`
	Metrics    ScanMetrics  `json:"metrics"`
}
