// Package matcher implements the second pipeline stage: testing tagged
// spans and nearby word windows against the ticker dictionary.
package matcher

import (
	"sort"
	"time"

	"github.com/wonny/tickerscan/internal/contracts"
	"github.com/wonny/tickerscan/internal/dictionary"
)

// Confidence ladder. Exact $-prefixed symbols are certain; bare uppercase
// dictionary hits are strong unless the token doubles as a common word;
// name phrases scale with the fraction of the company name they cover.
const (
	ConfidenceExactSymbol = 1.0
	ConfidenceUppercase   = 0.9
	ConfidenceAmbiguous   = 0.35

	nameConfidenceScale = 0.9
	MinNameConfidence   = 0.5
)

// Matcher tests tagged spans against the dictionary. Stateless apart from
// the shared read-only dictionary, so one instance serves concurrent scans.
type Matcher struct {
	dict      *dictionary.Dictionary
	maxWindow int
}

// New creates a matcher with a window bound of maxWindow words.
func New(dict *dictionary.Dictionary, maxWindow int) *Matcher {
	if maxWindow < 1 {
		maxWindow = contracts.DefaultMaxWindowWords
	}
	return &Matcher{dict: dict, maxWindow: maxWindow}
}

// Match produces the raw, possibly-overlapping candidate set for the
// tagged spans. The deadline is checked once per span; on expiry the
// candidates found so far are returned. An empty result is a valid
// outcome, never an error.
func (m *Matcher) Match(doc *contracts.Document, spans []contracts.TaggedSpan, deadline time.Time) ([]contracts.TickerCandidate, bool) {
	var candidates []contracts.TickerCandidate
	truncated := false

	for _, span := range spans {
		if !deadline.IsZero() && time.Now().After(deadline) {
			truncated = true
			break
		}

		switch span.Kind {
		case contracts.TagSymbolPrefixed:
			if c, ok := m.matchSymbolPrefixed(span); ok {
				candidates = append(candidates, c)
			}
		case contracts.TagUppercaseRun:
			if c, ok := m.matchUppercase(span); ok {
				candidates = append(candidates, c)
			}
		case contracts.TagNamePhrase:
			candidates = append(candidates, m.matchNamePhrase(doc, span)...)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.Symbol < b.Symbol
	})

	return candidates, truncated
}

// matchSymbolPrefixed resolves "$AAPL" by exact lookup of the stripped
// symbol. The candidate covers the whole token including the '$'.
func (m *Matcher) matchSymbolPrefixed(span contracts.TaggedSpan) (contracts.TickerCandidate, bool) {
	symbol := span.Text[1:]
	if _, ok := m.dict.Lookup(symbol); !ok {
		return contracts.TickerCandidate{}, false
	}

	return contracts.TickerCandidate{
		Symbol:     symbol,
		Start:      span.Start,
		End:        span.End,
		Confidence: ConfidenceExactSymbol,
		Kind:       span.Kind,
		Path:       []string{span.Text},
	}, true
}

// matchUppercase resolves a bare uppercase run by exact lookup, scoring it
// down when the token is ambiguous with common English words.
func (m *Matcher) matchUppercase(span contracts.TaggedSpan) (contracts.TickerCandidate, bool) {
	if _, ok := m.dict.Lookup(span.Text); !ok {
		return contracts.TickerCandidate{}, false
	}

	confidence := ConfidenceUppercase
	if IsAmbiguous(span.Text) {
		confidence = ConfidenceAmbiguous
	}

	return contracts.TickerCandidate{
		Symbol:     span.Text,
		Start:      span.Start,
		End:        span.End,
		Confidence: confidence,
		Kind:       span.Kind,
		Path:       []string{span.Text},
	}, true
}

// matchNamePhrase tests word windows inside a name-phrase seed against
// company names. Windows are enumerated in increasing length and a start
// offset stops early once it covers a full name exactly; the full O(K²)
// window grid is never explored unconditionally.
func (m *Matcher) matchNamePhrase(doc *contracts.Document, span contracts.TaggedSpan) []contracts.TickerCandidate {
	first := doc.WordIndexAt(span.Start)
	if first < 0 {
		return nil
	}
	last := first
	for last+1 < len(doc.Words) && doc.Words[last+1].End <= span.End {
		last++
	}

	var out []contracts.TickerCandidate

	for s := first; s <= last; s++ {
		best, found := contracts.TickerCandidate{}, false

		maxLen := m.maxWindow
		if rem := last - s + 1; rem < maxLen {
			maxLen = rem
		}

		for w := 1; w <= maxLen; w++ {
			c, ok, exact := m.testWindow(doc, s, w, span.Kind)
			if ok && (!found || c.Confidence > best.Confidence) {
				best, found = c, true
			}
			if exact {
				// Full-length exact name match: longer windows at this
				// start cannot score higher.
				break
			}
			if !ok && w > 1 {
				// Containment already failed; adding words cannot fix it.
				break
			}
		}

		if found && best.Confidence >= MinNameConfidence {
			out = append(out, best)
		}
	}

	return out
}

// testWindow scores the w-word window starting at word index s. It returns
// the best-scoring candidate for the window, whether any candidate
// qualified, and whether the window covered a company name exactly.
func (m *Matcher) testWindow(doc *contracts.Document, s, w int, kind contracts.TagKind) (contracts.TickerCandidate, bool, bool) {
	words := doc.Words[s : s+w]

	normalized := make([]string, 0, w)
	path := make([]string, 0, w)
	for _, word := range words {
		path = append(path, word.Text)
		n := dictionary.NormalizeWord(word.Text)
		if n == "" || dictionary.IsCorporateSuffix(n) {
			continue
		}
		normalized = append(normalized, n)
	}
	if len(normalized) == 0 {
		return contracts.TickerCandidate{}, false, false
	}

	// Union of symbols sharing any window word, iterated deterministically.
	seen := make(map[string]struct{})
	var symbols []string
	for _, n := range normalized {
		for _, sym := range m.dict.SymbolsByNameWord(n) {
			if _, ok := seen[sym]; ok {
				continue
			}
			seen[sym] = struct{}{}
			symbols = append(symbols, sym)
		}
	}
	sort.Strings(symbols)

	var best contracts.TickerCandidate
	found := false
	exact := false

	for _, sym := range symbols {
		nameWords := m.dict.NameWords(sym)
		matched, contained := containment(normalized, nameWords)
		if !contained || matched == 0 {
			continue
		}

		confidence := nameConfidenceScale * float64(matched) / float64(len(nameWords))
		if confidence > 1 {
			confidence = 1
		}

		c := contracts.TickerCandidate{
			Symbol:     sym,
			Start:      words[0].Start,
			End:        words[len(words)-1].End,
			Confidence: confidence,
			Kind:       kind,
			Path:       path,
		}

		if !found || c.Confidence > best.Confidence {
			best, found = c, true
		}
		if matched == len(nameWords) {
			exact = true
		}
	}

	return best, found, exact
}

// containment reports how many of the window's words appear in the name
// and whether every window word does (fuzzy containment).
func containment(window, name []string) (int, bool) {
	matched := 0
	for _, w := range window {
		ok := false
		for _, n := range name {
			if w == n {
				ok = true
				break
			}
		}
		if !ok {
			return matched, false
		}
		matched++
	}
	return matched, true
}
