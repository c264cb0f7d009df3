// Package builder implements the final pipeline stage: materializing the
// top-ranked portfolios into their output representation with canonical
// names attached from the dictionary.
package builder

import (
	"fmt"
	"sort"
	"time"

	"github.com/wonny/tickerscan/internal/contracts"
	"github.com/wonny/tickerscan/internal/dictionary"
)

// Builder attaches dictionary data to generated portfolios.
type Builder struct {
	dict *dictionary.Dictionary
}

// New creates a builder backed by the given dictionary. Every symbol
// reaching this stage must resolve through it; anything else is a defect
// introduced upstream.
func New(dict *dictionary.Dictionary) *Builder {
	return &Builder{dict: dict}
}

// Build materializes the ranked portfolios. Returns
// ErrInternalInconsistency if any entry names a symbol the dictionary does
// not contain, since every candidate was originally produced from a
// dictionary match.
//
// An expired deadline stops the materialization early; the portfolios
// built so far are still returned as a valid set.
func (b *Builder) Build(portfolios []contracts.Portfolio, deadline time.Time) (contracts.PortfolioSet, error) {
	var set contracts.PortfolioSet

	for _, p := range portfolios {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}

		built := contracts.BuiltPortfolio{
			Entries: make([]contracts.BuiltEntry, 0, len(p.Entries)),
			Score:   p.Score,
		}
		for _, e := range p.Entries {
			entry, ok := b.dict.Lookup(e.Candidate.Symbol)
			if !ok {
				return contracts.PortfolioSet{}, fmt.Errorf(
					"build portfolio: symbol %q not in dictionary: %w",
					e.Candidate.Symbol, contracts.ErrInternalInconsistency)
			}
			built.Entries = append(built.Entries, contracts.BuiltEntry{
				Symbol:     entry.Symbol,
				Name:       entry.Name,
				Weight:     e.Weight,
				Confidence: e.Candidate.Confidence,
				Start:      e.Candidate.Start,
				End:        e.Candidate.End,
				Mentions:   e.Mentions,
			})
		}

		sort.SliceStable(built.Entries, func(i, j int) bool {
			return built.Entries[i].Start < built.Entries[j].Start
		})
		set.Portfolios = append(set.Portfolios, built)
	}

	return set, nil
}
