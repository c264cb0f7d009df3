// Package engine wires the five scan stages into a single synchronous
// pipeline: tag characters, match spans against the dictionary, resolve
// overlaps, generate portfolios, build the output set.
//
// One Engine serves all scans; per-invocation state lives on the stack of
// Scan. The wall-clock deadline is computed once at entry and handed to
// every stage, so a slow stage shrinks the budget of the ones after it.
// Only the tagger is exempt: it always runs to completion so later
// stages degrade over a full span inventory rather than a truncated one.
package engine

import (
	"fmt"
	"time"

	"github.com/wonny/tickerscan/internal/contracts"
	"github.com/wonny/tickerscan/internal/dictionary"
	"github.com/wonny/tickerscan/internal/engine/builder"
	"github.com/wonny/tickerscan/internal/engine/generator"
	"github.com/wonny/tickerscan/internal/engine/matcher"
	"github.com/wonny/tickerscan/internal/engine/resolver"
	"github.com/wonny/tickerscan/internal/engine/tagger"
)

// Engine is the scan pipeline. Immutable after New; safe for concurrent
// use.
type Engine struct {
	cfg     contracts.ScanConfig
	dict    *dictionary.Dictionary
	match   *matcher.Matcher
	resolve *resolver.Resolver
	gen     *generator.Generator
	build   *builder.Builder
}

// New creates an engine over an immutable dictionary. cfg zero values fall
// back to the package defaults.
func New(dict *dictionary.Dictionary, cfg contracts.ScanConfig) *Engine {
	cfg = cfg.Normalize()
	return &Engine{
		cfg:     cfg,
		dict:    dict,
		match:   matcher.New(dict, cfg.MaxWindowWords),
		resolve: resolver.New(cfg.ResolverVisitBudget),
		gen:     generator.New(cfg.MaxPortfolios),
		build:   builder.New(dict),
	}
}

// Scan runs the full pipeline over text. An empty PortfolioSet is a valid
// outcome for text without ticker mentions; errors are reserved for
// rejected input and internal contract violations.
func (e *Engine) Scan(text string) (contracts.ScanResult, error) {
	start := time.Now()
	deadline := start.Add(e.cfg.Deadline)

	var result contracts.ScanResult

	doc, err := contracts.NewDocument(text, e.cfg.MaxTextLen)
	if err != nil {
		return result, fmt.Errorf("scan: %w", err)
	}

	// Stage 1: tagging never checks the deadline.
	spans := tagger.Tag(doc)
	result.Metrics.SpansTagged = len(spans)
	result.Metrics.TagElapsed = time.Since(start)

	// Stage 2.
	matchStart := time.Now()
	candidates, truncated := e.match.Match(doc, spans, deadline)
	result.Metrics.CandidatesFound = len(candidates)
	result.Metrics.MatchElapsed = time.Since(matchStart)
	if truncated {
		result.Metrics.DeadlineHit = true
	}

	// Stage 3.
	resolveStart := time.Now()
	resolved, visits := e.resolve.Resolve(candidates, deadline)
	result.Metrics.CandidatesResolved = len(resolved.Candidates)
	result.Metrics.ResolverVisits = visits
	result.Metrics.ResolveElapsed = time.Since(resolveStart)
	if resolved.Approximate {
		result.Metrics.Approximate = true
	}
	if err := resolved.Validate(len(doc.Text)); err != nil {
		return result, fmt.Errorf("scan: resolver output: %w", err)
	}
	result.Candidates = resolved

	// Stage 4.
	genStart := time.Now()
	portfolios := e.gen.Generate(resolved, deadline)
	result.Metrics.GenerateElapsed = time.Since(genStart)

	// Stage 5.
	buildStart := time.Now()
	set, err := e.build.Build(portfolios, deadline)
	result.Metrics.BuildElapsed = time.Since(buildStart)
	if err != nil {
		return result, fmt.Errorf("scan: %w", err)
	}
	result.Portfolios = set

	if time.Now().After(deadline) {
		result.Metrics.DeadlineHit = true
	}
	result.Metrics.TotalElapsed = time.Since(start)

	return result, nil
}

// Config returns the normalized configuration the engine runs with.
func (e *Engine) Config() contracts.ScanConfig {
	return e.cfg
}

// Dictionary exposes the symbol table backing this engine.
func (e *Engine) Dictionary() *dictionary.Dictionary {
	return e.dict
}
