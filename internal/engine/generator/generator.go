// Package generator implements the fourth pipeline stage: grouping the
// resolved candidates into a bounded set of plausible portfolios.
//
// Tickers mentioned close together in the text are grouped first
// (proximity clustering); a fixed refinement budget then tests alternative
// groupings by merging adjacent low-confidence clusters and splitting
// low-cohesion ones. The full 2^n subset space is never enumerated and the
// shared deadline is honored once per refinement pass.
package generator

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/tickerscan/internal/contracts"
)

const (
	// proximityGap is the byte distance separating two mentions into
	// different clusters.
	proximityGap = 200

	// refinementBudget caps how many alternative groupings are tested.
	refinementBudget = 64

	// lowConfidence marks clusters worth merging with a neighbor.
	lowConfidence = 0.7

	// lowCohesion marks clusters worth splitting at their widest gap.
	lowCohesion = 0.5

	// mentionWeightStep is the per-extra-mention weight boost when the
	// same symbol appears several times in one cluster.
	mentionWeightStep = 0.15
)

// Generator builds candidate portfolios. Stateless; safe for concurrent
// use.
type Generator struct {
	maxPortfolios int
}

// New creates a generator emitting at most maxPortfolios portfolios.
func New(maxPortfolios int) *Generator {
	if maxPortfolios < 1 {
		maxPortfolios = contracts.DefaultMaxPortfolios
	}
	return &Generator{maxPortfolios: maxPortfolios}
}

// Generate produces the ranked portfolios for a resolved candidate set.
// Deterministic for identical input; on deadline expiry the portfolios
// found so far are returned.
func (g *Generator) Generate(set contracts.CandidateSet, deadline time.Time) []contracts.Portfolio {
	if len(set.Candidates) == 0 {
		return nil
	}

	base := clusterByProximity(set.Candidates)

	// Groupings to evaluate, in deterministic order: the proximity
	// clustering first, then the all-in-one grouping, then refinements.
	groupings := [][][]contracts.TickerCandidate{base}
	if len(base) > 1 {
		groupings = append(groupings, [][]contracts.TickerCandidate{flatten(base)})
	}
	groupings = append(groupings, refine(base)...)

	seen := make(map[string]struct{})
	var portfolios []contracts.Portfolio

	for _, grouping := range groupings {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		for _, cluster := range grouping {
			p := buildPortfolio(cluster)
			if len(p.Entries) == 0 {
				continue
			}
			key := portfolioKey(p)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			portfolios = append(portfolios, p)
		}
	}

	sort.SliceStable(portfolios, func(i, j int) bool {
		if portfolios[i].Score != portfolios[j].Score {
			return portfolios[i].Score > portfolios[j].Score
		}
		return portfolios[i].FirstOffset() < portfolios[j].FirstOffset()
	})

	if len(portfolios) > g.maxPortfolios {
		portfolios = portfolios[:g.maxPortfolios]
	}

	return portfolios
}

// clusterByProximity splits the ordered candidates wherever the gap
// between consecutive mentions exceeds proximityGap.
func clusterByProximity(candidates []contracts.TickerCandidate) [][]contracts.TickerCandidate {
	var clusters [][]contracts.TickerCandidate
	var current []contracts.TickerCandidate

	for i, c := range candidates {
		if i > 0 && c.Start-candidates[i-1].End > proximityGap {
			clusters = append(clusters, current)
			current = nil
		}
		current = append(current, c)
	}
	if len(current) > 0 {
		clusters = append(clusters, current)
	}

	return clusters
}

// refine tests alternative groupings within the refinement budget: merge
// adjacent low-confidence clusters, split low-cohesion clusters at their
// widest internal gap.
func refine(base [][]contracts.TickerCandidate) [][][]contracts.TickerCandidate {
	var out [][][]contracts.TickerCandidate
	ops := 0

	// Merges of adjacent pairs where either side is weak on its own.
	for i := 0; i+1 < len(base) && ops < refinementBudget; i++ {
		if meanConfidence(base[i]) >= lowConfidence && meanConfidence(base[i+1]) >= lowConfidence {
			continue
		}
		ops++
		merged := append(append([]contracts.TickerCandidate{}, base[i]...), base[i+1]...)
		out = append(out, [][]contracts.TickerCandidate{merged})
	}

	// Splits of loose clusters at the widest gap.
	for _, cluster := range base {
		if ops >= refinementBudget {
			break
		}
		if len(cluster) < 2 || cohesion(cluster) >= lowCohesion {
			continue
		}
		ops++
		at := widestGap(cluster)
		left := cluster[:at]
		right := cluster[at:]
		out = append(out, [][]contracts.TickerCandidate{left, right})
	}

	return out
}

// buildPortfolio folds a cluster into one scored portfolio. Repeated
// mentions of the same symbol merge into a single entry whose weight grows
// with the mention count; this keeps the handling of texts like "AAPL up,
// AAPL up more" consistent across runs.
func buildPortfolio(cluster []contracts.TickerCandidate) contracts.Portfolio {
	type agg struct {
		first    contracts.TickerCandidate
		maxConf  float64
		mentions int
	}

	bySymbol := make(map[string]*agg)
	var order []string

	for _, c := range cluster {
		a, ok := bySymbol[c.Symbol]
		if !ok {
			bySymbol[c.Symbol] = &agg{first: c, maxConf: c.Confidence, mentions: 1}
			order = append(order, c.Symbol)
			continue
		}
		a.mentions++
		if c.Confidence > a.maxConf {
			a.maxConf = c.Confidence
		}
	}

	entries := make([]contracts.PortfolioEntry, 0, len(order))
	for _, sym := range order {
		a := bySymbol[sym]
		weight := a.maxConf * (1 + mentionWeightStep*float64(a.mentions-1))
		if weight > 1 {
			weight = 1
		}
		entries = append(entries, contracts.PortfolioEntry{
			Candidate: a.first,
			Weight:    weight,
			Mentions:  a.mentions,
		})
	}

	return contracts.Portfolio{
		Entries: entries,
		Score:   meanConfidence(cluster) * (0.5 + 0.5*cohesion(cluster)),
	}
}

// cohesion is 1 for single mentions and decays toward 0 as the mean gap
// between consecutive mentions grows past proximityGap.
func cohesion(cluster []contracts.TickerCandidate) float64 {
	if len(cluster) < 2 {
		return 1
	}
	var total float64
	for i := 1; i < len(cluster); i++ {
		gap := cluster[i].Start - cluster[i-1].End
		if gap < 0 {
			gap = 0
		}
		total += float64(gap)
	}
	mean := total / float64(len(cluster)-1)
	return 1 / (1 + mean/proximityGap)
}

func meanConfidence(cluster []contracts.TickerCandidate) float64 {
	if len(cluster) == 0 {
		return 0
	}
	var total float64
	for _, c := range cluster {
		total += c.Confidence
	}
	return total / float64(len(cluster))
}

// widestGap returns the index that splits the cluster at its largest
// internal distance.
func widestGap(cluster []contracts.TickerCandidate) int {
	at, widest := 1, -1
	for i := 1; i < len(cluster); i++ {
		gap := cluster[i].Start - cluster[i-1].End
		if gap > widest {
			widest = gap
			at = i
		}
	}
	return at
}

func flatten(clusters [][]contracts.TickerCandidate) []contracts.TickerCandidate {
	var all []contracts.TickerCandidate
	for _, c := range clusters {
		all = append(all, c...)
	}
	return all
}

// portfolioKey identifies a portfolio by its symbols and first offsets so
// equivalent groupings from different refinement passes deduplicate.
func portfolioKey(p contracts.Portfolio) string {
	parts := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		parts = append(parts, e.Candidate.Symbol, strconv.Itoa(e.Candidate.Start), strconv.Itoa(e.Mentions))
	}
	return strings.Join(parts, "|")
}
