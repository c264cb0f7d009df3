// Package resolver implements the third pipeline stage: picking a
// non-overlapping, confidence-maximal selection out of the raw candidate
// set (weighted interval scheduling).
//
// The search runs on an explicit worklist with a memo table keyed by
// candidate index instead of call-stack recursion, so the visit budget and
// depth are enforceable and adversarial input cannot blow the stack. When
// the budget or the scan deadline runs out the resolver degrades to a
// greedy highest-confidence-first selection and flags the result as
// approximate.
package resolver

import (
	"math"
	"sort"
	"time"

	"github.com/wonny/tickerscan/internal/contracts"
)

// deadlineCheckInterval bounds how often the wall clock is read: once per
// this many node visits, not per node.
const deadlineCheckInterval = 1024

// Resolver selects the final candidate set. Stateless; safe for
// concurrent use.
type Resolver struct {
	visitBudget int
}

// New creates a resolver with the given node-visit budget.
func New(visitBudget int) *Resolver {
	if visitBudget < 1 {
		visitBudget = contracts.DefaultResolverVisitBudget
	}
	return &Resolver{visitBudget: visitBudget}
}

// value is the memoized outcome of solving the tail starting at a
// candidate index, with the tie-break fields carried along.
type value struct {
	conf       float64
	count      int
	spanLen    int
	firstStart int
	take       bool // whether the candidate at this index is selected
}

// better implements the selection order: total confidence first, then
// fewer candidates, then longer covered span, then leftmost start.
func better(a, b value) bool {
	if a.conf != b.conf {
		return a.conf > b.conf
	}
	if a.count != b.count {
		return a.count < b.count
	}
	if a.spanLen != b.spanLen {
		return a.spanLen > b.spanLen
	}
	return a.firstStart < b.firstStart
}

// Resolve picks the non-overlapping selection. The returned visit count
// feeds the scan metrics.
func (r *Resolver) Resolve(candidates []contracts.TickerCandidate, deadline time.Time) (contracts.CandidateSet, int) {
	if len(candidates) == 0 {
		return contracts.CandidateSet{}, 0
	}

	// Work on a sorted copy; the input is shared with the metrics record.
	sorted := make([]contracts.TickerCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	n := len(sorted)

	// next[i] is the first candidate starting at or after sorted[i].End.
	next := make([]int, n)
	for i := 0; i < n; i++ {
		next[i] = sort.Search(n, func(j int) bool {
			return sorted[j].Start >= sorted[i].End
		})
		if next[i] < i+1 {
			next[i] = i + 1
		}
	}

	memo := make([]*value, n+1)
	memo[n] = &value{firstStart: math.MaxInt}

	visits := 0
	aborted := false

	// Post-order worklist: a frame is computed once both of its children
	// (skip tail and take tail) are memoized.
	stack := make([]int, 0, n)
	stack = append(stack, 0)

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		if memo[i] != nil {
			stack = stack[:len(stack)-1]
			continue
		}

		visits++
		if visits > r.visitBudget {
			aborted = true
			break
		}
		if visits%deadlineCheckInterval == 0 && !deadline.IsZero() && time.Now().After(deadline) {
			aborted = true
			break
		}

		skipIdx, takeIdx := i+1, next[i]
		if memo[skipIdx] == nil {
			stack = append(stack, skipIdx)
			continue
		}
		if memo[takeIdx] == nil {
			stack = append(stack, takeIdx)
			continue
		}

		skip := *memo[skipIdx]
		skip.take = false

		tail := *memo[takeIdx]
		take := value{
			conf:       tail.conf + sorted[i].Confidence,
			count:      tail.count + 1,
			spanLen:    tail.spanLen + sorted[i].Length(),
			firstStart: sorted[i].Start,
			take:       true,
		}

		best := skip
		if better(take, skip) {
			best = take
		}
		memo[i] = &best
		stack = stack[:len(stack)-1]
	}

	if aborted {
		set := greedy(sorted)
		set.Approximate = true
		return set, visits
	}

	// Walk the memoized decisions to reconstruct the selection.
	selected := make([]contracts.TickerCandidate, 0, memo[0].count)
	for i := 0; i < n; {
		if memo[i].take {
			selected = append(selected, sorted[i])
			i = next[i]
		} else {
			i++
		}
	}

	return contracts.CandidateSet{Candidates: selected}, visits
}

// greedy is the degradation path: highest confidence first, longer spans
// breaking ties, never overlapping an earlier pick.
func greedy(sorted []contracts.TickerCandidate) contracts.CandidateSet {
	byConf := make([]contracts.TickerCandidate, len(sorted))
	copy(byConf, sorted)
	sort.SliceStable(byConf, func(i, j int) bool {
		a, b := byConf[i], byConf[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Length() != b.Length() {
			return a.Length() > b.Length()
		}
		return a.Start < b.Start
	})

	var selected []contracts.TickerCandidate
	for _, c := range byConf {
		overlaps := false
		for _, s := range selected {
			if c.Overlaps(s) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			selected = append(selected, c)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Start < selected[j].Start
	})

	return contracts.CandidateSet{Candidates: selected}
}
