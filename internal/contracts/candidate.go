package contracts

import "fmt"

// TickerCandidate is a tentative, scored ticker match.
type TickerCandidate struct {
	Symbol     string   `json:"symbol"`
	Start      int      `json:"start"`
	End        int      `json:"end"` // exclusive
	Confidence float64  `json:"confidence"`
	Kind       TagKind  `json:"kind"`
	Path       []string `json:"path"` // the words that produced the match
}

// Overlaps reports whether two candidates cover intersecting offset ranges.
func (c TickerCandidate) Overlaps(other TickerCandidate) bool {
	return c.Start < other.End && other.Start < c.End
}

// Length returns the span length in bytes
func (c TickerCandidate) Length() int {
	return c.End - c.Start
}

// CandidateSet is the non-overlapping, ordered selection of candidates
// chosen by the resolver for one document. Approximate is set when the
// resolver fell back to greedy selection because its visit budget or the
// scan deadline ran out; it is a quality flag, not an error.
type CandidateSet struct {
	Candidates  []TickerCandidate `json:"candidates"`
	Approximate bool              `json:"approximate"`
}

// TotalConfidence sums the confidence of all selected candidates.
func (s CandidateSet) TotalConfidence() float64 {
	var total float64
	for _, c := range s.Candidates {
		total += c.Confidence
	}
	return total
}

// Validate checks the set's invariants: candidates ordered by start offset,
// offsets inside the document, confidences within [0,1], no overlaps.
func (s CandidateSet) Validate(textLen int) error {
	for i, c := range s.Candidates {
		if c.Start < 0 || c.End > textLen || c.Start >= c.End {
			return fmt.Errorf("%w: candidate %s has offsets [%d,%d) outside document of length %d",
				ErrInternalInconsistency, c.Symbol, c.Start, c.End, textLen)
		}
		if c.Confidence < 0 || c.Confidence > 1 {
			return fmt.Errorf("%w: candidate %s has confidence %f outside [0,1]",
				ErrInternalInconsistency, c.Symbol, c.Confidence)
		}
		if i > 0 {
			prev := s.Candidates[i-1]
			if c.Start < prev.Start {
				return fmt.Errorf("%w: candidates out of order at index %d", ErrInternalInconsistency, i)
			}
			if prev.Overlaps(c) {
				return fmt.Errorf("%w: candidates %s and %s overlap", ErrInternalInconsistency, prev.Symbol, c.Symbol)
			}
		}
	}
	return nil
}
