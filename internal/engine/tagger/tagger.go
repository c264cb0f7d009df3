// Package tagger implements the first pipeline stage: a single pass over
// the document that flags ticker-like regions. It is pure and cheap, so it
// always runs to completion regardless of the scan deadline.
package tagger

import (
	"github.com/wonny/tickerscan/internal/contracts"
)

// Tag produces the document's tagged spans in left-to-right offset order.
// Spans of the same kind never overlap. Tagging the same document twice
// yields identical output.
func Tag(doc *contracts.Document) []contracts.TaggedSpan {
	spans := make([]contracts.TaggedSpan, 0, len(doc.Words)/4)

	for i := 0; i < len(doc.Words); i++ {
		w := doc.Words[i]

		if isSymbolPrefixed(w.Text) {
			spans = append(spans, contracts.TaggedSpan{
				Start: w.Start,
				End:   w.End,
				Text:  w.Text,
				Kind:  contracts.TagSymbolPrefixed,
			})
			continue
		}

		if isUppercaseRun(w.Text) {
			spans = append(spans, contracts.TaggedSpan{
				Start: w.Start,
				End:   w.End,
				Text:  w.Text,
				Kind:  contracts.TagUppercaseRun,
			})
			continue
		}

		if isTitleCase(w.Text) {
			// Extend over consecutive TitleCase words to form a
			// name-phrase seed. Only multi-word runs qualify.
			j := i
			for j+1 < len(doc.Words) &&
				adjacent(doc, j, j+1) &&
				isTitleCase(doc.Words[j+1].Text) {
				j++
			}
			if j > i {
				spans = append(spans, contracts.TaggedSpan{
					Start: doc.Words[i].Start,
					End:   doc.Words[j].End,
					Text:  doc.Text[doc.Words[i].Start:doc.Words[j].End],
					Kind:  contracts.TagNamePhrase,
				})
				i = j
			}
		}
	}

	return spans
}

// isSymbolPrefixed matches $-prefixed alphanumeric tokens like "$AAPL".
func isSymbolPrefixed(s string) bool {
	if len(s) < 2 || s[0] != '$' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isUpperASCII(c) && !isDigitASCII(c) {
			return false
		}
	}
	return true
}

// isUppercaseRun matches bare runs of 1-5 uppercase letters. The word
// tokenizer already guarantees the run is not part of a larger word.
func isUppercaseRun(s string) bool {
	if len(s) < 1 || len(s) > 5 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isUpperASCII(s[i]) {
			return false
		}
	}
	return true
}

// isTitleCase matches capitalized words such as "Apple": one uppercase
// letter followed by lowercase letters. Single letters are excluded to keep
// pronouns and articles out of phrase seeds.
func isTitleCase(s string) bool {
	if len(s) < 2 || !isUpperASCII(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// adjacent reports whether two consecutive words are separated by a single
// space, which is what keeps "Apple Inc" one phrase but "Apple. Inc" two.
func adjacent(doc *contracts.Document, i, j int) bool {
	a, b := doc.Words[i], doc.Words[j]
	return b.Start == a.End+1 && doc.Text[a.End] == ' '
}

func isUpperASCII(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isDigitASCII(c byte) bool {
	return c >= '0' && c <= '9'
}
