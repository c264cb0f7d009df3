package contracts

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Word is a single tokenized word with byte offsets into the document text.
type Word struct {
	Text  string
	Start int
	End   int // exclusive
}

// Document is the immutable scan input: the raw text plus its derived word
// tokenization. Created once per request and read-only afterwards.
type Document struct {
	Text  string
	Words []Word
}

// NewDocument tokenizes text into words. A word is a maximal run of
// letters, digits and '$' (the '$' kept so symbol-prefixed tokens survive
// tokenization). maxLen bounds the accepted text size; 0 means unbounded.
func NewDocument(text string, maxLen int) (*Document, error) {
	if len(text) == 0 {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidInput)
	}
	if maxLen > 0 && len(text) > maxLen {
		return nil, fmt.Errorf("%w: text length %d exceeds maximum %d", ErrInvalidInput, len(text), maxLen)
	}

	doc := &Document{Text: text}

	start := -1
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			doc.Words = append(doc.Words, Word{Text: text[start:i], Start: start, End: i})
			start = -1
		}
		i += size
	}
	if start >= 0 {
		doc.Words = append(doc.Words, Word{Text: text[start:], Start: start, End: len(text)})
	}

	return doc, nil
}

// WordIndexAt returns the index of the word containing or starting at the
// given byte offset, or -1 when no word covers it.
func (d *Document) WordIndexAt(offset int) int {
	lo, hi := 0, len(d.Words)
	for lo < hi {
		mid := (lo + hi) / 2
		if d.Words[mid].End <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(d.Words) && d.Words[lo].Start <= offset && offset < d.Words[lo].End {
		return lo
	}
	return -1
}

func isWordRune(r rune) bool {
	return r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
