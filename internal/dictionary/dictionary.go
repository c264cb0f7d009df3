package dictionary

import (
	"sort"
	"strings"
)

// Entry holds the metadata for one ticker symbol.
type Entry struct {
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Exchange string   `json:"exchange,omitempty"`
	Aliases  []string `json:"aliases,omitempty"`
}

// Dictionary is the immutable symbol table shared by all scans. Built once
// at process start and safe for concurrent reads; it is never mutated after
// construction, so invocations hold it by reference without locking.
type Dictionary struct {
	entries map[string]Entry

	// nameIndex maps a normalized name word to the symbols whose canonical
	// name or alias contains it, supporting name-phrase matching.
	nameIndex map[string][]string

	// nameWords caches the normalized word set of each symbol's canonical
	// name, keyed by symbol.
	nameWords map[string][]string
}

// New builds a dictionary from entries. Later duplicates win, matching how
// the symbol directory files layer NASDAQ over other listings.
func New(entries []Entry) *Dictionary {
	d := &Dictionary{
		entries:   make(map[string]Entry, len(entries)),
		nameIndex: make(map[string][]string),
		nameWords: make(map[string][]string),
	}

	for _, e := range entries {
		d.entries[e.Symbol] = e
	}

	for symbol, e := range d.entries {
		words := normalizeWords(e.Name)
		for _, alias := range e.Aliases {
			words = append(words, normalizeWords(alias)...)
		}
		words = dedupe(words)
		d.nameWords[symbol] = words
		for _, w := range words {
			d.nameIndex[w] = append(d.nameIndex[w], symbol)
		}
	}

	// Deterministic postings regardless of map iteration order above.
	for w := range d.nameIndex {
		sort.Strings(d.nameIndex[w])
	}

	return d
}

// Lookup returns the entry for an exact, case-sensitive symbol.
func (d *Dictionary) Lookup(symbol string) (Entry, bool) {
	e, ok := d.entries[symbol]
	return e, ok
}

// SymbolsByNameWord returns the symbols whose name contains the given
// normalized word. The returned slice is shared; callers must not mutate it.
func (d *Dictionary) SymbolsByNameWord(word string) []string {
	return d.nameIndex[NormalizeWord(word)]
}

// NameWords returns the normalized words of a symbol's canonical name and
// aliases. The returned slice is shared; callers must not mutate it.
func (d *Dictionary) NameWords(symbol string) []string {
	return d.nameWords[symbol]
}

// Len returns the number of symbols
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// normalizeWords splits a company name into normalized words, dropping
// corporate suffixes that carry no identity ("Inc", "Corp", ...).
func normalizeWords(name string) []string {
	fields := strings.Fields(name)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := NormalizeWord(f)
		if w == "" || IsCorporateSuffix(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}

// NormalizeWord lowercases and strips punctuation from a single word.
func NormalizeWord(w string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(w) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var corporateSuffixes = map[string]struct{}{
	"inc": {}, "incorporated": {}, "corp": {}, "corporation": {},
	"co": {}, "company": {}, "ltd": {}, "limited": {}, "plc": {},
	"holdings": {}, "holding": {}, "group": {}, "the": {},
}

// IsCorporateSuffix reports whether a normalized word is a corporate
// suffix dropped from name matching.
func IsCorporateSuffix(w string) bool {
	_, ok := corporateSuffixes[w]
	return ok
}

func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := words[:0]
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
