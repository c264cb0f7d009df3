package contracts

// TagKind classifies why a region of text looks ticker-like.
type TagKind int

const (
	// TagSymbolPrefixed is a $-prefixed token such as "$AAPL". Highest
	// prior confidence.
	TagSymbolPrefixed TagKind = iota

	// TagUppercaseRun is a bare run of 1-5 uppercase letters that is not
	// part of a larger word, such as "MSFT".
	TagUppercaseRun

	// TagNamePhrase is a capitalized multi-word phrase that could be a
	// company name, such as "Apple Inc". Used only as a seed for
	// name-phrase matching.
	TagNamePhrase
)

// String returns a human-readable tag kind
func (k TagKind) String() string {
	switch k {
	case TagSymbolPrefixed:
		return "symbol_prefixed"
	case TagUppercaseRun:
		return "uppercase_run"
	case TagNamePhrase:
		return "name_phrase"
	default:
		return "unknown"
	}
}

// TaggedSpan is a contiguous region of the document flagged as ticker-like.
// Produced by the tagger, consumed by the span matcher, never mutated.
type TaggedSpan struct {
	Start int     `json:"start"`
	End   int     `json:"end"` // exclusive
	Text  string  `json:"text"`
	Kind  TagKind `json:"kind"`
}
