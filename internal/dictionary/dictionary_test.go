package dictionary

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tickerscan/internal/contracts"
)

func testEntries() []Entry {
	return []Entry{
		{Symbol: "AAPL", Name: "Apple Inc", Exchange: "NASDAQ"},
		{Symbol: "MSFT", Name: "Microsoft Corp", Exchange: "NASDAQ"},
		{Symbol: "GM", Name: "General Motors Company", Exchange: "NYSE"},
	}
}

func TestLookup(t *testing.T) {
	d := New(testEntries())

	e, ok := d.Lookup("AAPL")
	require.True(t, ok)
	assert.Equal(t, "Apple Inc", e.Name)

	_, ok = d.Lookup("aapl")
	assert.False(t, ok, "lookup is case-sensitive")

	_, ok = d.Lookup("ZZZZ")
	assert.False(t, ok)
}

func TestNameIndex(t *testing.T) {
	d := New(testEntries())

	assert.Equal(t, []string{"AAPL"}, d.SymbolsByNameWord("apple"))
	assert.Equal(t, []string{"AAPL"}, d.SymbolsByNameWord("Apple"), "index lookups normalize")
	assert.Equal(t, []string{"GM"}, d.SymbolsByNameWord("motors"))

	// Corporate suffixes are not indexed
	assert.Empty(t, d.SymbolsByNameWord("inc"))
	assert.Empty(t, d.SymbolsByNameWord("company"))
}

func TestNameWords(t *testing.T) {
	d := New(testEntries())

	assert.Equal(t, []string{"apple"}, d.NameWords("AAPL"))
	assert.Equal(t, []string{"general", "motors"}, d.NameWords("GM"))
}

func TestIsValidSymbol(t *testing.T) {
	tests := []struct {
		symbol string
		want   bool
	}{
		{"AAPL", true},
		{"A", true},
		{"GOOGL", true},
		{"aapl", false},
		{"", false},
		{"TOOLONG", false},
		{"BRK.A", false},
		{"$AAPL", false},
		{"TEST", false},
		{"ZZZZ", false},
		{"AACBU", false}, // unit
		{"ADSEW", false}, // warrant
		{"BKHAR", false}, // right
		{"AIRTP", false}, // preferred
		{"GOOGL", true},  // L is fine as a fifth letter
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidSymbol(tt.symbol))
		})
	}
}

func TestParse(t *testing.T) {
	d, err := Parse([]byte(`[
		{"symbol": "AAPL", "name": "Apple Inc"},
		{"symbol": "MSFT", "name": "Microsoft Corp", "aliases": ["Microsoft"]}
	]`))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrInvalidInput))
}

func TestParseRejectsBadSymbol(t *testing.T) {
	_, err := Parse([]byte(`[{"symbol": "brk.a", "name": "Berkshire"}]`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrInvalidInput))
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse([]byte(`[]`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrInvalidInput))
}

func TestWriteAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.json")

	require.NoError(t, WriteFile(path, testEntries()))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())

	e, ok := d.Lookup("MSFT")
	require.True(t, ok)
	assert.Equal(t, "Microsoft Corp", e.Name)
}
