package dictionary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/wonny/tickerscan/internal/contracts"
)

var symbolPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// IsValidSymbol checks whether a symbol is acceptable for the dictionary.
//
// Rules:
//   - 1-5 uppercase letters only (no dots, dollars, special characters)
//   - 5-letter symbols ending in W/R/U/P/Q/F are rejected: the fifth
//     letter marks warrants, rights, units, preferred shares, bankrupt
//     issues and foreign listings rather than common stock.
func IsValidSymbol(symbol string) bool {
	if !symbolPattern.MatchString(symbol) {
		return false
	}

	switch symbol {
	case "TEST", "ZZZZ", "XXXX":
		return false
	}

	if len(symbol) == 5 {
		switch symbol[4] {
		case 'W', 'R', 'U', 'P', 'Q', 'F':
			return false
		}
	}

	return true
}

// LoadFile reads a JSON dictionary file: an array of entries. Entries with
// invalid symbols or empty names are rejected; a malformed file is
// ErrInvalidInput.
func LoadFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary file: %w", err)
	}

	return Parse(data)
}

// Parse builds a dictionary from raw JSON.
func Parse(data []byte) (*Dictionary, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: malformed dictionary: %v", contracts.ErrInvalidInput, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: dictionary is empty", contracts.ErrInvalidInput)
	}

	valid := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !IsValidSymbol(e.Symbol) {
			return nil, fmt.Errorf("%w: invalid symbol %q", contracts.ErrInvalidInput, e.Symbol)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("%w: symbol %q has no name", contracts.ErrInvalidInput, e.Symbol)
		}
		valid = append(valid, e)
	}

	return New(valid), nil
}

// WriteFile serializes entries to the JSON dictionary format.
func WriteFile(path string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dictionary: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dictionary directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dictionary file: %w", err)
	}

	return nil
}
