package nasdaq

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wonny/tickerscan/internal/dictionary"
)

// Exchange code mapping for otherlisted.txt.
var exchangeMap = map[string]string{
	"A": "NYSE MKT",
	"N": "NYSE",
	"P": "NYSE ARCA",
	"Z": "BATS",
	"V": "IEX",
}

// derivativeKeywords flag security names that are not common stock:
// units, warrants, rights, preferred issues and depositary shares.
var derivativeKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bUnits?\b`),
	regexp.MustCompile(`(?i)\bWarrants?\b`),
	regexp.MustCompile(`(?i)\bPreferred Stock\b`),
	regexp.MustCompile(`(?i)\bSeries [A-Z]\b`),
	regexp.MustCompile(`(?i)\bDepositary Shares\b`),
	regexp.MustCompile(`(?i)\bAmerican Depositary Shares\b`),
	regexp.MustCompile(`(?i)\bRights?\b`),
	regexp.MustCompile(`(?i)\bTrust Preferred\b`),
	regexp.MustCompile(`(?i)\bCumulative Preferred\b`),
}

func isDerivativeName(name string) bool {
	for _, re := range derivativeKeywords {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// ParseNasdaqListed parses nasdaqlisted.txt. Pipe-delimited with a header
// row and a trailing "File Creation Time" metadata row.
//
// Keeps only normal-status common stock: test issues, ETFs, ETNs,
// derivative securities and invalid symbols are dropped.
func ParseNasdaqListed(body string) ([]dictionary.Entry, error) {
	rows, idx, err := parseRows(body)
	if err != nil {
		return nil, err
	}

	symbolCol, ok := idx["Symbol"]
	if !ok {
		return nil, fmt.Errorf("missing Symbol column")
	}
	nameCol, ok := idx["Security Name"]
	if !ok {
		return nil, fmt.Errorf("missing Security Name column")
	}
	testCol := idx["Test Issue"]
	etfCol := idx["ETF"]
	statusCol, hasStatus := idx["Financial Status"]

	var entries []dictionary.Entry
	for _, row := range rows {
		symbol := strings.TrimSpace(row[symbolCol])
		name := strings.TrimSpace(row[nameCol])

		if row[testCol] != "N" || row[etfCol] != "N" {
			continue
		}
		if hasStatus && row[statusCol] != "N" {
			continue
		}
		if strings.Contains(strings.ToUpper(name), "ETN") || isDerivativeName(name) {
			continue
		}
		if !dictionary.IsValidSymbol(symbol) || name == "" {
			continue
		}

		entries = append(entries, dictionary.Entry{
			Symbol:   symbol,
			Name:     name,
			Exchange: "NASDAQ",
		})
	}

	return entries, nil
}

// ParseOtherListed parses otherlisted.txt, which keys rows by "ACT Symbol"
// and carries a single-letter exchange code.
func ParseOtherListed(body string) ([]dictionary.Entry, error) {
	rows, idx, err := parseRows(body)
	if err != nil {
		return nil, err
	}

	symbolCol, ok := idx["ACT Symbol"]
	if !ok {
		return nil, fmt.Errorf("missing ACT Symbol column")
	}
	nameCol, ok := idx["Security Name"]
	if !ok {
		return nil, fmt.Errorf("missing Security Name column")
	}
	testCol := idx["Test Issue"]
	etfCol := idx["ETF"]
	exchCol, hasExch := idx["Exchange"]

	var entries []dictionary.Entry
	for _, row := range rows {
		symbol := strings.TrimSpace(row[symbolCol])
		name := strings.TrimSpace(row[nameCol])

		if row[testCol] != "N" || row[etfCol] != "N" {
			continue
		}
		if strings.Contains(strings.ToUpper(name), "ETN") || isDerivativeName(name) {
			continue
		}
		if !dictionary.IsValidSymbol(symbol) || name == "" {
			continue
		}

		exchange := "OTHER"
		if hasExch {
			code := strings.TrimSpace(row[exchCol])
			if mapped, ok := exchangeMap[code]; ok {
				exchange = mapped
			} else if code != "" {
				exchange = code
			}
		}

		entries = append(entries, dictionary.Entry{
			Symbol:   symbol,
			Name:     name,
			Exchange: exchange,
		})
	}

	return entries, nil
}

// parseRows splits a pipe-delimited directory file into data rows and a
// header index. The trailing metadata row ("File Creation Time: ...") is
// dropped, as are rows with fewer columns than the header.
func parseRows(body string) ([][]string, map[string]int, error) {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")

	var header []string
	var rows [][]string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "File Creation Time") {
			continue
		}

		cols := strings.Split(line, "|")
		if header == nil {
			header = cols
			continue
		}
		if len(cols) < len(header) {
			continue
		}
		rows = append(rows, cols)
	}

	if header == nil {
		return nil, nil, fmt.Errorf("empty directory file")
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	return rows, idx, nil
}
