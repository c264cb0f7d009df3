// Package ingest converts non-plain-text inputs into the plain text the
// scan engine consumes.
package ingest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// skipTags hold no prose worth scanning.
var skipTags = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {},
	"head": {}, "iframe": {}, "svg": {},
}

// ExtractText strips an HTML document down to its visible text. Block
// elements become newline-separated paragraphs so tickers from unrelated
// sections do not collapse into adjacent words.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, iframe, svg").Remove()

	var sb strings.Builder
	doc.Find("p, h1, h2, h3, h4, h5, h6, li, td, th, blockquote, pre, div").Each(func(_ int, s *goquery.Selection) {
		// Leaf-ish blocks only: a div wrapping other blocks would
		// duplicate their text.
		if s.Children().Filter("p, div, li, table, ul, ol, blockquote").Length() > 0 {
			return
		}
		text := normalizeSpace(s.Text())
		if text == "" {
			return
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	})

	out := strings.TrimSpace(sb.String())
	if out == "" {
		// Markup without block structure still may carry text.
		out = normalizeSpace(doc.Text())
	}

	return out, nil
}

// normalizeSpace collapses whitespace runs to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
