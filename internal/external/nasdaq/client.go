// Package nasdaq downloads and parses the Nasdaq Trader symbol directory,
// the upstream source of the ticker dictionary.
package nasdaq

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/wonny/tickerscan/internal/dictionary"
	"github.com/wonny/tickerscan/pkg/httputil"
	"github.com/wonny/tickerscan/pkg/logger"
)

const (
	// DefaultBaseURL serves the SymbolDirectory files over HTTP.
	DefaultBaseURL = "https://www.nasdaqtrader.com/dynamic/SymDir"

	nasdaqListedFile = "nasdaqlisted.txt"
	otherListedFile  = "otherlisted.txt"
)

// Client handles communication with Nasdaq Trader
// ⭐ SSOT: SymbolDirectory 다운로드는 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Nasdaq Trader client. baseURL falls back to
// DefaultBaseURL when empty.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// FetchEntries downloads both symbol directory files and returns the
// merged, filtered dictionary entries. NASDAQ listings first, then the
// other exchanges, so the symbol set matches what the upstream publishes.
func (c *Client) FetchEntries(ctx context.Context) ([]dictionary.Entry, error) {
	nasdaqBody, err := c.fetchFile(ctx, nasdaqListedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", nasdaqListedFile, err)
	}
	entries, err := ParseNasdaqListed(nasdaqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", nasdaqListedFile, err)
	}
	c.logger.WithField("count", len(entries)).Info("Parsed NASDAQ listings")

	otherBody, err := c.fetchFile(ctx, otherListedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", otherListedFile, err)
	}
	other, err := ParseOtherListed(otherBody)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", otherListedFile, err)
	}
	c.logger.WithField("count", len(other)).Info("Parsed other exchange listings")

	return append(entries, other...), nil
}

// fetchFile downloads one directory file as text.
func (c *Client) fetchFile(ctx context.Context, name string) (string, error) {
	fullURL := fmt.Sprintf("%s/%s", c.baseURL, name)

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}
