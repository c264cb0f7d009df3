package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tickerscan/internal/dictionary"
	"github.com/wonny/tickerscan/internal/external/nasdaq"
	"github.com/wonny/tickerscan/pkg/config"
	"github.com/wonny/tickerscan/pkg/httputil"
	"github.com/wonny/tickerscan/pkg/logger"
)

// dictCmd represents the dict command
var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "티커 사전 관리",
	Long: `티커 사전을 관리합니다.

Example:
  go run ./cmd/tickerscan dict sync
  go run ./cmd/tickerscan dict info`,
}

// dictSyncCmd downloads the symbol directory and rebuilds the dictionary
var dictSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "NASDAQ 심볼 디렉토리 동기화",
	Long: `Nasdaq Trader 심볼 디렉토리를 다운로드하여 사전 파일을 갱신합니다.

처리 과정:
- nasdaqlisted.txt / otherlisted.txt 다운로드
- 테스트 종목, ETF/ETN, 파생상품 필터링
- 심볼 검증 (1-5자 대문자)
- JSON 사전 파일 저장

Example:
  go run ./cmd/tickerscan dict sync`,
	RunE: runDictSync,
}

// dictInfoCmd prints dictionary statistics
var dictInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "사전 통계 출력",
	RunE:  runDictInfo,
}

func init() {
	rootCmd.AddCommand(dictCmd)
	dictCmd.AddCommand(dictSyncCmd)
	dictCmd.AddCommand(dictInfoCmd)
}

func runDictSync(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Dictionary Sync ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	httpClient := httputil.New(log).WithRateLimit(cfg.Nasdaq.RequestsPerSec)
	client := nasdaq.NewClient(httpClient, log, cfg.Nasdaq.BaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	entries, err := client.FetchEntries(ctx)
	if err != nil {
		return fmt.Errorf("❌ Sync failed: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("❌ Upstream returned no entries")
	}

	if err := dictionary.WriteFile(cfg.Dictionary.Path, entries); err != nil {
		return fmt.Errorf("❌ Failed to write dictionary: %w", err)
	}

	fmt.Printf("✅ Synced %d symbols to %s (%s)\n", len(entries), cfg.Dictionary.Path, time.Since(start).Round(time.Millisecond))
	return nil
}

func runDictInfo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dict, err := dictionary.LoadFile(cfg.Dictionary.Path)
	if err != nil {
		return fmt.Errorf("❌ Failed to load dictionary (run 'dict sync' first): %w", err)
	}

	fmt.Println("=== Dictionary Info ===")
	fmt.Printf("  Path    : %s\n", cfg.Dictionary.Path)
	fmt.Printf("  Symbols : %d\n", dict.Len())
	return nil
}
