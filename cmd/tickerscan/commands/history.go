package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tickerscan/internal/history"
	"github.com/wonny/tickerscan/pkg/config"
	"github.com/wonny/tickerscan/pkg/database"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "스캔 이력 조회",
	Long: `저장된 스캔 이력을 조회합니다.

Example:
  go run ./cmd/tickerscan history list
  go run ./cmd/tickerscan history list --limit 50`,
}

// historyListCmd lists recent scans
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "최근 스캔 목록",
	RunE:  runHistoryList,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)

	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "조회할 스캔 수")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("❌ Failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := history.NewRepository(db.Pool).List(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("❌ Failed to list history: %w", err)
	}

	fmt.Println("=== Scan History ===")
	if len(records) == 0 {
		fmt.Println("  (empty)")
		return nil
	}

	for _, r := range records {
		symbols := 0
		for _, p := range r.Portfolios.Portfolios {
			symbols += len(p.Entries)
		}
		flags := ""
		if r.Approximate {
			flags += " ⚠approx"
		}
		if r.DeadlineHit {
			flags += " ⚠deadline"
		}
		fmt.Printf("  #%-6d %s  len=%-7d portfolios=%-3d entries=%-4d %dms%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.TextLen, len(r.Portfolios.Portfolios), symbols, r.ElapsedMS, flags)
	}

	return nil
}
