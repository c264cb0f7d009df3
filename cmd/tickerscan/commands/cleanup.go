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

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "데이터 정리 도구",
	Long: `데이터베이스 정리 작업을 수행합니다.

Example:
  tickerscan cleanup history`,
}

// cleanupHistoryCmd deletes scans past the retention window
var cleanupHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "보존 기간이 지난 스캔 이력 삭제",
	Long: `보존 기간(HISTORY_RETENTION, 기본 720h)이 지난 스캔 이력을 삭제합니다.

serve 실행 중에는 매일 새벽 4시에 자동으로 수행되는 작업과 동일합니다.

Example:
  tickerscan cleanup history
  tickerscan cleanup history --older-than 168h`,
	RunE: runCleanupHistory,
}

var cleanupOlderThan time.Duration

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.AddCommand(cleanupHistoryCmd)

	cleanupHistoryCmd.Flags().DurationVar(&cleanupOlderThan, "older-than", 0, "보존 기간 재정의 (예: 168h)")
}

func runCleanupHistory(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Scan History Cleanup ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}

	retention := cfg.History.Retention
	if cleanupOlderThan > 0 {
		retention = cleanupOlderThan
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("❌ Failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-retention)
	fmt.Printf("📊 Deleting scans created before %s\n", cutoff.Format("2006-01-02 15:04:05"))

	deleted, err := history.NewRepository(db.Pool).DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("❌ Cleanup failed: %w", err)
	}

	if deleted == 0 {
		fmt.Println("✅ No data to clean up")
		return nil
	}

	fmt.Printf("✅ Deleted %d scans\n", deleted)
	return nil
}
