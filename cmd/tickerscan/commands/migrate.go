package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tickerscan/internal/history"
	"github.com/wonny/tickerscan/pkg/config"
	"github.com/wonny/tickerscan/pkg/database"
	"github.com/wonny/tickerscan/pkg/logger"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "데이터베이스 스키마 마이그레이션",
	Long: `스캔 이력 테이블의 스키마 마이그레이션을 적용합니다.

적용된 버전은 schema_migrations에 기록되어 재실행해도 안전합니다.

Example:
  go run ./cmd/tickerscan migrate`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Database Migration ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}
	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("❌ Failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := history.Migrate(ctx, db.Pool, log); err != nil {
		return fmt.Errorf("❌ Migration failed: %w", err)
	}

	fmt.Println("✅ Migrations applied")
	return nil
}
