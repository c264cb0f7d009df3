package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tickerscan/internal/dictionary"
	"github.com/wonny/tickerscan/pkg/config"
	"github.com/wonny/tickerscan/pkg/database"
	"github.com/wonny/tickerscan/pkg/redis"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "구성 요소 상태 점검",
	Long: `설정과 의존 구성 요소의 상태를 점검합니다.

점검 항목:
- 설정 로드
- 사전 파일
- PostgreSQL 연결 (DATABASE_URL 설정 시)
- Redis 연결 (REDIS_ENABLED=true 시)

Example:
  go run ./cmd/tickerscan status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Tickerscan Status ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("❌ Config: %w", err)
	}
	fmt.Printf("✅ Config loaded (env=%s, port=%s)\n", cfg.Env, cfg.Port)

	if dict, err := dictionary.LoadFile(cfg.Dictionary.Path); err != nil {
		fmt.Printf("❌ Dictionary: %v\n", err)
	} else {
		fmt.Printf("✅ Dictionary: %d symbols (%s)\n", dict.Len(), cfg.Dictionary.Path)
	}

	if cfg.Database.URL == "" {
		fmt.Println("⚪ Database: DATABASE_URL not set (history disabled)")
	} else if db, err := database.New(cfg); err != nil {
		fmt.Printf("❌ Database: %v\n", err)
	} else {
		db.Close()
		fmt.Println("✅ Database: connected")
	}

	if !cfg.Redis.Enabled {
		fmt.Println("⚪ Redis: disabled (cache off)")
	} else {
		client, err := redis.New(cfg)
		if err != nil {
			fmt.Printf("❌ Redis: %v\n", err)
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := client.Redis().Ping(ctx).Err(); err != nil {
				fmt.Printf("❌ Redis: %v\n", err)
			} else {
				fmt.Println("✅ Redis: connected")
			}
			cancel()
			client.Close()
		}
	}

	return nil
}
