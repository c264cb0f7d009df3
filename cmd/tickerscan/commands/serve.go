package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tickerscan/internal/api"
	"github.com/wonny/tickerscan/internal/api/handlers"
	"github.com/wonny/tickerscan/internal/dictionary"
	"github.com/wonny/tickerscan/internal/engine"
	"github.com/wonny/tickerscan/internal/external/nasdaq"
	"github.com/wonny/tickerscan/internal/history"
	"github.com/wonny/tickerscan/internal/scheduler"
	"github.com/wonny/tickerscan/internal/scheduler/jobs"
	"github.com/wonny/tickerscan/pkg/config"
	"github.com/wonny/tickerscan/pkg/database"
	"github.com/wonny/tickerscan/pkg/httputil"
	"github.com/wonny/tickerscan/pkg/logger"
	"github.com/wonny/tickerscan/pkg/redis"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API 서버 시작",
	Long: `스캔 API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 스캔 이력 저장 (DATABASE_URL 설정 시)
- 결과 캐시 (REDIS_ENABLED=true 시)
- 사전 동기화/이력 정리 스케줄 작업 등록

Endpoints:
  GET  /health                - Health check
  POST /api/scan              - 텍스트 스캔
  GET  /api/history           - 스캔 이력 조회
  GET  /api/dictionary/stats  - 사전 통계
  GET  /ws/scan               - 웹소켓 스캔

Example:
  go run ./cmd/tickerscan serve
  go run ./cmd/tickerscan serve --port 8091`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Tickerscan API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	// 2. Initialize logger
	log := logger.New(cfg)
	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Load dictionary and build engine
	dict, err := dictionary.LoadFile(cfg.Dictionary.Path)
	if err != nil {
		return fmt.Errorf("load dictionary (run 'dict sync' first): %w", err)
	}
	log.WithField("symbols", dict.Len()).Info("Dictionary loaded")

	eng := engine.New(dict, engineConfig(cfg))

	// 4. Optional persistence
	var repo *history.Repository
	var db *database.DB
	if cfg.Database.URL != "" {
		db, err = database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		if err := history.Migrate(context.Background(), db.Pool, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		repo = history.NewRepository(db.Pool)
		log.Info("Scan history persistence enabled")
	} else {
		log.Warn("DATABASE_URL not set, scan history disabled")
	}

	// 5. Optional cache
	var cache *redis.Cache
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	if redisClient.Enabled() {
		cache = redis.NewCache(redisClient, "scan")
		log.Info("Scan result cache enabled")
	}

	// 6. Scheduled jobs
	sched := scheduler.New(log)

	httpClient := httputil.New(log).WithRateLimit(cfg.Nasdaq.RequestsPerSec)
	nasdaqClient := nasdaq.NewClient(httpClient, log, cfg.Nasdaq.BaseURL)
	if err := sched.AddJob(jobs.NewDictionarySyncJob(nasdaqClient, cfg.Dictionary.Path, log)); err != nil {
		return fmt.Errorf("schedule dictionary sync: %w", err)
	}
	if repo != nil {
		if err := sched.AddJob(jobs.NewHistoryRetentionJob(repo, cfg.History.Retention, log)); err != nil {
			return fmt.Errorf("schedule history retention: %w", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	// 7. Handlers and router
	scanHandler := handlers.NewScanHandler(eng, repo, cache, cfg.Redis.ScanCacheTTL, log)
	streamHandler := handlers.NewStreamHandler(eng, log)
	var historyHandler *handlers.HistoryHandler
	if repo != nil {
		historyHandler = handlers.NewHistoryHandler(repo, log)
	}
	router := api.NewRouter(scanHandler, historyHandler, streamHandler, log)

	// 8. Start server with graceful shutdown
	server := api.New(cfg, log, router)
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /api/scan")
	fmt.Println("  GET  /api/history")
	fmt.Println("  GET  /api/dictionary/stats")
	fmt.Println("  GET  /ws/scan")
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
