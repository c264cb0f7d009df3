package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/tickerscan/internal/dictionary"
	"github.com/wonny/tickerscan/internal/engine"
	"github.com/wonny/tickerscan/internal/ingest"
	"github.com/wonny/tickerscan/pkg/config"
	"github.com/wonny/tickerscan/pkg/logger"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [text]",
	Short: "텍스트에서 티커 스캔",
	Long: `텍스트를 스캔하여 주식 티커를 추출하고 포트폴리오 후보를 출력합니다.

입력 우선순위:
1. 인자로 전달된 텍스트
2. --file 플래그로 지정한 파일
3. 표준 입력 (파이프)

Example:
  go run ./cmd/tickerscan scan "Bought $AAPL and some MSFT"
  go run ./cmd/tickerscan scan --file article.txt
  cat article.html | go run ./cmd/tickerscan scan --html`,
	RunE: runScan,
}

var (
	scanFile string
	scanHTML bool
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanFile, "file", "", "스캔할 파일 경로")
	scanCmd.Flags().BoolVar(&scanHTML, "html", false, "입력을 HTML로 취급")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	text, err := readScanInput(args)
	if err != nil {
		return err
	}

	if scanHTML {
		text, err = ingest.ExtractText(text)
		if err != nil {
			return fmt.Errorf("extract text: %w", err)
		}
	}

	dict, err := dictionary.LoadFile(cfg.Dictionary.Path)
	if err != nil {
		return fmt.Errorf("❌ Failed to load dictionary (run 'dict sync' first): %w", err)
	}
	log.WithField("symbols", dict.Len()).Debug("Dictionary loaded")

	eng := engine.New(dict, engineConfig(cfg))

	result, err := eng.Scan(text)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	printScanResult(result)
	return nil
}

func readScanInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if scanFile != "" {
		data, err := os.ReadFile(scanFile)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	return "", fmt.Errorf("no input: pass text as an argument, --file, or pipe to stdin")
}
