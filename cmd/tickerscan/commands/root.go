package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tickerscan",
	Short: "Tickerscan - 텍스트 주식 티커 스캔 엔진",
	Long: `Tickerscan Unified CLI

자유 텍스트에서 주식 티커를 추출하고 포트폴리오 후보를 생성합니다.
5단계 파이프라인: 태깅 → 매칭 → 중복 해소 → 포트폴리오 생성 → 빌드.

Usage:
  go run ./cmd/tickerscan [command]

Examples:
  go run ./cmd/tickerscan scan "Bought $AAPL and some MSFT"
  go run ./cmd/tickerscan serve
  go run ./cmd/tickerscan dict sync
  go run ./cmd/tickerscan history list`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
