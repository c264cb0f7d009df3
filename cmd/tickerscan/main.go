package main

import (
	"os"

	"github.com/wonny/tickerscan/cmd/tickerscan/commands"
)

// main is the entry point for the tickerscan CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/tickerscan [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
