package commands

import (
	"fmt"

	"github.com/wonny/tickerscan/internal/contracts"
	"github.com/wonny/tickerscan/pkg/config"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// engineConfig maps application config to engine parameters.
func engineConfig(cfg *config.Config) contracts.ScanConfig {
	return contracts.ScanConfig{
		MaxWindowWords:      cfg.Scan.MaxWindowWords,
		MaxPortfolios:       cfg.Scan.MaxPortfolios,
		Deadline:            cfg.Scan.Deadline,
		ResolverVisitBudget: cfg.Scan.ResolverVisitBudget,
		MaxTextLen:          cfg.Scan.MaxTextLen,
	}
}

// printScanResult prints portfolios and metrics in a fixed layout.
func printScanResult(result contracts.ScanResult) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("  Scan Result")
	fmt.Println("───────────────────────────────────────────────────────────")

	if result.Portfolios.Empty() {
		fmt.Println("  No ticker mentions found.")
	}

	for i, p := range result.Portfolios.Portfolios {
		fmt.Printf("  Portfolio #%d (score %.3f)\n", i+1, p.Score)
		for _, e := range p.Entries {
			fmt.Printf("    %-5s %-40s weight %.2f  conf %.2f  x%d\n",
				e.Symbol, truncateName(e.Name, 40), e.Weight, e.Confidence, e.Mentions)
		}
	}

	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  Spans: %d  Candidates: %d  Resolved: %d  Visits: %d\n",
		result.Metrics.SpansTagged, result.Metrics.CandidatesFound,
		result.Metrics.CandidatesResolved, result.Metrics.ResolverVisits)
	fmt.Printf("  Elapsed: %s", result.Metrics.TotalElapsed)
	if result.Metrics.Approximate {
		fmt.Printf("  ⚠ approximate")
	}
	if result.Metrics.DeadlineHit {
		fmt.Printf("  ⚠ deadline hit")
	}
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
}

func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	return name[:max-1] + "…"
}
