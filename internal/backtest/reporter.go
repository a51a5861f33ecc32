package backtest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Reporter renders backtest metrics to the console and to disk.
type Reporter struct {
	outputDir string
}

// NewReporter returns a reporter writing JSON exports under outputDir.
func NewReporter(outputDir string) *Reporter {
	return &Reporter{outputDir: outputDir}
}

// GenerateConsoleReport renders a human-readable summary.
func (r *Reporter) GenerateConsoleReport(m *Metrics) string {
	var b strings.Builder

	b.WriteString("\n" + strings.Repeat("=", 64) + "\n")
	b.WriteString(fmt.Sprintf("  BACKTEST REPORT: %s\n", m.League))
	b.WriteString(fmt.Sprintf("  %s to %s\n",
		m.StartDate.Format("2006-01-02"), m.EndDate.Format("2006-01-02")))
	b.WriteString(strings.Repeat("=", 64) + "\n\n")

	b.WriteString(fmt.Sprintf("  Matches tested:   %d\n", m.MatchesTested))
	b.WriteString(fmt.Sprintf("  Bets placed:      %d\n", m.TotalBets))
	b.WriteString(fmt.Sprintf("  No-bet matches:   %d\n", m.NoBets))
	b.WriteString(fmt.Sprintf("  Wins / Losses:    %d / %d\n", m.Wins, m.Losses))
	b.WriteString(fmt.Sprintf("  Win rate:         %.1f%%\n", m.WinRate*100))
	b.WriteString(fmt.Sprintf("  Units staked:     %s\n", m.TotalStaked.StringFixed(2)))
	b.WriteString(fmt.Sprintf("  Net units:        %+s\n", m.NetUnits.StringFixed(2)))
	b.WriteString(fmt.Sprintf("  ROI:              %+.1f%%\n\n", m.ROI*100))

	if len(m.PatternResults) > 0 {
		b.WriteString("  Per-pattern results:\n")
		b.WriteString(fmt.Sprintf("  %-32s %5s %5s %8s %9s\n",
			"PATTERN", "BETS", "WINS", "WIN%", "UNITS"))
		b.WriteString("  " + strings.Repeat("-", 62) + "\n")
		for _, pr := range m.PatternResults {
			b.WriteString(fmt.Sprintf("  %-32s %5d %5d %7.1f%% %9s\n",
				pr.PatternName, pr.Bets, pr.Wins, pr.WinRate*100, pr.NetUnits.StringFixed(2)))
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("=", 64) + "\n")
	return b.String()
}

// ExportJSON writes the full metrics, settlements included, as a JSON file
// and returns the path written.
func (r *Reporter) ExportJSON(m *Metrics) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("backtest_%s_%s.json",
		sanitize(m.League), time.Now().UTC().Format("20060102_150405"))
	path := filepath.Join(r.outputDir, name)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal metrics: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

func sanitize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "_")
	return s
}
