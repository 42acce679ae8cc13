package ui

import "fmt"

// FormatPercent renders a percentage with one decimal, e.g. "55.5%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatUsage renders whole-GB usage, e.g. "8GB / 16GB (50.0%)".
func FormatUsage(usedGB, totalGB uint64, pct float64) string {
	return fmt.Sprintf("%dGB / %dGB (%.1f%%)", usedGB, totalGB, pct)
}
