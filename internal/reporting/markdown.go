package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders a report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	title := r.Title
	if title == "" {
		title = "Portfolio Projection"
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Paths: %d | Seed: %d | Horizon: %d years | Steps/Year: %d\n\n",
		r.NPaths, r.Seed, r.HorizonYears, r.StepsPerYear))
	sb.WriteString(fmt.Sprintf("Initial wealth: %.2f\n\n", r.InitialWealth))

	sb.WriteString("## Goal Probabilities\n\n")
	if len(r.Goals) == 0 {
		sb.WriteString("No goals configured.\n\n")
	} else {
		sb.WriteString("| Goal | Year | Target | Probability |\n")
		sb.WriteString("|------|------|--------|-------------|\n")
		for _, g := range r.Goals {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.2f | %.1f%% |\n",
				g.Label, g.Year, g.Target, g.Probability*100))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Terminal Wealth\n\n")
	sb.WriteString("| Statistic | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Median | %.2f |\n", r.Summary.MedianTerminal))
	sb.WriteString(fmt.Sprintf("| 5th percentile | %.2f |\n", r.Summary.P5Terminal))
	sb.WriteString(fmt.Sprintf("| 95th percentile | %.2f |\n", r.Summary.P95Terminal))
	sb.WriteString("\n")

	if r.Bands != nil {
		sb.WriteString("## Wealth Bands\n\n")
		sb.WriteString("Percentiles are computed from a capped subsample of paths, ")
		sb.WriteString("not the full ensemble.\n\n")
		sb.WriteString("| Year | p10 | p50 | p90 |\n")
		sb.WriteString("|------|-----|-----|-----|\n")
		for step := 0; step < len(r.Bands.P50); step += r.StepsPerYear {
			sb.WriteString(fmt.Sprintf("| %d | %.2f | %.2f | %.2f |\n",
				step/r.StepsPerYear, r.Bands.P10[step], r.Bands.P50[step], r.Bands.P90[step]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
