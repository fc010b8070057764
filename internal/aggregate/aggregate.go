// Package aggregate reduces a path ensemble into goal probabilities,
// terminal summary statistics and percentile trajectories.
package aggregate

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"advisor-mc-lab/internal/domain"
)

// Build computes the result from per-path terminal wealth (all paths)
// and the retained subsample trajectories (nil when time-series
// percentiles were not requested). Trajectories cover only the first
// SubsampleCap paths; the terminal summary always covers the full
// ensemble.
func Build(terminal []float64, trajectories [][]float64, goals []domain.Goal) *domain.Result {
	res := &domain.Result{
		Terminal:   terminal,
		ProbByGoal: probByGoal(terminal, goals),
		Summary: domain.Summary{
			MedianTerminal: quantile(terminal, 0.50),
			P5Terminal:     quantile(terminal, 0.05),
			P95Terminal:    quantile(terminal, 0.95),
		},
	}
	if trajectories != nil {
		res.Bands = bands(trajectories)
	}
	return res
}

// probByGoal computes, per goal, the fraction of paths whose terminal
// wealth meets or exceeds the target. Goals without a label get
// "Goal@Y<year>".
func probByGoal(terminal []float64, goals []domain.Goal) map[string]float64 {
	probs := make(map[string]float64, len(goals))
	for _, g := range goals {
		label := g.Label
		if label == "" {
			label = fmt.Sprintf("Goal@Y%d", g.Year)
		}
		hits := 0
		for _, w := range terminal {
			if w >= g.Target {
				hits++
			}
		}
		probs[label] = float64(hits) / float64(len(terminal))
	}
	return probs
}

// bands computes p10/p50/p90 of total wealth at every step index across
// the retained trajectories. Every trajectory has length steps+1; index
// 0 is initial wealth, identical across paths.
func bands(trajectories [][]float64) *domain.PercentileBands {
	steps := len(trajectories[0])
	b := &domain.PercentileBands{
		P10: make([]float64, steps),
		P50: make([]float64, steps),
		P90: make([]float64, steps),
	}

	column := make([]float64, len(trajectories))
	for t := 0; t < steps; t++ {
		for i, traj := range trajectories {
			column[i] = traj[t]
		}
		sort.Float64s(column)
		b.P10[t] = stat.Quantile(0.10, stat.LinInterp, column, nil)
		b.P50[t] = stat.Quantile(0.50, stat.LinInterp, column, nil)
		b.P90[t] = stat.Quantile(0.90, stat.LinInterp, column, nil)
	}
	return b
}

// quantile sorts a copy and interpolates linearly between order
// statistics, the same convention numpy's percentile uses.
func quantile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}
