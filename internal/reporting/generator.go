package reporting

import (
	"fmt"
	"sort"
	"time"

	"advisor-mc-lab/internal/domain"
	"advisor-mc-lab/internal/engine"
)

// Generator produces reports from simulation results.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{now: func() time.Time { return time.Now().UTC() }}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds the renderable report for one run. Goal rows are
// ordered by target amount so output is stable across runs.
func (g *Generator) Generate(title string, p *domain.ClientPortfolio, cfg engine.Config, res *domain.Result) *Report {
	goals := make([]GoalRow, 0, len(p.Goals))
	for _, goal := range p.Goals {
		label := goal.Label
		if label == "" {
			label = fmt.Sprintf("Goal@Y%d", goal.Year)
		}
		goals = append(goals, GoalRow{
			Label:       label,
			Year:        goal.Year,
			Target:      goal.Target,
			Probability: res.ProbByGoal[label],
		})
	}
	sort.Slice(goals, func(i, j int) bool {
		if goals[i].Target != goals[j].Target {
			return goals[i].Target < goals[j].Target
		}
		return goals[i].Label < goals[j].Label
	})

	return &Report{
		GeneratedAt:   g.now(),
		Title:         title,
		InitialWealth: p.InitialWealth(),
		HorizonYears:  p.HorizonYears,
		StepsPerYear:  p.StepsPerYear,
		NPaths:        cfg.NPaths,
		Seed:          cfg.Seed,
		Goals:         goals,
		Summary:       res.Summary,
		Bands:         res.Bands,
	}
}
