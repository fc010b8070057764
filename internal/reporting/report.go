// Package reporting renders simulation results as Markdown, CSV and a
// percentile fan chart.
package reporting

import (
	"time"

	"advisor-mc-lab/internal/domain"
)

// GoalRow is one goal's outcome in a report.
type GoalRow struct {
	Label       string
	Year        int
	Target      float64
	Probability float64
}

// Report is the renderable view of one simulation run.
type Report struct {
	GeneratedAt   time.Time
	Title         string
	InitialWealth float64
	HorizonYears  int
	StepsPerYear  int
	NPaths        int
	Seed          uint64

	Goals   []GoalRow
	Summary domain.Summary
	Bands   *domain.PercentileBands
}
