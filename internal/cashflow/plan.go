// Package cashflow applies recurring and scheduled contributions or
// withdrawals to a path's per-class balance vector.
package cashflow

import "advisor-mc-lab/internal/domain"

// ScheduledMode selects how a scheduled flow without a repeat window is
// distributed across the steps of its target year.
//
// The upstream advisor API fires the full amount on every step of the
// year (ScheduledPerStep), which inflates per-year totals by the
// steps-per-year factor. Whether that was intended is unresolved, so
// both behaviors are available; ScheduledPerStep stays the default for
// compatibility. ScheduledSpread divides the amount evenly across the
// year's steps so the year total equals the stated amount.
type ScheduledMode string

// Scheduled mode constants.
const (
	ScheduledPerStep ScheduledMode = "per_step"
	ScheduledSpread  ScheduledMode = "spread"
)

// window is a precomputed firing range in step numbers (1-indexed,
// inclusive) with the amount added per firing step.
type window struct {
	from, to int
	amount   float64
}

// Plan is the per-run cash-flow schedule, shared read-only by all
// paths. Amounts are distributed across classes proportional to the
// normalized target weights.
type Plan struct {
	recurring float64 // total recurring amount per step
	weights   []float64
	windows   []window
}

// NewPlan compiles portfolio flows against normalized target weights.
// Recurring: taxable monthly amounts apply per step as-is, tax-advantaged
// annual amounts are split evenly across the year's steps.
func NewPlan(flows domain.CashFlows, weights []float64, stepsPerYear int, mode ScheduledMode) *Plan {
	if mode == "" {
		mode = ScheduledPerStep
	}

	recurring := 0.0
	for _, rf := range flows.Recurring {
		switch rf.AccountType {
		case domain.AccountTaxable:
			recurring += rf.AmountMonthly
		case domain.AccountTaxAdvantaged:
			recurring += rf.AmountAnnual / float64(stepsPerYear)
		}
	}

	windows := make([]window, 0, len(flows.Scheduled))
	for _, sf := range flows.Scheduled {
		first := (sf.Year-1)*stepsPerYear + 1
		w := window{from: first, amount: sf.Amount}
		if sf.RepeatMonths != nil {
			// Repeating flows fire the stated amount each step of the
			// window in both modes.
			w.to = first + *sf.RepeatMonths - 1
		} else {
			w.to = first + stepsPerYear - 1
			if mode == ScheduledSpread {
				w.amount = sf.Amount / float64(stepsPerYear)
			}
		}
		windows = append(windows, w)
	}

	return &Plan{recurring: recurring, weights: weights, windows: windows}
}

// Apply adds the step-t flows to balances in place. Steps are 1-indexed.
func (p *Plan) Apply(t int, balances []float64) {
	add := p.recurring
	for _, w := range p.windows {
		if t >= w.from && t <= w.to {
			add += w.amount
		}
	}
	if add == 0 {
		return
	}
	for i := range balances {
		balances[i] += add * p.weights[i]
	}
}
