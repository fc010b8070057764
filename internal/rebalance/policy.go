// Package rebalance restores a balance vector toward target weights,
// honoring a liquidity floor on a cash-like class. Rebalancing is a pure
// reallocation: total wealth is never changed.
package rebalance

import (
	"strings"

	"advisor-mc-lab/internal/domain"
)

// Policy is the per-run rebalancing configuration, shared read-only by
// all paths.
type Policy struct {
	enabled bool
	floor   float64
	cashIdx int // -1 when no qualifying class exists
	weights []float64
}

// New builds the policy for a class ordering and normalized target
// weights. Only monthly rebalancing is supported; any other frequency
// disables rebalancing entirely.
func New(c domain.Constraints, classes []domain.AssetClass, weights []float64) *Policy {
	return &Policy{
		enabled: strings.EqualFold(c.RebalanceFrequency, "monthly"),
		floor:   c.LiquidityFloorPct,
		cashIdx: domain.CashLikeIndex(classes),
		weights: weights,
	}
}

// Enabled reports whether Apply will do anything.
func (p *Policy) Enabled() bool { return p.enabled }

// Apply rebalances in place. When a liquidity floor is configured and a
// cash-like class exists, the cash balance is first topped up to
// floor × total by pulling the deficit from the other classes
// proportionally to their balances (zero-sum), then every class is reset
// to its target share of total wealth.
func (p *Policy) Apply(balances []float64) {
	if !p.enabled {
		return
	}

	total := sum(balances)
	if p.floor > 0 && p.cashIdx >= 0 {
		minCash := p.floor * total
		if balances[p.cashIdx] < minCash {
			deficit := minCash - balances[p.cashIdx]
			pool := total - balances[p.cashIdx]
			if pool > 0 {
				for i := range balances {
					if i == p.cashIdx {
						continue
					}
					balances[i] -= deficit * balances[i] / pool
				}
				balances[p.cashIdx] += deficit
			}
		}
		total = sum(balances)
	}

	for i := range balances {
		balances[i] = total * p.weights[i]
	}
}

func sum(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s
}
