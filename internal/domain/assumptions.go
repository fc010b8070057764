package domain

import "time"

// Assumptions holds annualized capital market assumptions: expected
// return and volatility per class, and pairwise correlations as a nested
// map. Correlations are stored in either orientation; lookups must treat
// the table as symmetric and the diagonal as 1.
type Assumptions struct {
	Mu   map[AssetClass]float64                `json:"mu_ann"`
	Vol  map[AssetClass]float64                `json:"vol_ann"`
	Corr map[AssetClass]map[AssetClass]float64 `json:"corr"`
}

// AssumptionSet is a named assumption table registered by an advisor,
// referenced by name when running a simulation.
type AssumptionSet struct {
	Name        string      `json:"name"`
	Assumptions Assumptions `json:"assumptions"`
	CreatedAt   time.Time   `json:"created_at"`
}
