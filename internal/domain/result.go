package domain

// Summary holds terminal-wealth summary statistics across all paths.
type Summary struct {
	MedianTerminal float64 `json:"median_terminal"`
	P5Terminal     float64 `json:"p5_terminal"`
	P95Terminal    float64 `json:"p95_terminal"`
}

// PercentileBands holds the 10th/50th/90th percentile of total wealth at
// every step, including step 0 (initial wealth). Each slice has length
// steps+1.
type PercentileBands struct {
	P10 []float64 `json:"p10"`
	P50 []float64 `json:"p50"`
	P90 []float64 `json:"p90"`
}

// Result is the terminal artifact of a simulation run.
//
// Terminal holds per-path terminal wealth for all paths; it is kept for
// callers that post-process the distribution but excluded from the JSON
// contract. Bands are computed from a capped subsample of paths, not the
// full ensemble (see engine.Config.SubsampleCap).
type Result struct {
	Terminal   []float64          `json:"-"`
	ProbByGoal map[string]float64 `json:"prob_by_goal"`
	Summary    Summary            `json:"summary"`
	Bands      *PercentileBands   `json:"ptiles_over_time,omitempty"`
}
