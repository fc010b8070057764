package engine

import "runtime"

// Defaults applied by Config.withDefaults.
const (
	DefaultPaths        = 10000
	DefaultSeed         = 42
	DefaultSubsampleCap = 1500
)

// Config holds run parameters.
type Config struct {
	// NPaths is the number of independent simulated paths.
	NPaths int

	// Seed is the base seed. Every path derives its own deterministic
	// sub-stream from (Seed, path index), so results are identical
	// regardless of worker count or completion order.
	Seed uint64

	// StorePercentiles retains per-step trajectories for a subsample of
	// paths and computes time-series percentile bands from them.
	StorePercentiles bool

	// SubsampleCap bounds how many full trajectories are retained when
	// StorePercentiles is set. Paths beyond the cap contribute only to
	// the terminal distribution. This is a memory/compute trade-off:
	// bands reflect the subsample, not the full ensemble.
	SubsampleCap int

	// Workers is the number of goroutines simulating paths.
	// Defaults to GOMAXPROCS.
	Workers int

	// ScheduledMode selects scheduled-flow step granularity; see
	// cashflow.ScheduledMode. Empty means the default per-step
	// behavior.
	ScheduledMode string
}

func (c Config) withDefaults() Config {
	if c.NPaths <= 0 {
		c.NPaths = DefaultPaths
	}
	if c.SubsampleCap <= 0 {
		c.SubsampleCap = DefaultSubsampleCap
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}
