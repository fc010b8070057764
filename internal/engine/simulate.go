// Package engine is the Monte Carlo path simulator. Per path it draws
// correlated per-step returns, applies them to the balance vector, then
// cash flows, then rebalancing, and hands the ensemble to the
// aggregator.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"advisor-mc-lab/internal/aggregate"
	"advisor-mc-lab/internal/cashflow"
	"advisor-mc-lab/internal/domain"
	"advisor-mc-lab/internal/mcparams"
	"advisor-mc-lab/internal/rebalance"
)

// ErrConfig indicates an invalid run configuration: zero-sum target
// weights, an empty horizon, or similar. Configuration errors are fatal
// and never retried.
var ErrConfig = errors.New("invalid simulation configuration")

// Simulate runs the Monte Carlo projection. Validation of class
// membership and weight normalization happens here, once per run.
// Cancellation stops issuing new paths and discards partial work.
func Simulate(ctx context.Context, p *domain.ClientPortfolio, assumptions domain.Assumptions, cfg Config) (*domain.Result, error) {
	cfg = cfg.withDefaults()

	if p.StepsPerYear <= 0 {
		return nil, fmt.Errorf("%w: steps_per_year must be positive, got %d", ErrConfig, p.StepsPerYear)
	}
	if p.HorizonYears <= 0 {
		return nil, fmt.Errorf("%w: horizon_years must be positive, got %d", ErrConfig, p.HorizonYears)
	}

	classes, weights, err := effectiveAllocation(p.TargetAllocation)
	if err != nil {
		return nil, err
	}

	params, err := mcparams.Derive(assumptions, classes, p.StepsPerYear)
	if err != nil {
		return nil, err
	}

	plan := cashflow.NewPlan(p.CashFlows, weights, p.StepsPerYear, cashflow.ScheduledMode(cfg.ScheduledMode))
	policy := rebalance.New(p.Constraints, classes, weights)

	initial := make([]float64, len(classes))
	for i, w := range weights {
		initial[i] = p.InitialWealth() * w
	}

	steps := p.Steps()
	terminal := make([]float64, cfg.NPaths)

	var trajectories [][]float64
	if cfg.StorePercentiles {
		keep := cfg.SubsampleCap
		if cfg.NPaths < keep {
			keep = cfg.NPaths
		}
		trajectories = make([][]float64, keep)
		for i := range trajectories {
			trajectories[i] = make([]float64, steps+1)
		}
	}

	sim := &simulation{
		params:       params,
		plan:         plan,
		policy:       policy,
		initial:      initial,
		steps:        steps,
		seed:         cfg.Seed,
		terminal:     terminal,
		trajectories: trajectories,
	}

	pathCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sim.worker(pathCh)
		}()
	}

dispatch:
	for i := 0; i < cfg.NPaths; i++ {
		select {
		case <-ctx.Done():
			break dispatch
		case pathCh <- i:
		}
	}
	close(pathCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return aggregate.Build(terminal, trajectories, p.Goals), nil
}

// effectiveAllocation deduplicates classes order-preserving, summing
// weights of repeated classes, and normalizes the weight vector.
func effectiveAllocation(allocation []domain.AssetWeight) ([]domain.AssetClass, []float64, error) {
	if len(allocation) == 0 {
		return nil, nil, fmt.Errorf("%w: target_allocation is empty", ErrConfig)
	}

	var classes []domain.AssetClass
	index := make(map[domain.AssetClass]int)
	var weights []float64
	for _, aw := range allocation {
		i, ok := index[aw.Class]
		if !ok {
			i = len(classes)
			index[aw.Class] = i
			classes = append(classes, aw.Class)
			weights = append(weights, 0)
		}
		weights[i] += aw.Weight
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return nil, nil, fmt.Errorf("%w: target_allocation weights sum to %v", ErrConfig, total)
	}
	for i := range weights {
		weights[i] /= total
	}
	return classes, weights, nil
}

// simulation is the shared read-only state plus the per-path output
// slots. Each path owns exactly one terminal slot (and trajectory row,
// when retained), so workers never contend.
type simulation struct {
	params       *mcparams.Params
	plan         *cashflow.Plan
	policy       *rebalance.Policy
	initial      []float64
	steps        int
	seed         uint64
	terminal     []float64
	trajectories [][]float64
}

func (s *simulation) worker(paths <-chan int) {
	n := len(s.initial)
	bal := make([]float64, n)
	z := make([]float64, n)
	for idx := range paths {
		s.runPath(idx, bal, z)
	}
}

// runPath simulates one path into its output slots. bal and z are
// worker-owned scratch space.
func (s *simulation) runPath(idx int, bal, z []float64) {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(pathSeed(s.seed, idx))}

	copy(bal, s.initial)

	var traj []float64
	if s.trajectories != nil && idx < len(s.trajectories) {
		traj = s.trajectories[idx]
		traj[0] = sum(bal)
	}

	n := len(bal)
	for t := 1; t <= s.steps; t++ {
		for i := range z {
			z[i] = normal.Rand()
		}
		// Correlated log-return = drift + L·z; simple return via exp.
		for i := 0; i < n; i++ {
			shock := 0.0
			for k := 0; k <= i; k++ {
				shock += s.params.Factor.At(i, k) * z[k]
			}
			bal[i] *= math.Exp(s.params.Drift[i] + shock)
		}

		s.plan.Apply(t, bal)
		s.policy.Apply(bal)

		if traj != nil {
			traj[t] = sum(bal)
		}
	}

	s.terminal[idx] = sum(bal)
}

// pathSeed derives a deterministic sub-stream seed from the base seed
// and path index (SplitMix64 finalizer). Adjacent path indices yield
// statistically independent streams.
func pathSeed(base uint64, path int) uint64 {
	x := base + 0x9e3779b97f4a7c15*uint64(path+1)
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

func sum(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s
}
