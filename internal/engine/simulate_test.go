package engine

import (
	"context"
	"errors"
	"testing"

	"advisor-mc-lab/internal/cma"
	"advisor-mc-lab/internal/domain"
)

func testPortfolio() *domain.ClientPortfolio {
	return &domain.ClientPortfolio{
		Accounts: []domain.Account{
			{Name: "Brokerage", Type: domain.AccountTaxable, Balance: 350000},
			{Name: "401k", Type: domain.AccountTaxAdvantaged, Balance: 150000},
		},
		TargetAllocation: []domain.AssetWeight{
			{Class: domain.EquityUS, Weight: 0.7},
			{Class: domain.FixedIncomeIG, Weight: 0.3},
		},
		Constraints:  domain.Constraints{RebalanceFrequency: "monthly"},
		Goals:        []domain.Goal{{Year: 20, Target: 2500000, Label: "Retirement"}},
		HorizonYears: 20,
		StepsPerYear: 12,
	}
}

func testConfig() Config {
	return Config{NPaths: 500, Seed: 42, StorePercentiles: true}
}

func TestSimulate_Reproducible(t *testing.T) {
	ctx := context.Background()
	assumptions := cma.Baseline()

	a, err := Simulate(ctx, testPortfolio(), assumptions, testConfig())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := Simulate(ctx, testPortfolio(), assumptions, testConfig())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if a.Summary != b.Summary {
		t.Errorf("summaries differ: %+v vs %+v", a.Summary, b.Summary)
	}
	for i := range a.Terminal {
		if a.Terminal[i] != b.Terminal[i] {
			t.Fatalf("terminal[%d] differs: %v vs %v", i, a.Terminal[i], b.Terminal[i])
		}
	}
	for i := range a.Bands.P50 {
		if a.Bands.P50[i] != b.Bands.P50[i] {
			t.Fatalf("band[%d] differs: %v vs %v", i, a.Bands.P50[i], b.Bands.P50[i])
		}
	}
}

func TestSimulate_WorkerCountDoesNotChangeResults(t *testing.T) {
	ctx := context.Background()
	assumptions := cma.Baseline()

	one := testConfig()
	one.Workers = 1
	many := testConfig()
	many.Workers = 8

	a, err := Simulate(ctx, testPortfolio(), assumptions, one)
	if err != nil {
		t.Fatalf("single worker: %v", err)
	}
	b, err := Simulate(ctx, testPortfolio(), assumptions, many)
	if err != nil {
		t.Fatalf("eight workers: %v", err)
	}

	for i := range a.Terminal {
		if a.Terminal[i] != b.Terminal[i] {
			t.Fatalf("terminal[%d] differs across worker counts: %v vs %v",
				i, a.Terminal[i], b.Terminal[i])
		}
	}
}

func TestSimulate_SeedChangesResults(t *testing.T) {
	ctx := context.Background()
	assumptions := cma.Baseline()

	cfg := testConfig()
	a, err := Simulate(ctx, testPortfolio(), assumptions, cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Seed = 43
	b, err := Simulate(ctx, testPortfolio(), assumptions, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if a.Summary.MedianTerminal == b.Summary.MedianTerminal {
		t.Error("different seeds produced identical medians")
	}
}

func TestSimulate_DeterministicZeroVolatility(t *testing.T) {
	// Zero volatility makes every path identical and analytically
	// predictable: 100000 grows by exactly 2% per year for 10 years.
	p := &domain.ClientPortfolio{
		Accounts: []domain.Account{
			{Name: "Savings", Type: domain.AccountTaxable, Balance: 100000},
		},
		TargetAllocation: []domain.AssetWeight{{Class: domain.Cash, Weight: 1}},
		HorizonYears:     10,
		StepsPerYear:     12,
	}
	assumptions := domain.Assumptions{
		Mu:   map[domain.AssetClass]float64{domain.Cash: 0.02},
		Vol:  map[domain.AssetClass]float64{domain.Cash: 0},
		Corr: map[domain.AssetClass]map[domain.AssetClass]float64{domain.Cash: {domain.Cash: 1}},
	}

	res, err := Simulate(context.Background(), p, assumptions, Config{NPaths: 50, Seed: 1})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	want := 100000.0
	for i := 0; i < 10; i++ {
		want *= 1.02
	}
	for i, w := range res.Terminal {
		if diff := w - want; diff > 1e-4 || diff < -1e-4 {
			t.Fatalf("terminal[%d] = %v, want %v", i, w, want)
		}
	}
	if res.Summary.P5Terminal != res.Summary.P95Terminal {
		t.Errorf("degenerate ensemble must have collapsed percentiles: %+v", res.Summary)
	}
}

func TestSimulate_SummaryAndBandOrdering(t *testing.T) {
	res, err := Simulate(context.Background(), testPortfolio(), cma.Baseline(), testConfig())
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	s := res.Summary
	if !(s.P5Terminal <= s.MedianTerminal && s.MedianTerminal <= s.P95Terminal) {
		t.Errorf("summary out of order: %+v", s)
	}
	if s.MedianTerminal <= 0 {
		t.Errorf("median terminal = %v, want positive", s.MedianTerminal)
	}

	if res.Bands == nil {
		t.Fatal("bands missing with StorePercentiles set")
	}
	if got, want := len(res.Bands.P50), 20*12+1; got != want {
		t.Fatalf("band length = %d, want %d", got, want)
	}
	if res.Bands.P50[0] != 500000 {
		t.Errorf("initial wealth in bands = %v, want 500000", res.Bands.P50[0])
	}
	for i := range res.Bands.P50 {
		if res.Bands.P10[i] > res.Bands.P50[i] || res.Bands.P50[i] > res.Bands.P90[i] {
			t.Fatalf("step %d bands out of order: [%v %v %v]",
				i, res.Bands.P10[i], res.Bands.P50[i], res.Bands.P90[i])
		}
	}

	if _, ok := res.ProbByGoal["Retirement"]; !ok {
		t.Error("goal probability missing")
	}
}

func TestSimulate_EndToEndSeed42(t *testing.T) {
	// 70/30 Equity_US/Fixed_Income_IG, $500k, 20 years monthly with
	// monthly rebalancing, 5000 paths, seed 42. The expected values come
	// from the lognormal approximation of a monthly-rebalanced portfolio
	// under the baseline assumptions: per-month E[log R] ~= 0.005036,
	// sd(log R) ~= 0.0339, so median ~= 500000*exp(240*0.005036) ~= 1.67M
	// and P(terminal >= 2.5M) ~= Phi(-0.76) ~= 0.22. The bands allow for
	// the approximation error plus Monte Carlo noise at 5000 paths
	// (median standard error is about 1%).
	cfg := Config{NPaths: 5000, Seed: 42, StorePercentiles: true}

	res, err := Simulate(context.Background(), testPortfolio(), cma.Baseline(), cfg)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	median := res.Summary.MedianTerminal
	if median < 1.40e6 || median > 2.00e6 {
		t.Errorf("median terminal = %v, want within [1.40e6, 2.00e6]", median)
	}

	prob, ok := res.ProbByGoal["Retirement"]
	if !ok {
		t.Fatal("goal probability missing")
	}
	if prob < 0.13 || prob > 0.32 {
		t.Errorf("P(Retirement) = %v, want within [0.13, 0.32]", prob)
	}

	if res.Summary.P5Terminal >= median || median >= res.Summary.P95Terminal {
		t.Errorf("summary out of order: %+v", res.Summary)
	}
}

func TestSimulate_WeightNormalization(t *testing.T) {
	ctx := context.Background()
	assumptions := cma.Baseline()

	scaled := testPortfolio()
	scaled.TargetAllocation = []domain.AssetWeight{
		{Class: domain.EquityUS, Weight: 7},
		{Class: domain.FixedIncomeIG, Weight: 3},
	}

	a, err := Simulate(ctx, testPortfolio(), assumptions, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Simulate(ctx, scaled, assumptions, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if a.Summary.MedianTerminal != b.Summary.MedianTerminal {
		t.Errorf("scaled weights changed results: %v vs %v",
			a.Summary.MedianTerminal, b.Summary.MedianTerminal)
	}
}

func TestSimulate_DuplicateClassesMerged(t *testing.T) {
	ctx := context.Background()
	assumptions := cma.Baseline()

	split := testPortfolio()
	split.TargetAllocation = []domain.AssetWeight{
		{Class: domain.EquityUS, Weight: 0.35},
		{Class: domain.FixedIncomeIG, Weight: 0.3},
		{Class: domain.EquityUS, Weight: 0.35},
	}

	a, err := Simulate(ctx, testPortfolio(), assumptions, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Simulate(ctx, split, assumptions, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if a.Summary.MedianTerminal != b.Summary.MedianTerminal {
		t.Errorf("duplicate classes changed results: %v vs %v",
			a.Summary.MedianTerminal, b.Summary.MedianTerminal)
	}
}

func TestSimulate_ZeroSumWeights(t *testing.T) {
	p := testPortfolio()
	p.TargetAllocation = []domain.AssetWeight{
		{Class: domain.EquityUS, Weight: 0},
		{Class: domain.FixedIncomeIG, Weight: 0},
	}
	_, err := Simulate(context.Background(), p, cma.Baseline(), testConfig())
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestSimulate_InvalidHorizon(t *testing.T) {
	p := testPortfolio()
	p.HorizonYears = 0
	if _, err := Simulate(context.Background(), p, cma.Baseline(), testConfig()); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for zero horizon, got %v", err)
	}

	p = testPortfolio()
	p.StepsPerYear = -1
	if _, err := Simulate(context.Background(), p, cma.Baseline(), testConfig()); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for negative steps_per_year, got %v", err)
	}
}

func TestSimulate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig()
	cfg.NPaths = 10000
	_, err := Simulate(ctx, testPortfolio(), cma.Baseline(), cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSimulate_SubsampleCapBoundsTrajectories(t *testing.T) {
	cfg := testConfig()
	cfg.NPaths = 100
	cfg.SubsampleCap = 10

	res, err := Simulate(context.Background(), testPortfolio(), cma.Baseline(), cfg)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(res.Terminal) != 100 {
		t.Errorf("terminal count = %d, want 100", len(res.Terminal))
	}
	if res.Bands == nil {
		t.Fatal("bands missing")
	}
}

func TestPathSeed_DistinctPerPath(t *testing.T) {
	seen := make(map[uint64]int)
	for i := 0; i < 10000; i++ {
		s := pathSeed(42, i)
		if prev, ok := seen[s]; ok {
			t.Fatalf("paths %d and %d share seed %d", prev, i, s)
		}
		seen[s] = i
	}
}
