package rebalance

import (
	"math"
	"testing"

	"advisor-mc-lab/internal/domain"
)

func TestApply_ResetsToTargetWeights(t *testing.T) {
	classes := []domain.AssetClass{domain.EquityUS, domain.FixedIncomeIG}
	weights := []float64{0.7, 0.3}
	p := New(domain.Constraints{RebalanceFrequency: "monthly"}, classes, weights)

	bal := []float64{900, 100}
	p.Apply(bal)
	if math.Abs(bal[0]-700) > 1e-9 || math.Abs(bal[1]-300) > 1e-9 {
		t.Errorf("balances = %v, want [700 300]", bal)
	}
}

func TestApply_PreservesTotal(t *testing.T) {
	classes := []domain.AssetClass{domain.EquityUS, domain.FixedIncomeIG, domain.Cash}
	weights := []float64{0.6, 0.35, 0.05}
	p := New(domain.Constraints{RebalanceFrequency: "monthly", LiquidityFloorPct: 0.10}, classes, weights)

	bal := []float64{80000, 15000, 1000}
	before := bal[0] + bal[1] + bal[2]
	p.Apply(bal)
	after := bal[0] + bal[1] + bal[2]
	if math.Abs(before-after) > 1e-6 {
		t.Errorf("total changed: %v -> %v", before, after)
	}
}

func TestApply_LiquidityFloorTopUp(t *testing.T) {
	classes := []domain.AssetClass{domain.EquityUS, domain.Cash}
	// Cash target share equals the floor so the reset keeps it there.
	weights := []float64{0.9, 0.1}
	p := New(domain.Constraints{RebalanceFrequency: "monthly", LiquidityFloorPct: 0.1}, classes, weights)

	bal := []float64{99000, 1000}
	p.Apply(bal)
	total := bal[0] + bal[1]
	if math.Abs(total-100000) > 1e-6 {
		t.Errorf("total = %v, want 100000", total)
	}
	if bal[1] < 0.1*total-1e-6 {
		t.Errorf("cash %v below floor %v", bal[1], 0.1*total)
	}
}

func TestApply_FloorWithoutCashLikeClass(t *testing.T) {
	classes := []domain.AssetClass{domain.EquityUS, domain.AlternativesREIT}
	weights := []float64{0.5, 0.5}
	p := New(domain.Constraints{RebalanceFrequency: "monthly", LiquidityFloorPct: 0.2}, classes, weights)

	bal := []float64{800, 200}
	p.Apply(bal)
	if math.Abs(bal[0]-500) > 1e-9 || math.Abs(bal[1]-500) > 1e-9 {
		t.Errorf("balances = %v, want [500 500]", bal)
	}
}

func TestApply_DisabledFrequency(t *testing.T) {
	classes := []domain.AssetClass{domain.EquityUS, domain.FixedIncomeIG}
	weights := []float64{0.7, 0.3}
	p := New(domain.Constraints{RebalanceFrequency: "quarterly"}, classes, weights)

	if p.Enabled() {
		t.Fatal("policy enabled for non-monthly frequency")
	}
	bal := []float64{900, 100}
	p.Apply(bal)
	if bal[0] != 900 || bal[1] != 100 {
		t.Errorf("disabled policy changed balances: %v", bal)
	}
}

func TestApply_FrequencyCaseInsensitive(t *testing.T) {
	classes := []domain.AssetClass{domain.EquityUS}
	p := New(domain.Constraints{RebalanceFrequency: "Monthly"}, classes, []float64{1})
	if !p.Enabled() {
		t.Error("frequency match must be case-insensitive")
	}
}

func TestApply_FixedIncomeFallbackForFloor(t *testing.T) {
	// Without a cash-like class the floor falls back to the first
	// fixed-income class for the top-up.
	classes := []domain.AssetClass{domain.EquityUS, domain.FixedIncomeIG}
	weights := []float64{0.5, 0.5}
	p := New(domain.Constraints{RebalanceFrequency: "monthly", LiquidityFloorPct: 0.3}, classes, weights)

	bal := []float64{950, 50}
	p.Apply(bal)
	total := bal[0] + bal[1]
	if math.Abs(total-1000) > 1e-6 {
		t.Errorf("total = %v, want 1000", total)
	}
	if math.Abs(bal[1]-500) > 1e-9 {
		t.Errorf("fixed income after reset = %v, want 500", bal[1])
	}
}
