package domain

import "testing"

func TestClassify_BaselineClasses(t *testing.T) {
	cases := []struct {
		class AssetClass
		want  Category
	}{
		{EquityUS, CategoryEquity},
		{EquityIntlEM, CategoryEquity},
		{FixedIncomeIG, CategoryFixedIncome},
		{AlternativesREIT, CategoryRealEstate},
		{AltOther, CategoryAlternative},
		{Cash, CategoryCashLike},
	}

	for _, tc := range cases {
		if got := Classify(tc.class); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.class, got, tc.want)
		}
	}
}

func TestClassify_CustomClassesByMarker(t *testing.T) {
	cases := []struct {
		class AssetClass
		want  Category
	}{
		{"Money_Market", CategoryCashLike},
		{"TBill_Ladder", CategoryCashLike},
		{"Equity_Frontier", CategoryEquity},
		{"Fixed_Income_HY", CategoryFixedIncome},
		{"Global_REIT", CategoryRealEstate},
		{"Commodities", CategoryAlternative},
	}

	for _, tc := range cases {
		if got := Classify(tc.class); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.class, got, tc.want)
		}
	}
}

func TestCashLikeIndex_PrefersCashLike(t *testing.T) {
	classes := []AssetClass{EquityUS, FixedIncomeIG, Cash}
	if got := CashLikeIndex(classes); got != 2 {
		t.Errorf("CashLikeIndex = %d, want 2", got)
	}
}

func TestCashLikeIndex_FallsBackToFixedIncome(t *testing.T) {
	classes := []AssetClass{EquityUS, FixedIncomeIG, FixedIncomeMuni}
	if got := CashLikeIndex(classes); got != 1 {
		t.Errorf("CashLikeIndex = %d, want 1", got)
	}
}

func TestCashLikeIndex_NoQualifyingClass(t *testing.T) {
	classes := []AssetClass{EquityUS, AlternativesREIT}
	if got := CashLikeIndex(classes); got != -1 {
		t.Errorf("CashLikeIndex = %d, want -1", got)
	}
}
