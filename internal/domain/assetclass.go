package domain

import "strings"

// AssetClass identifies a modeled asset class.
type AssetClass string

// Baseline asset classes covered by the default capital market assumptions.
const (
	EquityUS         AssetClass = "Equity_US"
	EquityUSSmallMid AssetClass = "Equity_US_SmallMid"
	EquityIntlDev    AssetClass = "Equity_Intl_Dev"
	EquityIntlEM     AssetClass = "Equity_Intl_EM"
	FixedIncomeIG    AssetClass = "Fixed_Income_IG"
	FixedIncomeMuni  AssetClass = "Fixed_Income_Muni"
	FixedIncomeIntl  AssetClass = "Fixed_Income_Intl"
	AlternativesREIT AssetClass = "Alternatives_REIT"
	AltOther         AssetClass = "Alternatives_Other"
	Cash             AssetClass = "Cash"
)

// Category groups asset classes for correlation assignment and
// cash-like detection.
type Category string

// Category constants.
const (
	CategoryEquity      Category = "equity"
	CategoryFixedIncome Category = "fixed_income"
	CategoryRealEstate  Category = "real_estate"
	CategoryAlternative Category = "alternative"
	CategoryCashLike    Category = "cash_like"
)

// categories maps every baseline class to its category explicitly.
// Custom classes fall back to name-marker classification below.
var categories = map[AssetClass]Category{
	EquityUS:         CategoryEquity,
	EquityUSSmallMid: CategoryEquity,
	EquityIntlDev:    CategoryEquity,
	EquityIntlEM:     CategoryEquity,
	FixedIncomeIG:    CategoryFixedIncome,
	FixedIncomeMuni:  CategoryFixedIncome,
	FixedIncomeIntl:  CategoryFixedIncome,
	AlternativesREIT: CategoryRealEstate,
	AltOther:         CategoryAlternative,
	Cash:             CategoryCashLike,
}

// Classify returns the category of an asset class. Baseline classes use
// the explicit table; unknown classes are classified by name markers so
// that custom assumption sets keep working.
func Classify(c AssetClass) Category {
	if cat, ok := categories[c]; ok {
		return cat
	}

	name := string(c)
	switch {
	case strings.Contains(name, "Cash"),
		strings.Contains(name, "Money"),
		strings.Contains(name, "TBill"):
		return CategoryCashLike
	case strings.Contains(name, "REIT"):
		return CategoryRealEstate
	case strings.Contains(name, "Equity"):
		return CategoryEquity
	case strings.Contains(name, "Fixed"):
		return CategoryFixedIncome
	default:
		return CategoryAlternative
	}
}

// CashLikeIndex returns the index of the class that should absorb the
// liquidity floor: the first cash-like class, else the first fixed-income
// class, else -1.
func CashLikeIndex(classes []AssetClass) int {
	for i, c := range classes {
		if Classify(c) == CategoryCashLike {
			return i
		}
	}
	for i, c := range classes {
		if Classify(c) == CategoryFixedIncome {
			return i
		}
	}
	return -1
}
