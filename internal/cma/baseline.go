// Package cma provides the capital market assumption model: the baseline
// assumption set, override semantics, and validation against the classes
// a portfolio actually uses.
package cma

import "advisor-mc-lab/internal/domain"

// baselineMu and baselineVol are the default annualized assumptions for
// the ten baseline classes.
var baselineMu = map[domain.AssetClass]float64{
	domain.EquityUS:         0.07,
	domain.EquityUSSmallMid: 0.08,
	domain.EquityIntlDev:    0.065,
	domain.EquityIntlEM:     0.085,
	domain.FixedIncomeIG:    0.035,
	domain.FixedIncomeMuni:  0.03,
	domain.FixedIncomeIntl:  0.03,
	domain.AlternativesREIT: 0.055,
	domain.AltOther:         0.05,
	domain.Cash:             0.02,
}

var baselineVol = map[domain.AssetClass]float64{
	domain.EquityUS:         0.16,
	domain.EquityUSSmallMid: 0.20,
	domain.EquityIntlDev:    0.17,
	domain.EquityIntlEM:     0.23,
	domain.FixedIncomeIG:    0.07,
	domain.FixedIncomeMuni:  0.06,
	domain.FixedIncomeIntl:  0.08,
	domain.AlternativesREIT: 0.18,
	domain.AltOther:         0.12,
	domain.Cash:             0.01,
}

// categoryPair keys the baseline correlation table by unordered category
// pair.
type categoryPair struct {
	a, b domain.Category
}

func pairOf(a, b domain.Category) categoryPair {
	if b < a {
		a, b = b, a
	}
	return categoryPair{a, b}
}

// categoryCorr assigns a correlation to every category pair. Cash-like
// pairs are checked first; the remaining pairs fall back to
// defaultCategoryCorr. This is the explicit, enumerated replacement for
// classifying pairs by substring matching on class names.
var categoryCorr = map[categoryPair]float64{
	pairOf(domain.CategoryEquity, domain.CategoryEquity):           0.75,
	pairOf(domain.CategoryEquity, domain.CategoryRealEstate):       0.65,
	pairOf(domain.CategoryEquity, domain.CategoryFixedIncome):      0.20,
	pairOf(domain.CategoryFixedIncome, domain.CategoryFixedIncome): 0.35,
}

const defaultCategoryCorr = 0.30

// cashLikeCorr applies to any pair involving a cash-like class.
const cashLikeCorr = 0.05

// correlationFor returns the baseline correlation between two classes.
func correlationFor(a, b domain.AssetClass) float64 {
	if a == b {
		return 1.0
	}
	ca, cb := domain.Classify(a), domain.Classify(b)
	if ca == domain.CategoryCashLike || cb == domain.CategoryCashLike {
		return cashLikeCorr
	}
	if corr, ok := categoryCorr[pairOf(ca, cb)]; ok {
		return corr
	}
	return defaultCategoryCorr
}

// Baseline returns the default assumption set with a full, symmetric
// correlation table over the baseline classes.
func Baseline() domain.Assumptions {
	mu := make(map[domain.AssetClass]float64, len(baselineMu))
	vol := make(map[domain.AssetClass]float64, len(baselineVol))
	classes := make([]domain.AssetClass, 0, len(baselineMu))
	for c, m := range baselineMu {
		mu[c] = m
		classes = append(classes, c)
	}
	for c, v := range baselineVol {
		vol[c] = v
	}

	corr := make(map[domain.AssetClass]map[domain.AssetClass]float64, len(classes))
	for _, a := range classes {
		row := make(map[domain.AssetClass]float64, len(classes))
		for _, b := range classes {
			row[b] = correlationFor(a, b)
		}
		corr[a] = row
	}

	return domain.Assumptions{Mu: mu, Vol: vol, Corr: corr}
}
