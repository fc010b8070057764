package cma

import (
	"errors"
	"fmt"
	"math"

	"advisor-mc-lab/internal/domain"
)

// Validation errors.
var (
	// ErrUnknownClass indicates a portfolio references a class absent
	// from the assumption maps.
	ErrUnknownClass = errors.New("asset class not covered by assumptions")

	// ErrInvalidCorrelation indicates a correlation entry outside
	// [-1, 1], an asymmetric pair, or a non-unit diagonal.
	ErrInvalidCorrelation = errors.New("invalid correlation table")
)

const corrTol = 1e-9

// CorrFor resolves the correlation between two classes, treating the
// table as symmetric and the diagonal as 1. The second return reports
// whether the pair is covered.
func CorrFor(a domain.Assumptions, x, y domain.AssetClass) (float64, bool) {
	if x == y {
		if row, ok := a.Corr[x]; ok {
			if v, ok := row[x]; ok {
				return v, true
			}
		}
		return 1.0, true
	}
	if row, ok := a.Corr[x]; ok {
		if v, ok := row[y]; ok {
			return v, true
		}
	}
	if row, ok := a.Corr[y]; ok {
		if v, ok := row[x]; ok {
			return v, true
		}
	}
	return 0, false
}

// Validate checks that every class is covered by the mean, volatility
// and correlation maps, and that the correlation entries are plausible:
// within [-1, 1], symmetric where both orientations are present, and 1
// on the diagonal. Positive semi-definiteness is established later, at
// factorization time.
func Validate(a domain.Assumptions, classes []domain.AssetClass) error {
	for _, c := range classes {
		if _, ok := a.Mu[c]; !ok {
			return fmt.Errorf("%w: no expected return for %q", ErrUnknownClass, c)
		}
		if _, ok := a.Vol[c]; !ok {
			return fmt.Errorf("%w: no volatility for %q", ErrUnknownClass, c)
		}
	}

	for _, x := range classes {
		for _, y := range classes {
			v, ok := CorrFor(a, x, y)
			if !ok {
				return fmt.Errorf("%w: no correlation for (%q, %q)", ErrUnknownClass, x, y)
			}
			if v < -1 || v > 1 {
				return fmt.Errorf("%w: corr(%q, %q) = %v outside [-1, 1]", ErrInvalidCorrelation, x, y, v)
			}
			if x == y && math.Abs(v-1) > corrTol {
				return fmt.Errorf("%w: corr(%q, %q) = %v, diagonal must be 1", ErrInvalidCorrelation, x, y, v)
			}
			if x != y {
				if rev, revOK := direct(a, y, x); revOK {
					if fwd, fwdOK := direct(a, x, y); fwdOK && math.Abs(fwd-rev) > corrTol {
						return fmt.Errorf("%w: corr(%q, %q) asymmetric: %v vs %v", ErrInvalidCorrelation, x, y, fwd, rev)
					}
				}
			}
		}
	}
	return nil
}

// direct looks up one orientation only.
func direct(a domain.Assumptions, x, y domain.AssetClass) (float64, bool) {
	row, ok := a.Corr[x]
	if !ok {
		return 0, false
	}
	v, ok := row[y]
	return v, ok
}
