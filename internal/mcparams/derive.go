// Package mcparams converts annual capital market assumptions into
// per-step simulation parameters: a drift vector of mean log-returns and
// a lower-triangular factor of the per-step covariance matrix.
package mcparams

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"advisor-mc-lab/internal/cma"
	"advisor-mc-lab/internal/domain"
)

// ErrNotPositiveSemiDefinite indicates the implied covariance matrix
// cannot be factored. This is a fatal configuration error.
var ErrNotPositiveSemiDefinite = errors.New("covariance matrix is not positive semi-definite")

// Params holds the per-step parameters shared read-only by all paths.
type Params struct {
	Classes []domain.AssetClass

	// Drift is the per-step mean log-return per class:
	// log(1 + annual mean) / steps per year.
	Drift []float64

	// Factor is lower-triangular with Factor·Factorᵗ equal to the
	// per-step covariance.
	Factor *mat.TriDense
}

// Derive builds Params for an ordered class list. Variance scales as
// 1/stepsPerYear, the usual i.i.d. discretization of geometric Brownian
// motion. Classes must already be deduplicated.
func Derive(a domain.Assumptions, classes []domain.AssetClass, stepsPerYear int) (*Params, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("%w: no asset classes", cma.ErrUnknownClass)
	}
	if stepsPerYear <= 0 {
		return nil, fmt.Errorf("steps per year must be positive, got %d", stepsPerYear)
	}
	if err := cma.Validate(a, classes); err != nil {
		return nil, err
	}

	n := len(classes)
	drift := make([]float64, n)
	vol := make([]float64, n)
	for i, c := range classes {
		drift[i] = math.Log1p(a.Mu[c]) / float64(stepsPerYear)
		vol[i] = a.Vol[c]
	}

	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			corr, _ := cma.CorrFor(a, classes[i], classes[j])
			cov.SetSym(i, j, corr*vol[i]*vol[j]/float64(stepsPerYear))
		}
	}

	factor, err := factorize(cov)
	if err != nil {
		return nil, err
	}

	return &Params{Classes: classes, Drift: drift, Factor: factor}, nil
}

// factorize computes a lower-triangular L with L·Lᵗ = cov. Strictly
// positive definite matrices go through gonum's Cholesky; semi-definite
// matrices (zero volatility, perfectly collinear classes) fall back to
// an outer-product Cholesky with a zero-pivot tolerance, since those
// configurations are valid and must simulate deterministically.
func factorize(cov *mat.SymDense) (*mat.TriDense, error) {
	n := cov.SymmetricDim()

	var chol mat.Cholesky
	if chol.Factorize(cov) {
		l := mat.NewTriDense(n, mat.Lower, nil)
		chol.LTo(l)
		return l, nil
	}

	return semidefiniteCholesky(cov)
}

// semidefiniteCholesky runs the classic outer-product algorithm, zeroing
// columns whose pivot vanishes. A pivot below -tol, or a nonzero column
// under a vanished pivot, means the matrix is indefinite.
func semidefiniteCholesky(cov *mat.SymDense) (*mat.TriDense, error) {
	n := cov.SymmetricDim()
	maxDiag := 0.0
	for i := 0; i < n; i++ {
		if d := math.Abs(cov.At(i, i)); d > maxDiag {
			maxDiag = d
		}
	}
	tol := 1e-12 * (1 + maxDiag)

	l := mat.NewTriDense(n, mat.Lower, nil)
	for j := 0; j < n; j++ {
		d := cov.At(j, j)
		for k := 0; k < j; k++ {
			d -= l.At(j, k) * l.At(j, k)
		}
		if d < -tol {
			return nil, fmt.Errorf("%w: negative pivot at column %d", ErrNotPositiveSemiDefinite, j)
		}
		if d <= tol {
			// Zero pivot: the rest of the column must vanish too.
			for i := j + 1; i < n; i++ {
				s := cov.At(i, j)
				for k := 0; k < j; k++ {
					s -= l.At(i, k) * l.At(j, k)
				}
				if math.Abs(s) > tol {
					return nil, fmt.Errorf("%w: rank deficiency at column %d", ErrNotPositiveSemiDefinite, j)
				}
			}
			continue
		}

		pivot := math.Sqrt(d)
		l.SetTri(j, j, pivot)
		for i := j + 1; i < n; i++ {
			s := cov.At(i, j)
			for k := 0; k < j; k++ {
				s -= l.At(i, k) * l.At(j, k)
			}
			l.SetTri(i, j, s/pivot)
		}
	}
	return l, nil
}
