package logit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/propmatch/cohort"
)

// minWeight floors the IRLS weights p(1−p) so that near-saturated scores
// cannot zero out a row of the weighted normal matrix mid-iteration.
const minWeight = 1e-10

// Model is the result of one logistic fit.
type Model struct {
	beta       []float64 // intercept first, then one coefficient per column
	scores     []float64 // fitted probabilities, row-aligned with the input
	iterations int
}

// Scores returns the fitted propensity scores, one per input row, each
// strictly inside (0,1). The slice is a copy.
func (m *Model) Scores() []float64 {
	return append([]float64(nil), m.scores...)
}

// Coefficients returns the fitted β, intercept first. The slice is a copy.
func (m *Model) Coefficients() []float64 {
	return append([]float64(nil), m.beta...)
}

// Iterations returns how many Newton steps the fit took.
func (m *Model) Iterations() int { return m.iterations }

// Estimate fits a logistic regression of y on the columns of x and returns
// the fitted model. It is a pure function of its inputs.
//
// Implementation:
//  1. Validate shapes, labels, column variance and the n ≥ k+2 requirement.
//  2. Augment x with an intercept column.
//  3. IRLS: repeat β ← β + (XᵀWX)⁻¹ Xᵀ(y−p) with W = diag(p(1−p)),
//     solved by Cholesky, until max |Δβ| < Tolerance.
//
// Errors: see the sentinel set in types.go.
func Estimate(x mat.Matrix, y []float64, opts ...Option) (*Model, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if x == nil {
		return nil, ErrInsufficientData
	}
	n, k := x.Dims()
	if n == 0 || k == 0 {
		return nil, ErrInsufficientData
	}
	if len(y) != n {
		return nil, fmt.Errorf("%d labels for %d rows: %w", len(y), n, ErrDimensionMismatch)
	}
	for i, v := range y {
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("row %d has label %v: %w", i, v, ErrBadLabel)
		}
	}
	if err := checkVariance(x, o.ColumnNames); err != nil {
		return nil, err
	}
	if n < k+2 {
		return nil, fmt.Errorf("%d subjects for %d covariates (need ≥ %d): %w",
			n, k, k+2, ErrInsufficientData)
	}

	// Design matrix with a leading intercept column.
	p := k + 1
	xd := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		xd.Set(i, 0, 1)
		for j := 0; j < k; j++ {
			xd.Set(i, j+1, x.At(i, j))
		}
	}

	var (
		beta  = make([]float64, p)
		probs = make([]float64, n)
		resid = mat.NewVecDense(n, nil)
		wxd   = mat.NewDense(n, p, nil)
		xtwx  = mat.NewDense(p, p, nil)
		grad  = mat.NewVecDense(p, nil)
		delta = mat.NewVecDense(p, nil)
		chol  mat.Cholesky
	)

	var iter int
	for iter = 1; iter <= o.MaxIterations; iter++ {
		// Current probabilities and weights.
		for i := 0; i < n; i++ {
			eta := 0.0
			for j := 0; j < p; j++ {
				eta += xd.At(i, j) * beta[j]
			}
			probs[i] = sigmoid(eta)
			w := probs[i] * (1 - probs[i])
			if w < minWeight {
				w = minWeight
			}
			resid.SetVec(i, y[i]-probs[i])
			for j := 0; j < p; j++ {
				wxd.Set(i, j, w*xd.At(i, j))
			}
		}

		// Newton step: solve (XᵀWX) δ = Xᵀ(y−p).
		xtwx.Mul(xd.T(), wxd)
		sym := mat.NewSymDense(p, nil)
		for a := 0; a < p; a++ {
			for b := a; b < p; b++ {
				sym.SetSym(a, b, xtwx.At(a, b))
			}
		}
		if ok := chol.Factorize(sym); !ok {
			return nil, ErrSingular
		}
		grad.MulVec(xd.T(), resid)
		if err := chol.SolveVecTo(delta, grad); err != nil {
			return nil, ErrSingular
		}

		step := 0.0
		for j := 0; j < p; j++ {
			d := delta.AtVec(j)
			beta[j] += d
			if a := math.Abs(d); a > step {
				step = a
			}
		}
		if step < o.Tolerance {
			break
		}
		if iter == o.MaxIterations {
			return nil, fmt.Errorf("after %d iterations: %w", iter, ErrNoConvergence)
		}
	}

	// Final scores from the converged β.
	for i := 0; i < n; i++ {
		eta := 0.0
		for j := 0; j < p; j++ {
			eta += xd.At(i, j) * beta[j]
		}
		probs[i] = sigmoid(eta)
	}

	return &Model{beta: beta, scores: probs, iterations: iter}, nil
}

// Score is the cohort-level convenience: extract the design matrix for the
// named covariates (all declared covariates when none are given), fit, and
// return propensity scores keyed by subject ID.
func Score(tbl *cohort.Table, covariates ...string) (map[string]float64, error) {
	if tbl == nil {
		return nil, ErrInsufficientData
	}
	if len(covariates) == 0 {
		covariates = tbl.Covariates()
	}

	x, ids, err := tbl.DesignMatrix(covariates...)
	if err != nil {
		return nil, err
	}

	model, err := Estimate(x, tbl.Labels(), WithColumnNames(covariates...))
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64, len(ids))
	fitted := model.scores
	for i, id := range ids {
		scores[id] = fitted[i]
	}

	return scores, nil
}

// checkVariance fails with ErrZeroVariance when any column of x is constant.
func checkVariance(x mat.Matrix, names []string) error {
	n, k := x.Dims()
	for j := 0; j < k; j++ {
		first := x.At(0, j)
		constant := true
		for i := 1; i < n; i++ {
			if x.At(i, j) != first {
				constant = false

				break
			}
		}
		if constant {
			if j < len(names) {
				return fmt.Errorf("covariate %q: %w", names[j], ErrZeroVariance)
			}

			return fmt.Errorf("column %d: %w", j, ErrZeroVariance)
		}
	}

	return nil
}

// sigmoid is the logistic link 1/(1+e^−η).
func sigmoid(eta float64) float64 {
	return 1 / (1 + math.Exp(-eta))
}
