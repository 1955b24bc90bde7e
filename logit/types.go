package logit

import "errors"

// Sentinel errors returned by the logit package.
var (
	// ErrInsufficientData indicates too few subjects for the covariate count:
	// the fit requires at least k+2 rows for k covariates, and at least one
	// covariate.
	ErrInsufficientData = errors.New("logit: insufficient data for fit")

	// ErrZeroVariance indicates a covariate column is constant and therefore
	// carries no information; the wrapping error names the column.
	ErrZeroVariance = errors.New("logit: covariate has zero variance")

	// ErrSingular indicates the weighted normal matrix is not positive
	// definite, typically caused by collinear covariates or perfect
	// separation of the two groups.
	ErrSingular = errors.New("logit: singular weighted normal matrix")

	// ErrNoConvergence indicates IRLS did not converge within MaxIterations.
	ErrNoConvergence = errors.New("logit: IRLS did not converge")

	// ErrDimensionMismatch indicates len(y) does not equal the matrix row count.
	ErrDimensionMismatch = errors.New("logit: label vector does not match matrix rows")

	// ErrBadLabel indicates a response value other than 0 or 1.
	ErrBadLabel = errors.New("logit: label must be 0 or 1")
)

// Default fitting parameters.
const (
	// DefaultMaxIterations bounds the IRLS Newton steps.
	DefaultMaxIterations = 25

	// DefaultTolerance is the convergence criterion: max |Δβ| below this
	// value ends the iteration.
	DefaultTolerance = 1e-8
)

// Options configures the IRLS fit.
//
// MaxIterations – upper bound on Newton steps (must be > 0).
// Tolerance     – convergence threshold on max |Δβ| (must be > 0).
// ColumnNames   – optional covariate names used in error messages.
type Options struct {
	MaxIterations int
	Tolerance     float64
	ColumnNames   []string
}

// Option is a functional option for configuring Estimate.
type Option func(*Options)

// WithMaxIterations overrides the IRLS iteration bound.
// Non-positive values panic: an iteration bound of zero can never fit.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic("logit: MaxIterations must be positive")
	}

	return func(o *Options) {
		o.MaxIterations = n
	}
}

// WithTolerance overrides the convergence threshold on max |Δβ|.
// Non-positive values panic.
func WithTolerance(eps float64) Option {
	if eps <= 0 {
		panic("logit: Tolerance must be positive")
	}

	return func(o *Options) {
		o.Tolerance = eps
	}
}

// WithColumnNames attaches covariate names so that ErrZeroVariance can name
// the offending column instead of reporting its index.
func WithColumnNames(names ...string) Option {
	return func(o *Options) {
		o.ColumnNames = append([]string(nil), names...)
	}
}

// DefaultOptions returns the fitting defaults.
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}
