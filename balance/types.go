package balance

import "errors"

// Sentinel errors returned by the balance package.
var (
	// ErrEmptyMatchedSet indicates the matching result carries no pairs,
	// so there is nothing to diagnose.
	ErrEmptyMatchedSet = errors.New("balance: matched set is empty")

	// ErrDegenerate indicates a statistic cannot be computed: a matched
	// group with fewer than two subjects, or zero spread where a standard
	// deviation or variance ratio needs one. The wrapping error names the
	// variable.
	ErrDegenerate = errors.New("balance: degenerate group for statistic")

	// ErrNoScore indicates a matched subject is missing from the propensity
	// score map; the wrapping error names the subject.
	ErrNoScore = errors.New("balance: no propensity score for subject")
)

// Advisory thresholds surfaced by Assess. Policy, not hard constraints:
// the analyst decides, the package only reports.
const (
	// SMDCaution is the historical caution line for |SMD|.
	SMDCaution = 0.25

	// VarianceRatioLow / VarianceRatioHigh bound the comfortable
	// treatment/control variance ratio.
	VarianceRatioLow  = 0.5
	VarianceRatioHigh = 2.0

	// PValueComfort is the comfort line: balance is usually judged
	// adequate when the two-group test yields p above this value.
	PValueComfort = 0.5
)

// Assess reasons, one per threshold.
const (
	ReasonSMD          = "smd-beyond-caution"
	ReasonVarianceLow  = "variance-ratio-low"
	ReasonVarianceHigh = "variance-ratio-high"
	ReasonPValue       = "p-value-low"
)

// Test names reported on Row.Test.
const (
	TestWelch  = "welch-t"
	TestChiSq  = "pearson-chi2"
	TestFisher = "fisher-exact"
)

// VarType distinguishes the two diagnostic paths.
type VarType int

const (
	// Continuous variables get SMD, variance ratio and Welch's t-test.
	Continuous VarType = iota

	// Categorical fields get an association test only; the moment-based
	// columns of their Row are NaN.
	Categorical
)

// String returns "continuous" or "categorical".
func (v VarType) String() string {
	if v == Categorical {
		return "categorical"
	}

	return "continuous"
}

// Row is the diagnostic line of one variable over the matched dataset.
// For Categorical rows the mean, SMD and variance-ratio columns are NaN.
type Row struct {
	Variable string
	Type     VarType

	TreatedN int
	ControlN int

	TreatedMean   float64
	ControlMean   float64
	SMD           float64
	VarianceRatio float64

	PValue float64
	Test   string
}

// Report is the full diagnostic table of one run: one Row per requested
// variable plus the Row of the propensity score distribution itself.
type Report struct {
	Covariates []Row
	Propensity Row
}

// Rows returns every row, covariates first, propensity score last.
func (r Report) Rows() []Row {
	return append(append([]Row(nil), r.Covariates...), r.Propensity)
}

// Flag is one advisory finding from Assess.
type Flag struct {
	Variable string
	Reason   string
	Value    float64
}
