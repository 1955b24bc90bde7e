package cohort

import "errors"

// Sentinel errors returned by the cohort package.
var (
	// ErrEmptyID indicates a subject was added with an empty identifier.
	ErrEmptyID = errors.New("cohort: subject ID is empty")

	// ErrDuplicateID indicates the same subject identifier was added twice.
	ErrDuplicateID = errors.New("cohort: duplicate subject ID")

	// ErrArityMismatch indicates the number of covariate values passed to Add
	// does not equal the number of covariates declared on the Builder.
	ErrArityMismatch = errors.New("cohort: covariate value count mismatch")

	// ErrNoCovariates indicates that the Builder declared no covariate names.
	ErrNoCovariates = errors.New("cohort: at least one covariate is required")

	// ErrEmptyTable indicates Build was called before any subject was added.
	ErrEmptyTable = errors.New("cohort: table has no subjects")

	// ErrUnknownGroup indicates a group value other than Treatment or Control.
	ErrUnknownGroup = errors.New("cohort: group is neither Treatment nor Control")

	// ErrUnknownSubject indicates a referenced subject ID is not in the table.
	ErrUnknownSubject = errors.New("cohort: unknown subject ID")

	// ErrUnknownCovariate indicates a referenced covariate name was never declared.
	ErrUnknownCovariate = errors.New("cohort: unknown covariate")

	// ErrUnknownField indicates a referenced categorical field was never attached.
	ErrUnknownField = errors.New("cohort: unknown categorical field")

	// ErrMissingValue indicates a subject lacks a value required by the
	// requested computation. Wrappers always name the subject and the
	// covariate or field; the value is never imputed.
	ErrMissingValue = errors.New("cohort: missing value")
)

// Group is the two-valued membership label of a subject.
type Group uint8

const (
	// Control marks a subject in the candidate comparison pool.
	Control Group = iota

	// Treatment marks a subject in the group to be matched.
	Treatment
)

// String returns "treatment" or "control".
func (g Group) String() string {
	if g == Treatment {
		return "treatment"
	}

	return "control"
}

// Subject is one immutable record of the table: identifier, group label,
// covariate values aligned with Table.Covariates (NaN = missing), and
// optional categorical fields.
type Subject struct {
	ID    string
	Group Group

	values []float64
	fields map[string]string
}
