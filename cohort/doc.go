// Package cohort assembles the subject table that every other propmatch
// package consumes: one record per subject with a unique identifier, a
// two-valued group label (Treatment or Control), a fixed ordered set of
// numeric covariates, and optional categorical fields used only by the
// balance diagnostics.
//
// 🚀 What is a cohort table?
//
//	The unified in-memory record set of one matching run:
//		• Built once via Builder, immutable afterwards
//		• Missing numeric values are NaN and surface as ErrMissingValue
//		  the moment a computation needs them — never silently imputed
//		• Exclude derives a reduced table for the analyst's manual
//		  outlier-exclusion loop; the original is untouched
//
// Determinism:
//
//	Subjects keep insertion order everywhere (IDs, Partition, DesignMatrix
//	rows), so identical input order yields identical downstream results.
//
// Errors (sentinel):
//
//	– ErrEmptyID          subject identifier is empty
//	– ErrDuplicateID      identifier added twice
//	– ErrArityMismatch    covariate values do not match the declared set
//	– ErrNoCovariates     builder declared no covariates
//	– ErrEmptyTable       Build called with no subjects
//	– ErrUnknownGroup     group value is neither Treatment nor Control
//	– ErrUnknownSubject   identifier not present in the table
//	– ErrUnknownCovariate covariate name not declared
//	– ErrUnknownField     categorical field never attached
//	– ErrMissingValue     required covariate or field value is absent
//
// Example usage:
//
//	b := cohort.NewBuilder("age", "bmi")
//	b.Add("S1", cohort.Treatment, 34, 22.5)
//	b.Add("S2", cohort.Control, 41, 25.1)
//	b.Field("S1", "sex", "F")
//	b.Field("S2", "sex", "M")
//	tbl, err := b.Build()
package cohort
