// Package logit fits the binary logistic propensity model: given a design
// matrix of covariates and a 0/1 treatment label per subject, it estimates
// P(treatment | covariates) and returns one propensity score per subject.
//
// 🚀 How does it work?
//
//	Maximum likelihood via iteratively reweighted least squares (IRLS):
//	each Newton step solves the weighted normal equations
//	(Xᵀ W X) δ = Xᵀ (y − p) by Cholesky factorization, with W the
//	diagonal of p(1−p). An intercept column is added internally.
//
// Contracts:
//
//	– Pure function: Estimate has no side effects and no hidden state;
//	  identical inputs yield identical scores.
//	– No missing values: the design matrix must be fully observed
//	  (cohort.Table.DesignMatrix enforces this upstream).
//	– Scores lie strictly in (0,1) — the logistic link guarantees it.
//
// Errors (sentinel):
//
//	– ErrInsufficientData   fewer than k+2 subjects for k covariates, or empty input
//	– ErrZeroVariance       a covariate column is constant
//	– ErrSingular           weighted normal matrix is not positive definite
//	                        (collinear covariates or perfect separation)
//	– ErrNoConvergence      IRLS did not converge within MaxIterations
//	– ErrDimensionMismatch  label vector does not align with the matrix
//	– ErrBadLabel           a label is neither 0 nor 1
//
// Complexity:
//
//	– Time:  O(iter · (n·k² + k³))   n = subjects, k = covariates
//	– Space: O(n·k)
//
// Example usage:
//
//	scores, err := logit.Score(tbl, "age", "bmi")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("propensity of S1: %.3f\n", scores["S1"])
package logit
