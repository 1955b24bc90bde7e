// Package balance computes the diagnostics that tell the analyst whether a
// matched dataset is usable: per-covariate (and per-propensity-score)
// standardized mean difference, variance ratio, and a two-group
// significance test, restricted to the matched subjects only.
//
// 🚀 The three numbers
//
//	SMD            (mean_T − mean_C) / sd_T — the group mean gap scaled by
//	               the treatment-group standard deviation.
//	Variance ratio var_T / var_C.
//	p-value        Welch's unequal-variance t-test for continuous
//	               variables; Pearson chi-squared for categorical fields,
//	               or Fisher's exact test when the 2×2 table has an
//	               expected cell below five.
//
// ⚖️ Advisory, never enforced
//
//	Assess flags |SMD| above the historical caution line of 0.25, variance
//	ratios outside [0.5, 2], and p-values at or below 0.5. These are
//	advisory thresholds for a human: the analyst decides whether to accept
//	the match or to rerun with different covariates or exclusions. Nothing
//	in this package accepts or rejects automatically.
//
// Errors (sentinel):
//
//	– ErrEmptyMatchedSet the matching produced no pairs
//	– ErrDegenerate      a group is too small or has zero spread for the statistic
//	– ErrNoScore         a matched subject has no propensity score
//	– cohort.ErrMissingValue and friends propagate unchanged; missing
//	  values are surfaced, never imputed
//
// Example usage:
//
//	rep, err := balance.Diagnose(tbl, scores, res, []string{"age", "bmi"}, []string{"sex"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range balance.Assess(rep) {
//	    fmt.Printf("⚠ %s: %s (%.3f)\n", f.Variable, f.Reason, f.Value)
//	}
package balance
