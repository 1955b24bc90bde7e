package balance

import (
	"fmt"

	"github.com/katalvlaran/propmatch/cohort"
	"github.com/katalvlaran/propmatch/match"
)

// PropensityVariable is the Report name of the propensity-score row.
const PropensityVariable = "propensity-score"

// Diagnose computes the balance report of one matching run, restricted to
// the matched dataset: every named continuous covariate, every named
// categorical field, and the propensity score distribution itself.
//
// Contracts:
//   - scores must cover every matched subject (they normally come from the
//     same logit fit that fed the matcher).
//   - Missing covariate or field values fail with cohort.ErrMissingValue
//     naming the subject; nothing is imputed.
//
// The report is identical for any two matching runs that produced the same
// matched set — the diagnostics depend on the subjects, not the algorithm.
func Diagnose(
	tbl *cohort.Table,
	scores map[string]float64,
	res match.Result,
	continuous []string,
	categorical []string,
) (Report, error) {
	treatedIDs, controlIDs := res.MatchedIDs()
	if len(treatedIDs) == 0 {
		return Report{}, ErrEmptyMatchedSet
	}

	var rep Report
	for _, name := range continuous {
		xt, err := tbl.Values(name, treatedIDs)
		if err != nil {
			return Report{}, err
		}
		xc, err := tbl.Values(name, controlIDs)
		if err != nil {
			return Report{}, err
		}
		row, err := continuousRow(name, Continuous, xt, xc)
		if err != nil {
			return Report{}, err
		}
		rep.Covariates = append(rep.Covariates, row)
	}

	for _, name := range categorical {
		ct, err := tbl.Categories(name, treatedIDs)
		if err != nil {
			return Report{}, err
		}
		cc, err := tbl.Categories(name, controlIDs)
		if err != nil {
			return Report{}, err
		}
		row, err := categoricalRow(name, ct, cc)
		if err != nil {
			return Report{}, err
		}
		rep.Covariates = append(rep.Covariates, row)
	}

	st, err := scoreSample(scores, treatedIDs)
	if err != nil {
		return Report{}, err
	}
	sc, err := scoreSample(scores, controlIDs)
	if err != nil {
		return Report{}, err
	}
	rep.Propensity, err = continuousRow(PropensityVariable, Continuous, st, sc)
	if err != nil {
		return Report{}, err
	}

	return rep, nil
}

// Assess applies the advisory thresholds to a report and returns the
// findings. An empty slice means nothing crossed a caution line; the final
// accept/rerun decision stays with the analyst either way.
func Assess(rep Report) []Flag {
	var flags []Flag
	for _, row := range rep.Rows() {
		if row.Type == Continuous {
			if smd := row.SMD; smd > SMDCaution || smd < -SMDCaution {
				flags = append(flags, Flag{Variable: row.Variable, Reason: ReasonSMD, Value: smd})
			}
			if row.VarianceRatio < VarianceRatioLow {
				flags = append(flags, Flag{Variable: row.Variable, Reason: ReasonVarianceLow, Value: row.VarianceRatio})
			}
			if row.VarianceRatio > VarianceRatioHigh {
				flags = append(flags, Flag{Variable: row.Variable, Reason: ReasonVarianceHigh, Value: row.VarianceRatio})
			}
		}
		if row.PValue <= PValueComfort {
			flags = append(flags, Flag{Variable: row.Variable, Reason: ReasonPValue, Value: row.PValue})
		}
	}

	return flags
}

// scoreSample extracts the propensity scores of the given subjects in order.
func scoreSample(scores map[string]float64, ids []string) ([]float64, error) {
	out := make([]float64, len(ids))
	for i, id := range ids {
		s, ok := scores[id]
		if !ok {
			return nil, fmt.Errorf("subject %q: %w", id, ErrNoScore)
		}
		out[i] = s
	}

	return out, nil
}
