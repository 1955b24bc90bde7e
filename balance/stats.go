package balance

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// continuousRow computes the diagnostic line of one continuous variable
// from its treated and control samples over the matched dataset.
//
// Definitions (standardized on the treatment side, deliberately asymmetric):
//   - SMD            = (mean_T − mean_C) / sd_T
//   - variance ratio = var_T / var_C
//   - p-value        = Welch's unequal-variance t-test
func continuousRow(name string, vt VarType, xt, xc []float64) (Row, error) {
	if len(xt) < 2 || len(xc) < 2 {
		return Row{}, fmt.Errorf("variable %q: group sizes %d/%d: %w",
			name, len(xt), len(xc), ErrDegenerate)
	}

	meanT, varT := stat.MeanVariance(xt, nil)
	meanC, varC := stat.MeanVariance(xc, nil)
	if varT == 0 {
		return Row{}, fmt.Errorf("variable %q: treated group has zero spread: %w", name, ErrDegenerate)
	}
	if varC == 0 {
		return Row{}, fmt.Errorf("variable %q: control group has zero spread: %w", name, ErrDegenerate)
	}

	return Row{
		Variable:      name,
		Type:          vt,
		TreatedN:      len(xt),
		ControlN:      len(xc),
		TreatedMean:   meanT,
		ControlMean:   meanC,
		SMD:           (meanT - meanC) / math.Sqrt(varT),
		VarianceRatio: varT / varC,
		PValue:        welchP(meanT, varT, len(xt), meanC, varC, len(xc)),
		Test:          TestWelch,
	}, nil
}

// welchP is the two-sided p-value of Welch's t-test with the
// Welch–Satterthwaite degrees of freedom.
func welchP(meanT, varT float64, nT int, meanC, varC float64, nC int) float64 {
	sT := varT / float64(nT)
	sC := varC / float64(nC)
	se2 := sT + sC
	if se2 == 0 {
		return 1
	}

	t := (meanT - meanC) / math.Sqrt(se2)
	df := se2 * se2 / (sT*sT/float64(nT-1) + sC*sC/float64(nC-1))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	p := 2 * dist.CDF(-math.Abs(t))
	if p > 1 {
		p = 1
	}

	return p
}

// categoricalRow computes the association test of one categorical field:
// Pearson chi-squared over the 2×K level table, or Fisher's exact test for
// a 2×2 table with an expected cell below five. The moment-based columns
// carry NaN — a level proportion has no single SMD in this report layout.
func categoricalRow(name string, ct, cc []string) (Row, error) {
	if len(ct) == 0 || len(cc) == 0 {
		return Row{}, fmt.Errorf("variable %q: empty group: %w", name, ErrDegenerate)
	}

	levels := levelUnion(ct, cc)
	k := len(levels)
	if k < 2 {
		return Row{}, fmt.Errorf("variable %q: a single level has no association: %w",
			name, ErrDegenerate)
	}

	idx := make(map[string]int, k)
	for i, lv := range levels {
		idx[lv] = i
	}
	counts := make([][]float64, 2)
	counts[0] = make([]float64, k)
	counts[1] = make([]float64, k)
	for _, v := range ct {
		counts[0][idx[v]]++
	}
	for _, v := range cc {
		counts[1][idx[v]]++
	}

	p, test := associationP(counts)
	nan := math.NaN()

	return Row{
		Variable:      name,
		Type:          Categorical,
		TreatedN:      len(ct),
		ControlN:      len(cc),
		TreatedMean:   nan,
		ControlMean:   nan,
		SMD:           nan,
		VarianceRatio: nan,
		PValue:        p,
		Test:          test,
	}, nil
}

// associationP routes a 2×K contingency table to chi-squared or, for a 2×2
// table with a small expected cell, to Fisher's exact test.
func associationP(counts [][]float64) (float64, string) {
	k := len(counts[0])
	rowT, rowC := 0.0, 0.0
	colSums := make([]float64, k)
	for j := 0; j < k; j++ {
		rowT += counts[0][j]
		rowC += counts[1][j]
		colSums[j] = counts[0][j] + counts[1][j]
	}
	total := rowT + rowC

	minExpected := math.Inf(1)
	for j := 0; j < k; j++ {
		for _, rowSum := range []float64{rowT, rowC} {
			if e := rowSum * colSums[j] / total; e < minExpected {
				minExpected = e
			}
		}
	}

	if k == 2 && minExpected < 5 {
		return fisherExactP(
			int(counts[0][0]), int(counts[0][1]),
			int(counts[1][0]), int(counts[1][1])), TestFisher
	}

	chi2 := 0.0
	for i := 0; i < 2; i++ {
		rowSum := rowT
		if i == 1 {
			rowSum = rowC
		}
		for j := 0; j < k; j++ {
			e := rowSum * colSums[j] / total
			d := counts[i][j] - e
			chi2 += d * d / e
		}
	}
	dist := distuv.ChiSquared{K: float64(k - 1)}

	return dist.Survival(chi2), TestChiSq
}

// fisherExactP is the two-sided Fisher exact test on the 2×2 table
// [[a b] [c d]]: the sum of hypergeometric probabilities of every table
// with the same margins that is at most as likely as the observed one.
func fisherExactP(a, b, c, d int) float64 {
	r1 := a + b
	r2 := c + d
	c1 := a + c
	n := r1 + r2

	lo := 0
	if over := c1 - r2; over > 0 {
		lo = over
	}
	hi := r1
	if c1 < hi {
		hi = c1
	}

	// Tolerance absorbs float noise when comparing table probabilities.
	pObs := hypergeomProb(a, r1, c1, n) * (1 + 1e-9)
	p := 0.0
	for x := lo; x <= hi; x++ {
		if px := hypergeomProb(x, r1, c1, n); px <= pObs {
			p += px
		}
	}
	if p > 1 {
		p = 1
	}

	return p
}

// hypergeomProb is P(X = x) for X ~ Hypergeometric(n, c1, r1): drawing r1
// subjects out of n of which c1 are in the first column. Evaluated through
// log-binomials so large cohorts cannot overflow.
func hypergeomProb(x, r1, c1, n int) float64 {
	return math.Exp(logChoose(c1, x) + logChoose(n-c1, r1-x) - logChoose(n, r1))
}

// logChoose is ln C(n, k) via the log-gamma function.
func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	ln1, _ := math.Lgamma(float64(n + 1))
	ln2, _ := math.Lgamma(float64(k + 1))
	ln3, _ := math.Lgamma(float64(n - k + 1))

	return ln1 - ln2 - ln3
}

// levelUnion returns the sorted union of the observed level names.
func levelUnion(ct, cc []string) []string {
	seen := make(map[string]struct{})
	for _, v := range ct {
		seen[v] = struct{}{}
	}
	for _, v := range cc {
		seen[v] = struct{}{}
	}

	levels := make([]string, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Strings(levels)

	return levels
}
