package logit_test

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/propmatch/logit"
)

// benchData builds a reproducible n-subject, k-covariate design with labels
// drawn from a logistic model, so the fit always converges.
func benchData(n, k int) (*mat.Dense, []float64) {
	rng := rand.New(rand.NewSource(3))
	x := mat.NewDense(n, k, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		eta := 0.0
		for j := 0; j < k; j++ {
			v := rng.NormFloat64()
			x.Set(i, j, v)
			eta += 0.5 * v
		}
		if rng.Float64() < 1/(1+math.Exp(-eta)) {
			y[i] = 1
		}
	}

	return x, y
}

func BenchmarkEstimate(b *testing.B) {
	x, y := benchData(500, 4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := logit.Estimate(x, y); err != nil {
			b.Fatal(err)
		}
	}
}
