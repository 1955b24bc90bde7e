package match

import "math"

// nearestNeighbor - greedy 1:1 matching on propensity scores.
//
// Description:
//
//	Process treated subjects in canonical order (ascending score, ties by
//	ID). Each takes the remaining control with the smallest absolute score
//	difference; the control leaves the pool; there is no backtracking.
//	Because the pool is scanned in canonical order with a strict "<", an
//	equidistant tie resolves to the lower control score, then the lower ID.
//
// Caliper:
//
//	When caliper > 0, controls farther than the caliper are not candidates.
//	A treated subject with no candidate at all is recorded as unmatched
//	instead of being forced onto a distant control.
//
// Locality:
//
//	Removing a treated subject from the input never changes the pairs of
//	subjects processed before it and leaves later pairs unchanged unless
//	they competed for the removed subject's control. This is the documented
//	behavioral contrast with the optimal kernel, which may reshuffle
//	globally.
//
// Complexity: O(m·n) scans after sorting.
func nearestNeighbor(treated, controls []unit, caliper float64) Result {
	res := Result{Algorithm: NearestNeighbor}

	pool := append([]unit(nil), controls...)
	for _, t := range treated {
		bestIdx := -1
		bestD := math.Inf(1)
		for i, c := range pool {
			d := math.Abs(t.score - c.score)
			if caliper > 0 && d > caliper {
				continue
			}
			if d < bestD {
				bestD, bestIdx = d, i
			}
		}
		if bestIdx < 0 {
			res.UnmatchedTreated = append(res.UnmatchedTreated, t.id)

			continue
		}

		res.Pairs = append(res.Pairs, Pair{
			TreatedID: t.id,
			ControlID: pool[bestIdx].id,
			Distance:  bestD,
		})
		res.TotalDistance += bestD
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
	}

	for _, c := range pool {
		res.UnmatchedControls = append(res.UnmatchedControls, c.id)
	}

	return res
}
