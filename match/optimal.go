package match

import "math"

// caliperPenalty replaces over-caliper cells in the cost matrix. It is
// orders of magnitude above any feasible total (score distances are < 1 and
// there are fewer than penalty/1 pairs), so the solver takes a penalized
// cell only when no all-feasible assignment exists; those assignments are
// dropped afterwards.
const caliperPenalty = 1e6

// optimal - globally minimal 1:1 assignment on propensity scores.
//
// Description:
//
//	Build the m×n matrix of absolute score differences between treated
//	(rows, canonical order) and controls (columns, canonical order), then
//	solve the minimum-cost assignment of every row to a distinct column by
//	the shortest-augmenting-path method with row/column potentials
//	(Hungarian family). The solution minimizes the summed distance over
//	all ways of pairing the m treated with any m of the n controls.
//
// Determinism:
//
//	Canonical row/column order plus strict "<" comparisons make the
//	augmenting order, and therefore the returned assignment, reproducible.
//	Cost-equal assignments resolve toward lower-indexed columns.
//
// Complexity: O(m²·n) time, O(m·n) space for the cost matrix.
func optimal(treated, controls []unit, caliper float64) Result {
	m, n := len(treated), len(controls)

	cost := make([][]float64, m)
	for i, t := range treated {
		row := make([]float64, n)
		for j, c := range controls {
			d := math.Abs(t.score - c.score)
			if caliper > 0 && d > caliper {
				d = caliperPenalty
			}
			row[j] = d
		}
		cost[i] = row
	}

	rowTo := assign(cost, m, n)

	res := Result{Algorithm: Optimal}
	taken := make([]bool, n)
	for i, t := range treated {
		j := rowTo[i]
		d := math.Abs(t.score - controls[j].score)
		if caliper > 0 && d > caliper {
			// The solver was forced onto a penalized cell: report the
			// treated subject unmatched instead of matched badly.
			res.UnmatchedTreated = append(res.UnmatchedTreated, t.id)

			continue
		}

		res.Pairs = append(res.Pairs, Pair{
			TreatedID: t.id,
			ControlID: controls[j].id,
			Distance:  d,
		})
		res.TotalDistance += d
		taken[j] = true
	}
	for j, c := range controls {
		if !taken[j] {
			res.UnmatchedControls = append(res.UnmatchedControls, c.id)
		}
	}

	return res
}

// assign solves the rectangular min-cost assignment (m rows ≤ n columns)
// by shortest augmenting paths over reduced costs with potentials.
// Returns the assigned column per row.
//
// Algorithm outline (1-indexed internally, column 0 is the virtual root):
//  1. For each row, grow an alternating tree of tight edges from the root,
//     tracking minv[j] = minimal reduced cost into free column j.
//  2. At each step pick the free column with minimal minv (delta), update
//     the potentials u/v to make its edge tight, and continue until an
//     unassigned column is reached.
//  3. Walk the way[] chain backwards to flip the augmenting path.
//
// Every row is assigned exactly once; total cost is minimal.
func assign(cost [][]float64, m, n int) []int {
	var (
		u   = make([]float64, m+1) // row potentials
		v   = make([]float64, n+1) // column potentials
		p   = make([]int, n+1)     // p[j]: row currently assigned to column j
		way = make([]int, n+1)     // predecessor column on the alternating path
	)

	for i := 1; i <= m; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		for {
			used[j0] = true
			i0, j1, delta := p[j0], 0, math.Inf(1)
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j], way[j] = cur, j0
				}
				if minv[j] < delta {
					delta, j1 = minv[j], j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Augment: flip assignments along the found path.
		for {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
			if j0 == 0 {
				break
			}
		}
	}

	rowTo := make([]int, m)
	for j := 1; j <= n; j++ {
		if p[j] > 0 {
			rowTo[p[j]-1] = j - 1
		}
	}

	return rowTo
}
