// Package match pairs treatment subjects with control subjects on their
// propensity scores, 1:1, under one of two selectable algorithms.
//
// 🚀 The two algorithms
//
//	NearestNeighbor — greedy, no backtracking. Treatment subjects are
//	processed in ascending propensity-score order (ties broken by subject
//	ID); each takes the remaining control with the smallest absolute score
//	difference, and that control leaves the pool. Among equidistant
//	controls the lower score wins, then the lower ID. Fast and local, but
//	not guaranteed globally optimal.
//
//	Optimal — global minimum-cost 1:1 assignment of all m treated subjects
//	to a size-m subset of the n controls, over the m×n matrix of absolute
//	score differences (shortest augmenting path with potentials).
//	Guarantees the minimal total distance; a single removal can reshuffle
//	every pair.
//
// Both orders are fixed and documented, so identical inputs always produce
// identical matches — there is no randomness anywhere in this package.
//
// ⚖️ Caliper
//
//	An optional maximum allowed score distance. Candidate pairs beyond the
//	caliper are discarded: the greedy matcher skips such controls, and a
//	treated subject with no in-caliper candidate is reported unmatched
//	rather than matched badly. The optimal matcher penalizes over-caliper
//	cells and drops any assignment that lands on one.
//
// Errors (sentinel):
//
//	– ErrNoTreated            the treatment set is empty
//	– ErrInsufficientControls fewer controls than treatment subjects
//	– ErrBadScore             a score is NaN or outside (0,1)
//	– ErrBadCaliper           a negative caliper
//	– ErrUnknownAlgorithm     Options.Algorithm is not a defined constant
//
// Complexity:
//
//	– NearestNeighbor: O(m·n) after an O((m+n)·log(m+n)) sort
//	– Optimal:         O(m²·n)
//
// Example usage:
//
//	res, err := match.Match(treatedScores, controlScores,
//	    match.DefaultOptions(match.WithAlgorithm(match.Optimal)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d pairs, total distance %.3f\n", len(res.Pairs), res.TotalDistance)
package match
