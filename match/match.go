// match.go - unified dispatcher for the matching algorithms.
//
// Match is the canonical entry point: it validates the score maps and the
// options once, converts the maps into the canonical sorted order, then
// routes to the greedy or the optimal kernel.
//
// Design principles:
//   - Deterministic: canonical sort order everywhere; no map-iteration leaks.
//   - Strict sentinels: only errors from types.go, wrapped with the
//     offending subject where one exists.
//   - Invariant discipline: both kernels return results satisfying the 1:1
//     invariants documented on Result.
package match

import (
	"fmt"
	"math"
)

// Match pairs the treated subjects with controls on their propensity
// scores according to opts and returns the Result.
//
// Contracts:
//   - Every score must be finite and strictly inside (0,1).
//   - len(controls) ≥ len(treated); 1:1 matching cannot proceed otherwise.
//
// Errors: ErrNoTreated, ErrInsufficientControls, ErrBadScore (wrapped with
// the subject ID), ErrBadCaliper, ErrUnknownAlgorithm.
func Match(treated, controls map[string]float64, opts Options) (Result, error) {
	if opts.Caliper < 0 {
		return Result{}, ErrBadCaliper
	}
	if len(treated) == 0 {
		return Result{}, ErrNoTreated
	}
	if len(controls) < len(treated) {
		return Result{}, fmt.Errorf("%d treated, %d controls: %w",
			len(treated), len(controls), ErrInsufficientControls)
	}

	ts, err := toUnits(treated)
	if err != nil {
		return Result{}, err
	}
	cs, err := toUnits(controls)
	if err != nil {
		return Result{}, err
	}

	switch opts.Algorithm {
	case NearestNeighbor:
		return nearestNeighbor(ts, cs, opts.Caliper), nil
	case Optimal:
		return optimal(ts, cs, opts.Caliper), nil
	default:
		return Result{}, ErrUnknownAlgorithm
	}
}

// toUnits validates a score map and returns it in canonical sorted order.
func toUnits(scores map[string]float64) ([]unit, error) {
	us := make([]unit, 0, len(scores))
	for id, s := range scores {
		if math.IsNaN(s) || s <= 0 || s >= 1 {
			return nil, fmt.Errorf("subject %q has score %v: %w", id, s, ErrBadScore)
		}
		us = append(us, unit{id: id, score: s})
	}
	sortUnits(us)

	return us, nil
}
