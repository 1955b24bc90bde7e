package match

import (
	"errors"
	"sort"
)

// Sentinel errors returned by the match package.
var (
	// ErrNoTreated indicates an empty treatment set.
	ErrNoTreated = errors.New("match: no treatment subjects")

	// ErrInsufficientControls indicates fewer controls than treatment
	// subjects; 1:1 matching needs at least one control per treated.
	ErrInsufficientControls = errors.New("match: fewer controls than treatment subjects")

	// ErrBadScore indicates a propensity score that is NaN or outside (0,1);
	// the wrapping error names the subject.
	ErrBadScore = errors.New("match: propensity score outside (0,1)")

	// ErrBadCaliper indicates a negative caliper.
	ErrBadCaliper = errors.New("match: caliper must be non-negative")

	// ErrUnknownAlgorithm indicates Options.Algorithm is not a defined constant.
	ErrUnknownAlgorithm = errors.New("match: unknown algorithm")
)

// Algorithm selects the matching strategy.
type Algorithm int

const (
	// NearestNeighbor is the greedy matcher: deterministic processing
	// order, nearest remaining control, no backtracking.
	NearestNeighbor Algorithm = iota

	// Optimal is the global minimum-total-distance 1:1 assignment.
	Optimal
)

// String returns the algorithm name used in reports.
func (a Algorithm) String() string {
	switch a {
	case NearestNeighbor:
		return "nearest-neighbor"
	case Optimal:
		return "optimal"
	default:
		return "unknown"
	}
}

// Pair is one match: exactly one treated subject, exactly one control, and
// the absolute propensity-score distance between them.
type Pair struct {
	TreatedID string
	ControlID string
	Distance  float64
}

// Result is the outcome of one matching run.
//
// Invariants (for 1:1 matching): len(Pairs) equals the number of matched
// treated subjects equals the number of matched controls; no control
// appears in more than one Pair.
type Result struct {
	Algorithm Algorithm

	// Pairs in treated processing order (ascending treated score, ties by ID).
	Pairs []Pair

	// UnmatchedTreated lists treated subjects discarded by the caliper,
	// in processing order. Empty when no caliper is set.
	UnmatchedTreated []string

	// UnmatchedControls lists the residual pool, ascending by score then ID.
	UnmatchedControls []string

	// TotalDistance is the sum of all pair distances.
	TotalDistance float64
}

// MatchedIDs returns every subject appearing in at least one pair: treated
// IDs first, then control IDs, both in pair order.
func (r Result) MatchedIDs() (treated, controls []string) {
	treated = make([]string, len(r.Pairs))
	controls = make([]string, len(r.Pairs))
	for i, p := range r.Pairs {
		treated[i] = p.TreatedID
		controls[i] = p.ControlID
	}

	return treated, controls
}

// MaxPair returns the pair with the largest distance and true, or a zero
// Pair and false when there are no pairs. The analyst inspects this to
// decide whether an outlier treated subject should be excluded and the run
// repeated.
func (r Result) MaxPair() (Pair, bool) {
	if len(r.Pairs) == 0 {
		return Pair{}, false
	}

	best := r.Pairs[0]
	for _, p := range r.Pairs[1:] {
		if p.Distance > best.Distance {
			best = p
		}
	}

	return best, true
}

// Options configures a matching run.
//
// Algorithm – NearestNeighbor (default) or Optimal.
// Caliper   – maximum allowed score distance; 0 disables the caliper.
type Options struct {
	Algorithm Algorithm
	Caliper   float64
}

// Option is a functional option for configuring Match.
type Option func(*Options)

// WithAlgorithm selects the matching algorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) {
		o.Algorithm = a
	}
}

// WithCaliper sets the maximum allowed score distance between the members
// of a pair. Negative values panic; 0 disables the caliper.
func WithCaliper(c float64) Option {
	if c < 0 {
		panic(ErrBadCaliper.Error())
	}

	return func(o *Options) {
		o.Caliper = c
	}
}

// DefaultOptions returns NearestNeighbor with no caliper, with the given
// overrides applied.
func DefaultOptions(opts ...Option) Options {
	o := Options{Algorithm: NearestNeighbor, Caliper: 0}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// unit is one subject inside the matcher: identifier plus score.
type unit struct {
	id    string
	score float64
}

// sortUnits orders ascending by score, ties by ID — the canonical
// processing order of this package.
func sortUnits(us []unit) {
	sort.Slice(us, func(i, j int) bool {
		if us[i].score != us[j].score {
			return us[i].score < us[j].score
		}

		return us[i].id < us[j].id
	})
}
