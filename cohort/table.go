package cohort

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Table is the immutable subject pool of one matching run.
//
// All accessors preserve insertion order, so a run is fully reproducible
// from the same input sequence.
type Table struct {
	covariates []string
	covIndex   map[string]int
	subjects   []Subject
	index      map[string]int
	fieldNames map[string]struct{}
}

// Len returns the number of subjects.
func (t *Table) Len() int { return len(t.subjects) }

// Covariates returns the declared covariate names in order (a copy).
func (t *Table) Covariates() []string {
	return append([]string(nil), t.covariates...)
}

// IDs returns all subject identifiers in insertion order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.subjects))
	for i := range t.subjects {
		ids[i] = t.subjects[i].ID
	}

	return ids
}

// Subject returns the record for id and whether it exists.
func (t *Table) Subject(id string) (Subject, bool) {
	pos, ok := t.index[id]
	if !ok {
		return Subject{}, false
	}

	return t.subjects[pos], true
}

// Partition splits the pool into treated and control identifier lists,
// each in insertion order.
func (t *Table) Partition() (treated, controls []string) {
	for i := range t.subjects {
		if t.subjects[i].Group == Treatment {
			treated = append(treated, t.subjects[i].ID)
		} else {
			controls = append(controls, t.subjects[i].ID)
		}
	}

	return treated, controls
}

// Labels returns the binary response vector aligned with insertion order:
// 1 for Treatment, 0 for Control. This is the y of the propensity model.
func (t *Table) Labels() []float64 {
	y := make([]float64, len(t.subjects))
	for i := range t.subjects {
		if t.subjects[i].Group == Treatment {
			y[i] = 1
		}
	}

	return y
}

// Exclude returns a new Table without the named subjects. The receiver is
// untouched: the analyst's manual exclusion loop derives tables, it does
// not mutate them. Naming an absent subject is an error, because a typo in
// an exclusion list must not silently keep an outlier in the pool.
func (t *Table) Exclude(ids ...string) (*Table, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := t.index[id]; !ok {
			return nil, fmt.Errorf("exclude %q: %w", id, ErrUnknownSubject)
		}
		drop[id] = struct{}{}
	}
	if len(t.subjects) == len(drop) {
		return nil, ErrEmptyTable
	}

	out := &Table{
		covariates: t.covariates,
		covIndex:   t.covIndex,
		index:      make(map[string]int),
		fieldNames: t.fieldNames,
	}
	for i := range t.subjects {
		if _, gone := drop[t.subjects[i].ID]; gone {
			continue
		}
		out.index[t.subjects[i].ID] = len(out.subjects)
		out.subjects = append(out.subjects, t.subjects[i])
	}

	return out, nil
}

// DesignMatrix extracts the n×k matrix of the requested covariates (all
// declared covariates when none are named), with one row per subject in
// insertion order, plus the row-aligned identifier list.
//
// A NaN cell fails with ErrMissingValue naming the subject and covariate:
// the propensity model permits no missing values (they are surfaced for the
// analyst, never imputed).
func (t *Table) DesignMatrix(covariates ...string) (*mat.Dense, []string, error) {
	if len(covariates) == 0 {
		covariates = t.covariates
	}
	cols := make([]int, len(covariates))
	for j, name := range covariates {
		pos, ok := t.covIndex[name]
		if !ok {
			return nil, nil, fmt.Errorf("covariate %q: %w", name, ErrUnknownCovariate)
		}
		cols[j] = pos
	}

	n := len(t.subjects)
	x := mat.NewDense(n, len(cols), nil)
	ids := make([]string, n)
	for i := range t.subjects {
		ids[i] = t.subjects[i].ID
		for j, pos := range cols {
			v := t.subjects[i].values[pos]
			if math.IsNaN(v) {
				return nil, nil, fmt.Errorf("subject %q, covariate %q: %w",
					t.subjects[i].ID, covariates[j], ErrMissingValue)
			}
			x.Set(i, j, v)
		}
	}

	return x, ids, nil
}

// Values extracts one covariate over the given subjects, in the given
// order. A NaN cell fails with ErrMissingValue naming subject and covariate.
func (t *Table) Values(covariate string, ids []string) ([]float64, error) {
	pos, ok := t.covIndex[covariate]
	if !ok {
		return nil, fmt.Errorf("covariate %q: %w", covariate, ErrUnknownCovariate)
	}

	out := make([]float64, len(ids))
	for i, id := range ids {
		sub, found := t.index[id]
		if !found {
			return nil, fmt.Errorf("subject %q: %w", id, ErrUnknownSubject)
		}
		v := t.subjects[sub].values[pos]
		if math.IsNaN(v) {
			return nil, fmt.Errorf("subject %q, covariate %q: %w", id, covariate, ErrMissingValue)
		}
		out[i] = v
	}

	return out, nil
}

// Categories extracts one categorical field over the given subjects, in the
// given order. A subject without the field fails with ErrMissingValue.
func (t *Table) Categories(field string, ids []string) ([]string, error) {
	if _, ok := t.fieldNames[field]; !ok {
		return nil, fmt.Errorf("field %q: %w", field, ErrUnknownField)
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		sub, found := t.index[id]
		if !found {
			return nil, fmt.Errorf("subject %q: %w", id, ErrUnknownSubject)
		}
		v, has := t.subjects[sub].fields[field]
		if !has {
			return nil, fmt.Errorf("subject %q, field %q: %w", id, field, ErrMissingValue)
		}
		out[i] = v
	}

	return out, nil
}
