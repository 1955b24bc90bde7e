package cohort

import "fmt"

// Builder accumulates subjects and produces an immutable Table.
//
// Validation is deferred to Build: Add and Field remain chainable, and the
// first error encountered (in call order) is the one Build reports.
type Builder struct {
	covariates []string
	subjects   []Subject
	index      map[string]int
	fieldNames map[string]struct{}
	err        error
}

// NewBuilder declares the ordered covariate set of the table under
// construction. Every Add call must supply exactly one value per name.
func NewBuilder(covariates ...string) *Builder {
	b := &Builder{
		covariates: append([]string(nil), covariates...),
		index:      make(map[string]int),
		fieldNames: make(map[string]struct{}),
	}
	if len(covariates) == 0 {
		b.err = ErrNoCovariates
	}

	return b
}

// Add appends one subject with its covariate values, in declaration order.
// Use math.NaN() for a missing value. Returns the Builder for chaining.
func (b *Builder) Add(id string, group Group, values ...float64) *Builder {
	if b.err != nil {
		return b
	}
	if id == "" {
		b.err = ErrEmptyID

		return b
	}
	if _, dup := b.index[id]; dup {
		b.err = fmt.Errorf("subject %q: %w", id, ErrDuplicateID)

		return b
	}
	if group != Treatment && group != Control {
		b.err = fmt.Errorf("subject %q: group %d: %w", id, group, ErrUnknownGroup)

		return b
	}
	if len(values) != len(b.covariates) {
		b.err = fmt.Errorf("subject %q: got %d values, want %d: %w",
			id, len(values), len(b.covariates), ErrArityMismatch)

		return b
	}

	b.index[id] = len(b.subjects)
	b.subjects = append(b.subjects, Subject{
		ID:     id,
		Group:  group,
		values: append([]float64(nil), values...),
	})

	return b
}

// Field attaches a categorical field value (e.g. "sex" = "F") to an already
// added subject. Fields feed the categorical balance diagnostics only; they
// never enter the propensity design matrix.
func (b *Builder) Field(id, name, value string) *Builder {
	if b.err != nil {
		return b
	}
	pos, ok := b.index[id]
	if !ok {
		b.err = fmt.Errorf("subject %q: %w", id, ErrUnknownSubject)

		return b
	}
	if name == "" {
		b.err = fmt.Errorf("subject %q: empty field name: %w", id, ErrUnknownField)

		return b
	}

	s := &b.subjects[pos]
	if s.fields == nil {
		s.fields = make(map[string]string)
	}
	s.fields[name] = value
	b.fieldNames[name] = struct{}{}

	return b
}

// Build validates the accumulated input and returns the immutable Table.
func (b *Builder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.subjects) == 0 {
		return nil, ErrEmptyTable
	}

	covIndex := make(map[string]int, len(b.covariates))
	for i, name := range b.covariates {
		if name == "" {
			return nil, ErrUnknownCovariate
		}
		if _, dup := covIndex[name]; dup {
			return nil, fmt.Errorf("covariate %q declared twice: %w", name, ErrUnknownCovariate)
		}
		covIndex[name] = i
	}

	t := &Table{
		covariates: b.covariates,
		covIndex:   covIndex,
		subjects:   b.subjects,
		index:      b.index,
		fieldNames: b.fieldNames,
	}
	// The Builder must not alias the Table's storage after Build.
	b.subjects = nil
	b.index = nil
	b.fieldNames = nil

	return t, nil
}
