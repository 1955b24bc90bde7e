package cohort_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/propmatch/cohort"
)

// buildTable constructs the small pool reused across tests:
// two treated and two control subjects, ages and BMI, sex as a field.
func buildTable(t *testing.T) *cohort.Table {
	t.Helper()

	b := cohort.NewBuilder("age", "bmi")
	b.Add("T1", cohort.Treatment, 34, 22.5)
	b.Add("C1", cohort.Control, 41, 25.1)
	b.Add("T2", cohort.Treatment, 29, 21.0)
	b.Add("C2", cohort.Control, 37, 24.4)
	b.Field("T1", "sex", "F")
	b.Field("C1", "sex", "M")
	b.Field("T2", "sex", "M")
	b.Field("C2", "sex", "F")

	tbl, err := b.Build()
	require.NoError(t, err, "valid table must build")

	return tbl
}

// TestBuilder_NoCovariates verifies NewBuilder() without names fails at Build.
func TestBuilder_NoCovariates(t *testing.T) {
	_, err := cohort.NewBuilder().Add("S1", cohort.Control).Build()
	assert.ErrorIs(t, err, cohort.ErrNoCovariates)
}

// TestBuilder_DuplicateID verifies the second Add of the same ID fails and
// the error names the subject.
func TestBuilder_DuplicateID(t *testing.T) {
	b := cohort.NewBuilder("age")
	b.Add("S1", cohort.Treatment, 30)
	b.Add("S1", cohort.Control, 31)

	_, err := b.Build()
	assert.ErrorIs(t, err, cohort.ErrDuplicateID)
	assert.Contains(t, err.Error(), "S1", "error must identify the subject")
}

// TestBuilder_ArityMismatch verifies a wrong value count is rejected.
func TestBuilder_ArityMismatch(t *testing.T) {
	_, err := cohort.NewBuilder("age", "bmi").Add("S1", cohort.Treatment, 30).Build()
	assert.ErrorIs(t, err, cohort.ErrArityMismatch)
}

// TestBuilder_UnknownGroup verifies an out-of-range group value is rejected
// instead of silently counting as control.
func TestBuilder_UnknownGroup(t *testing.T) {
	_, err := cohort.NewBuilder("age").Add("S1", cohort.Group(5), 30).Build()
	assert.ErrorIs(t, err, cohort.ErrUnknownGroup)
	assert.Contains(t, err.Error(), "S1")
}

// TestBuilder_EmptyTable verifies Build with zero subjects fails.
func TestBuilder_EmptyTable(t *testing.T) {
	_, err := cohort.NewBuilder("age").Build()
	assert.ErrorIs(t, err, cohort.ErrEmptyTable)
}

// TestTable_PartitionAndLabels verifies insertion order is preserved and
// labels align 1 = treatment.
func TestTable_PartitionAndLabels(t *testing.T) {
	tbl := buildTable(t)

	treated, controls := tbl.Partition()
	assert.Equal(t, []string{"T1", "T2"}, treated)
	assert.Equal(t, []string{"C1", "C2"}, controls)
	assert.Equal(t, []float64{1, 0, 1, 0}, tbl.Labels())
	assert.Equal(t, []string{"T1", "C1", "T2", "C2"}, tbl.IDs())
}

// TestTable_DesignMatrix verifies shape, row alignment and column selection.
func TestTable_DesignMatrix(t *testing.T) {
	tbl := buildTable(t)

	x, ids, err := tbl.DesignMatrix("bmi")
	require.NoError(t, err)

	r, c := x.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 1, c)
	assert.Equal(t, []string{"T1", "C1", "T2", "C2"}, ids)
	assert.Equal(t, 22.5, x.At(0, 0))
	assert.Equal(t, 24.4, x.At(3, 0))
}

// TestTable_DesignMatrix_MissingValue verifies a NaN cell surfaces
// ErrMissingValue with subject and covariate identified.
func TestTable_DesignMatrix_MissingValue(t *testing.T) {
	b := cohort.NewBuilder("age")
	b.Add("S1", cohort.Treatment, 30)
	b.Add("S2", cohort.Control, math.NaN())
	tbl, err := b.Build()
	require.NoError(t, err)

	_, _, err = tbl.DesignMatrix()
	assert.ErrorIs(t, err, cohort.ErrMissingValue)
	assert.Contains(t, err.Error(), "S2")
	assert.Contains(t, err.Error(), "age")
}

// TestTable_DesignMatrix_UnknownCovariate verifies unknown names fail.
func TestTable_DesignMatrix_UnknownCovariate(t *testing.T) {
	_, _, err := buildTable(t).DesignMatrix("height")
	assert.ErrorIs(t, err, cohort.ErrUnknownCovariate)
}

// TestTable_Exclude verifies exclusion derives a reduced copy and leaves
// the receiver untouched.
func TestTable_Exclude(t *testing.T) {
	tbl := buildTable(t)

	reduced, err := tbl.Exclude("T1")
	require.NoError(t, err)
	assert.Equal(t, 3, reduced.Len())
	assert.Equal(t, 4, tbl.Len(), "original table must not change")

	_, ok := reduced.Subject("T1")
	assert.False(t, ok)

	_, err = tbl.Exclude("NOPE")
	assert.ErrorIs(t, err, cohort.ErrUnknownSubject)
}

// TestTable_Exclude_All verifies removing every subject is rejected.
func TestTable_Exclude_All(t *testing.T) {
	tbl := buildTable(t)

	_, err := tbl.Exclude("T1", "T2", "C1", "C2")
	assert.ErrorIs(t, err, cohort.ErrEmptyTable)
}

// TestTable_Values verifies extraction over an arbitrary subset and order.
func TestTable_Values(t *testing.T) {
	tbl := buildTable(t)

	vals, err := tbl.Values("age", []string{"C2", "T1"})
	require.NoError(t, err)
	assert.Equal(t, []float64{37, 34}, vals)

	_, err = tbl.Values("age", []string{"NOPE"})
	assert.ErrorIs(t, err, cohort.ErrUnknownSubject)
}

// TestTable_Categories verifies categorical extraction and the missing-field path.
func TestTable_Categories(t *testing.T) {
	tbl := buildTable(t)

	sexes, err := tbl.Categories("sex", []string{"T1", "C1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"F", "M"}, sexes)

	_, err = tbl.Categories("smoker", []string{"T1"})
	assert.ErrorIs(t, err, cohort.ErrUnknownField)

	b := cohort.NewBuilder("age")
	b.Add("S1", cohort.Treatment, 30)
	b.Add("S2", cohort.Control, 31)
	b.Field("S1", "sex", "F")
	partial, err := b.Build()
	require.NoError(t, err)

	_, err = partial.Categories("sex", []string{"S2"})
	assert.ErrorIs(t, err, cohort.ErrMissingValue)
	assert.Contains(t, err.Error(), "S2")
}

// TestGroup_String pins the label names used in reports.
func TestGroup_String(t *testing.T) {
	assert.Equal(t, "treatment", cohort.Treatment.String())
	assert.Equal(t, "control", cohort.Control.String())
}
