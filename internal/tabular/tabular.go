// Package tabular loads a subject CSV into a cohort.Table. It is the thin
// ingestion collaborator of the matching core: one header row, one subject
// per line, an identifier column, a two-valued group column, numeric
// covariate columns (empty cell = missing) and optional categorical
// columns.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/katalvlaran/propmatch/cohort"
)

// Sentinel errors returned by the loader.
var (
	// ErrMissingColumn indicates a column named in the Spec is absent from
	// the header row.
	ErrMissingColumn = errors.New("tabular: column not found in header")

	// ErrBadNumber indicates a covariate cell that is neither empty nor a
	// valid floating point number.
	ErrBadNumber = errors.New("tabular: invalid numeric value")

	// ErrBadGroup indicates a group cell matching neither the treatment
	// nor the control label.
	ErrBadGroup = errors.New("tabular: group label is neither treatment nor control")
)

// Spec names the columns of the subject file.
//
// ControlLabel may be empty, in which case every non-treatment value is
// accepted as control — but only one distinct such value; a third label in
// the column is an error either way, because the group must be two-valued.
type Spec struct {
	IDColumn       string
	GroupColumn    string
	TreatmentLabel string
	ControlLabel   string
	Continuous     []string
	Categorical    []string
}

// Load reads the CSV at path according to spec and builds the table.
// Row numbers in errors are 1-based and count the header.
func Load(path string, spec Spec) (*cohort.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tabular: open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tabular: read %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, cohort.ErrEmptyTable
	}

	header := rows[0]
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	idCol, err := columnIndex(col, spec.IDColumn)
	if err != nil {
		return nil, err
	}
	groupCol, err := columnIndex(col, spec.GroupColumn)
	if err != nil {
		return nil, err
	}
	contCols := make([]int, len(spec.Continuous))
	for i, name := range spec.Continuous {
		if contCols[i], err = columnIndex(col, name); err != nil {
			return nil, err
		}
	}
	catCols := make([]int, len(spec.Categorical))
	for i, name := range spec.Categorical {
		if catCols[i], err = columnIndex(col, name); err != nil {
			return nil, err
		}
	}

	// When no control label is configured, the first non-treatment value
	// seen becomes the control label; any further distinct value is a
	// third group and therefore an error.
	controlLabel := spec.ControlLabel

	b := cohort.NewBuilder(spec.Continuous...)
	for r, row := range rows[1:] {
		line := r + 2
		id := row[idCol]

		var group cohort.Group
		switch label := row[groupCol]; {
		case label == spec.TreatmentLabel:
			group = cohort.Treatment
		case controlLabel == "":
			controlLabel = label
			group = cohort.Control
		case label == controlLabel:
			group = cohort.Control
		default:
			return nil, fmt.Errorf("row %d, subject %q: label %q: %w",
				line, id, row[groupCol], ErrBadGroup)
		}

		values := make([]float64, len(contCols))
		for i, c := range contCols {
			cell := row[c]
			if cell == "" {
				values[i] = math.NaN() // missing, surfaced downstream

				continue
			}
			v, perr := strconv.ParseFloat(cell, 64)
			if perr != nil {
				return nil, fmt.Errorf("row %d, subject %q, column %q: %q: %w",
					line, id, spec.Continuous[i], cell, ErrBadNumber)
			}
			values[i] = v
		}

		b.Add(id, group, values...)
		for i, c := range catCols {
			if row[c] != "" {
				b.Field(id, spec.Categorical[i], row[c])
			}
		}
	}

	return b.Build()
}

// columnIndex resolves a configured column name against the header.
func columnIndex(col map[string]int, name string) (int, error) {
	idx, ok := col[name]
	if !ok {
		return 0, fmt.Errorf("column %q: %w", name, ErrMissingColumn)
	}

	return idx, nil
}
