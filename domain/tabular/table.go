// Package tabular defines the in-memory observation table: an ordered set of
// named columns over a fixed number of rows, with one designated binary
// target field. The table is the single mutable resource of a run; each
// treatment or binning step adds (or overwrites) a derived column, and all
// components operate on it sequentially.
package tabular

import (
	"math"
	"sort"

	"scorecard/domain/core"
)

// Role describes the semantic type of a field.
type Role string

const (
	RoleContinuous  Role = "continuous"
	RoleDiscrete    Role = "discrete"
	RoleCategorical Role = "categorical"
	RoleTarget      Role = "target"
	RoleDerived     Role = "derived"
)

// Field describes a single column in the table.
type Field struct {
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	Missing     int    `json:"missing"`
	Cardinality int    `json:"cardinality"`
}

// Table is an ordered collection of row-aligned columns. Numeric columns use
// NaN as the missing marker; label columns use the empty string.
type Table struct {
	Name string

	fields  []Field
	numeric map[string][]float64
	labels  map[string][]string
	rows    int
	sized   bool
}

// NewTable creates an empty table.
func NewTable(name string) *Table {
	return &Table{
		Name:    name,
		numeric: make(map[string][]float64),
		labels:  make(map[string][]string),
	}
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Fields returns the field descriptors in column order.
func (t *Table) Fields() []Field {
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// Field returns the descriptor for a named column.
func (t *Table) Field(name string) (Field, error) {
	for _, f := range t.fields {
		if f.Name == name {
			return f, nil
		}
	}
	return Field{}, core.ErrVariableNotFound
}

// AddNumeric adds or replaces a numeric column. The first column added fixes
// the row count; later columns must match it.
func (t *Table) AddNumeric(name string, role Role, values []float64) error {
	if err := t.checkLength(name, len(values)); err != nil {
		return err
	}

	missing := 0
	distinct := make(map[float64]struct{})
	for _, v := range values {
		if math.IsNaN(v) {
			missing++
			continue
		}
		distinct[v] = struct{}{}
	}

	col := make([]float64, len(values))
	copy(col, values)
	t.numeric[name] = col
	delete(t.labels, name)
	t.upsertField(Field{Name: name, Role: role, Missing: missing, Cardinality: len(distinct)})
	return nil
}

// AddLabels adds or replaces a label (discrete/binned) column.
func (t *Table) AddLabels(name string, role Role, values []string) error {
	if err := t.checkLength(name, len(values)); err != nil {
		return err
	}

	missing := 0
	distinct := make(map[string]struct{})
	for _, v := range values {
		if v == "" {
			missing++
			continue
		}
		distinct[v] = struct{}{}
	}

	col := make([]string, len(values))
	copy(col, values)
	t.labels[name] = col
	delete(t.numeric, name)
	t.upsertField(Field{Name: name, Role: role, Missing: missing, Cardinality: len(distinct)})
	return nil
}

// Numeric returns a copy of a numeric column.
func (t *Table) Numeric(name string) ([]float64, error) {
	col, ok := t.numeric[name]
	if !ok {
		return nil, core.ErrVariableNotFound
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, nil
}

// Labels returns a copy of a label column.
func (t *Table) Labels(name string) ([]string, error) {
	col, ok := t.labels[name]
	if !ok {
		return nil, core.ErrVariableNotFound
	}
	out := make([]string, len(col))
	copy(out, col)
	return out, nil
}

// Target returns the named column as a binary target. Values other than 0
// and 1 (or missing entries) are input shape violations.
func (t *Table) Target(name string) ([]int, error) {
	col, ok := t.numeric[name]
	if !ok {
		return nil, core.ErrVariableNotFound
	}

	out := make([]int, len(col))
	for i, v := range col {
		switch v {
		case 0:
			out[i] = 0
		case 1:
			out[i] = 1
		default:
			return nil, core.NewTargetDomainError(v, i)
		}
	}
	return out, nil
}

// LevelOrder returns the distinct levels of a label column. Levels are sorted
// lexicographically, which matches the natural order for naturally discrete
// variables; binned columns carry their own ordering from the binner.
func (t *Table) LevelOrder(name string) ([]string, error) {
	col, ok := t.labels[name]
	if !ok {
		return nil, core.ErrVariableNotFound
	}

	distinct := make(map[string]struct{})
	for _, v := range col {
		if v != "" {
			distinct[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(distinct))
	for v := range distinct {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func (t *Table) checkLength(name string, n int) error {
	if !t.sized {
		t.rows = n
		t.sized = true
		return nil
	}
	if n != t.rows {
		return core.NewLengthMismatchError(name, n, t.rows)
	}
	return nil
}

func (t *Table) upsertField(f Field) {
	for i := range t.fields {
		if t.fields[i].Name == f.Name {
			t.fields[i] = f
			return
		}
	}
	t.fields = append(t.fields, f)
}
