package dataset

import (
	"fmt"
	"math"
	"sort"
)

// Dataset is an in-memory, column-oriented table of float64 values.
// Column order is preserved and every column has the same length.
// The zero value is an empty dataset ready for Set.
type Dataset struct {
	names []string
	cols  map[string][]float64
	rows  int
}

// New allocates an empty Dataset that will hold rows records.
func New(rows int) *Dataset {
	return &Dataset{cols: make(map[string][]float64), rows: rows}
}

// FromColumns builds a Dataset from parallel name and value slices.
// Values are copied.
func FromColumns(names []string, values [][]float64) (*Dataset, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("%d names for %d columns: %w", len(names), len(values), ErrLengthMismatch)
	}
	rows := 0
	if len(values) > 0 {
		rows = len(values[0])
	}
	d := New(rows)
	for i, name := range names {
		if d.Has(name) {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		if err := d.Set(name, values[i]); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Has reports whether the column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.cols[name]
	return ok
}

// Require returns a SchemaError for the first missing column.
func (d *Dataset) Require(op string, names ...string) error {
	for _, name := range names {
		if !d.Has(name) {
			return &SchemaError{Op: op, Column: name}
		}
	}
	return nil
}

// Column returns a copy of the named column.
func (d *Dataset) Column(name string) ([]float64, error) {
	col, ok := d.cols[name]
	if !ok {
		return nil, &SchemaError{Op: "column", Column: name}
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, nil
}

// Set stores a copy of values under name. An existing column is overwritten
// in place, a new one is appended to the schema.
func (d *Dataset) Set(name string, values []float64) error {
	if d.cols == nil {
		d.cols = make(map[string][]float64)
	}
	if len(d.names) == 0 && d.rows == 0 {
		d.rows = len(values)
	}
	if len(values) != d.rows {
		return fmt.Errorf("column %q has %d values, dataset has %d rows: %w", name, len(values), d.rows, ErrLengthMismatch)
	}
	col := make([]float64, len(values))
	copy(col, values)
	if !d.Has(name) {
		d.names = append(d.names, name)
	}
	d.cols[name] = col
	return nil
}

// Drop removes a column that must exist.
func (d *Dataset) Drop(name string) error {
	if !d.DropIfPresent(name) {
		return &SchemaError{Op: "drop", Column: name}
	}
	return nil
}

// DropIfPresent removes the column when it exists and reports whether it did.
// Removing an absent column is a no-op.
func (d *Dataset) DropIfPresent(name string) bool {
	if !d.Has(name) {
		return false
	}
	delete(d.cols, name)
	for i, n := range d.names {
		if n == name {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
	return true
}

// Clone deep copies the Dataset.
func (d *Dataset) Clone() *Dataset {
	c := New(d.rows)
	c.names = make([]string, len(d.names))
	copy(c.names, d.names)
	for name, col := range d.cols {
		cp := make([]float64, len(col))
		copy(cp, col)
		c.cols[name] = cp
	}
	return c
}

// SortBy returns a copy of the Dataset with rows ordered by the named column
// ascending. Equal keys keep their original relative order and NaN keys go
// last.
func (d *Dataset) SortBy(name string) (*Dataset, error) {
	key, ok := d.cols[name]
	if !ok {
		return nil, &SchemaError{Op: "sort", Column: name}
	}
	idx := make([]int, d.rows)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		x, y := key[idx[a]], key[idx[b]]
		if math.IsNaN(x) {
			return false
		}
		return math.IsNaN(y) || x < y
	})
	return d.take(idx), nil
}

// Slice returns a copy of rows [lo, hi).
func (d *Dataset) Slice(lo, hi int) (*Dataset, error) {
	if lo < 0 || hi > d.rows || lo > hi {
		return nil, fmt.Errorf("slice [%d:%d] out of range for %d rows", lo, hi, d.rows)
	}
	idx := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		idx = append(idx, i)
	}
	return d.take(idx), nil
}

// Row returns the values of row i in column order.
func (d *Dataset) Row(i int) []float64 {
	out := make([]float64, len(d.names))
	for j, name := range d.names {
		out[j] = d.cols[name][i]
	}
	return out
}

// Matrix returns the rows as a dense [][]float64 in column order.
func (d *Dataset) Matrix() [][]float64 {
	out := make([][]float64, d.rows)
	for i := range out {
		out[i] = d.Row(i)
	}
	return out
}

func (d *Dataset) take(idx []int) *Dataset {
	out := New(len(idx))
	out.names = make([]string, len(d.names))
	copy(out.names, d.names)
	for _, name := range d.names {
		src := d.cols[name]
		col := make([]float64, len(idx))
		for i, j := range idx {
			col[i] = src[j]
		}
		out.cols[name] = col
	}
	return out
}
