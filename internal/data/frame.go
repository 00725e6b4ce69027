package data

import (
	"errors"
	"fmt"
)

// ErrDataIntegrity marks fatal data problems: missing or non-numeric cells,
// degenerate (zero-variance) features, or schema mismatches.
var ErrDataIntegrity = errors.New("data integrity error")

// Frame is an immutable table of named float64 columns. Column order follows
// the source file header.
type Frame struct {
	columns []string
	colIdx  map[string]int
	rows    [][]float64
}

func NewFrame(columns []string, rows [][]float64) (*Frame, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: frame has no columns", ErrDataIntegrity)
	}

	colIdx := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, ok := colIdx[name]; ok {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrDataIntegrity, name)
		}
		colIdx[name] = i
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d values, expected %d",
				ErrDataIntegrity, i, len(row), len(columns))
		}
	}

	return &Frame{
		columns: append([]string(nil), columns...),
		colIdx:  colIdx,
		rows:    rows,
	}, nil
}

func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

func (f *Frame) NumRows() int {
	return len(f.rows)
}

func (f *Frame) HasColumn(name string) bool {
	_, ok := f.colIdx[name]
	return ok
}

// Column returns a copy of the named column.
func (f *Frame) Column(name string) ([]float64, error) {
	idx, ok := f.colIdx[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown column %q", ErrDataIntegrity, name)
	}

	values := make([]float64, len(f.rows))
	for i, row := range f.rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Matrix returns a row-major copy of the named columns, in the given order.
func (f *Frame) Matrix(names []string) ([][]float64, error) {
	idx := make([]int, len(names))
	for j, name := range names {
		i, ok := f.colIdx[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown column %q", ErrDataIntegrity, name)
		}
		idx[j] = i
	}

	matrix := make([][]float64, len(f.rows))
	for i, row := range f.rows {
		matrix[i] = make([]float64, len(names))
		for j, col := range idx {
			matrix[i][j] = row[col]
		}
	}
	return matrix, nil
}
