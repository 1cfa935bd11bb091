// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

import (
	"slices"
	"strings"

	"github.com/juju/errors"
	"github.com/samber/lo"
)

// Table is an ordered collection of rows with named columns. Cells hold scalar values:
// nil (missing), string, float64, int64, bool or time.Time. Cells are never mutated in
// place, so copying a row slice is enough to detach it from its source.
type Table struct {
	columns []string
	rows    [][]any
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{
		columns: slices.Clone(columns),
		rows:    make([][]any, 0),
	}
}

// Columns returns a copy of column names.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// ColumnIndex returns the position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	return slices.Index(t.columns, name)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns a copy of the i-th row.
func (t *Table) Row(i int) []any {
	return slices.Clone(t.rows[i])
}

// Value returns the cell at row i and column j.
func (t *Table) Value(i, j int) any {
	return t.rows[i][j]
}

// Column returns a copy of all values in a column.
func (t *Table) Column(name string) ([]any, error) {
	j := t.ColumnIndex(name)
	if j < 0 {
		return nil, errors.NotFoundf("column %s", name)
	}
	return lo.Map(t.rows, func(row []any, _ int) any {
		return row[j]
	}), nil
}

// Append adds a row. The number of values must match the number of columns.
func (t *Table) Append(values ...any) error {
	if len(values) != len(t.columns) {
		return errors.NotValidf("row of %d values for %d columns", len(values), len(t.columns))
	}
	t.rows = append(t.rows, slices.Clone(values))
	return nil
}

// SubSet creates a new table holding the rows at indices, in the order of indices.
func (t *Table) SubSet(indices []int) *Table {
	rows := make([][]any, len(indices))
	for i, index := range indices {
		rows[i] = slices.Clone(t.rows[index])
	}
	return &Table{
		columns: slices.Clone(t.columns),
		rows:    rows,
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	rows := make([][]any, len(t.rows))
	for i := range t.rows {
		rows[i] = slices.Clone(t.rows[i])
	}
	return &Table{
		columns: slices.Clone(t.columns),
		rows:    rows,
	}
}

// Concat concatenates tables with identical columns into a new table.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, errors.NotValidf("empty table list")
	}
	result := NewTable(tables[0].columns...)
	for i, table := range tables {
		if !slices.Equal(table.columns, result.columns) {
			return nil, errors.NotValidf("columns [%s] of table %d, expect [%s]",
				strings.Join(table.columns, ","), i, strings.Join(result.columns, ","))
		}
		for _, row := range table.rows {
			result.rows = append(result.rows, slices.Clone(row))
		}
	}
	return result, nil
}
