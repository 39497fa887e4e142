package table

import (
	"fmt"

	"github.com/qvdfile/qvd/errs"
	"github.com/qvdfile/qvd/value"
)

// Table is an in-memory, column-major QVD table (§3): an ordered list
// of named columns sharing a common row count.
type Table struct {
	name    string
	columns []*Column
	numRows int
}

// New creates an empty table (zero rows) named name with the given
// columns, in declared order. Column names must be unique.
func New(name string, columnNames ...string) (*Table, error) {
	t := &Table{name: name}

	seen := make(map[string]struct{}, len(columnNames))
	for _, n := range columnNames {
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, n)
		}
		seen[n] = struct{}{}
		t.columns = append(t.columns, newColumn(n))
	}

	return t, nil
}

// Name returns the table's name.
func (t *Table) Name() string { return t.name }

// Shape returns the row and column counts.
func (t *Table) Shape() (rows, cols int) { return t.numRows, len(t.columns) }

// ColumnNames returns column names in declared order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}

	return names
}

// Column returns the named column for read access to its symbol
// dictionary (e.g. by the header/symbol/index encoders on write).
func (t *Table) Column(name string) (*Column, error) {
	ci, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}

	return t.columns[ci], nil
}

// Columns returns all columns in declared order.
func (t *Table) Columns() []*Column {
	return t.columns
}

func (t *Table) columnIndex(name string) (int, error) {
	for i, c := range t.columns {
		if c.Name == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrUnknownColumn, name)
}

func (t *Table) checkRow(row int) error {
	if row < 0 || row >= t.numRows {
		return fmt.Errorf("%w: %d (have %d rows)", errs.ErrRowOutOfRange, row, t.numRows)
	}

	return nil
}

// Get returns the cell at (row, column).
func (t *Table) Get(row int, column string) (value.Value, error) {
	if err := t.checkRow(row); err != nil {
		return value.Value{}, err
	}
	ci, err := t.columnIndex(column)
	if err != nil {
		return value.Value{}, err
	}

	return t.columns[ci].at(row), nil
}

// Set replaces the cell at (row, column), interning v into the
// column's symbol list.
func (t *Table) Set(row int, column string, v value.Value) error {
	if err := t.checkRow(row); err != nil {
		return err
	}
	ci, err := t.columnIndex(column)
	if err != nil {
		return err
	}

	c := t.columns[ci]
	c.codes[row] = c.intern(v)

	return nil
}

// GetRow returns row's values, one per column in declared order.
func (t *Table) GetRow(row int) ([]value.Value, error) {
	if err := t.checkRow(row); err != nil {
		return nil, err
	}

	out := make([]value.Value, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.at(row)
	}

	return out, nil
}

// SetRow replaces every cell of row. len(values) must equal the
// column count.
func (t *Table) SetRow(row int, values []value.Value) error {
	if err := t.checkRow(row); err != nil {
		return err
	}
	if len(values) != len(t.columns) {
		return fmt.Errorf("%w: row has %d values, table has %d columns", errs.ErrShapeMismatch, len(values), len(t.columns))
	}

	for i, c := range t.columns {
		c.codes[row] = c.intern(values[i])
	}

	return nil
}

// GetColumn returns name's full value sequence.
func (t *Table) GetColumn(name string) ([]value.Value, error) {
	ci, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}

	c := t.columns[ci]
	out := make([]value.Value, t.numRows)
	for i := range out {
		out[i] = c.at(i)
	}

	return out, nil
}

// SetColumn replaces name's full value sequence. len(values) must
// equal the table's row count.
func (t *Table) SetColumn(name string, values []value.Value) error {
	ci, err := t.columnIndex(name)
	if err != nil {
		return err
	}
	if len(values) != t.numRows {
		return fmt.Errorf("%w: column has %d values, table has %d rows", errs.ErrShapeMismatch, len(values), t.numRows)
	}

	nc := newColumn(t.columns[ci].Name)
	nc.Format = t.columns[ci].Format
	nc.Tags = t.columns[ci].Tags
	nc.codes = make([]int, t.numRows)
	for i, v := range values {
		nc.codes[i] = nc.intern(v)
	}
	t.columns[ci] = nc

	return nil
}

// Append adds row to the end of the table.
func (t *Table) Append(row []value.Value) error {
	return t.Insert(t.numRows, row)
}

// Insert adds row at position i, shifting subsequent rows down.
// len(row) must equal the column count; native values are coerced by
// the caller via value.From (§4.1).
func (t *Table) Insert(i int, row []value.Value) error {
	if i < 0 || i > t.numRows {
		return fmt.Errorf("%w: %d (have %d rows)", errs.ErrRowOutOfRange, i, t.numRows)
	}
	if len(row) != len(t.columns) {
		return fmt.Errorf("%w: row has %d values, table has %d columns", errs.ErrShapeMismatch, len(row), len(t.columns))
	}

	for ci, c := range t.columns {
		code := c.intern(row[ci])
		c.codes = append(c.codes, 0)
		copy(c.codes[i+1:], c.codes[i:])
		c.codes[i] = code
	}
	t.numRows++

	return nil
}

// DropRow removes the row at index i, shifting subsequent rows up.
func (t *Table) DropRow(i int) error {
	if err := t.checkRow(i); err != nil {
		return err
	}

	for _, c := range t.columns {
		c.codes = append(c.codes[:i], c.codes[i+1:]...)
	}
	t.numRows--

	return nil
}

// DropColumn removes the named column.
func (t *Table) DropColumn(name string) error {
	ci, err := t.columnIndex(name)
	if err != nil {
		return err
	}

	t.columns = append(t.columns[:ci], t.columns[ci+1:]...)

	return nil
}

// Head returns a new table holding the first n rows (all rows, if n
// exceeds the row count).
func (t *Table) Head(n int) *Table {
	if n > t.numRows {
		n = t.numRows
	}

	return t.selectRows(rowRange(0, n))
}

// Tail returns a new table holding the last n rows.
func (t *Table) Tail(n int) *Table {
	if n > t.numRows {
		n = t.numRows
	}

	return t.selectRows(rowRange(t.numRows-n, t.numRows))
}

func rowRange(from, to int) []int {
	rows := make([]int, to-from)
	for i := range rows {
		rows[i] = from + i
	}

	return rows
}

// selectRows returns a new table holding rows (by original index) in
// the given order. Each column gets its own symbol list and
// dictionary copy so the result is independently mutable (§5 "derived
// operations return new tables").
func (t *Table) selectRows(rows []int) *Table {
	out := &Table{name: t.name, numRows: len(rows)}

	for _, c := range t.columns {
		nc := newColumn(c.Name)
		nc.Format = c.Format
		nc.Tags = c.Tags
		nc.symbols = append([]value.Value(nil), c.symbols...)
		for i, s := range nc.symbols {
			nc.dict.Insert(s.Hash(), s.AsKey(), i)
		}

		nc.codes = make([]int, len(rows))
		for i, r := range rows {
			nc.codes[i] = c.codes[r]
		}

		out.columns = append(out.columns, nc)
	}

	return out
}

// Clone returns a deep structural copy of t.
func (t *Table) Clone() *Table {
	out := &Table{name: t.name, numRows: t.numRows}
	out.columns = make([]*Column, len(t.columns))
	for i, c := range t.columns {
		out.columns[i] = c.clone()
	}

	return out
}

// Compact drops symbols no column's codes reference any more, e.g.
// after FilterBy narrowed the row set (§4.5 "a separate compact step").
func (t *Table) Compact() {
	for _, c := range t.columns {
		c.compact()
	}
}
