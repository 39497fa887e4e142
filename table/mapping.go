package table

import (
	"fmt"

	"github.com/qvdfile/qvd/errs"
	"github.com/qvdfile/qvd/value"
)

// ToMapping returns the table as a name -> row-ordered native value
// sequence (§4.5 to_mapping), converting each cell with value.Native.
func (t *Table) ToMapping() map[string][]any {
	out := make(map[string][]any, len(t.columns))
	for _, c := range t.columns {
		seq := make([]any, t.numRows)
		for i := 0; i < t.numRows; i++ {
			seq[i] = c.at(i).Native()
		}
		out[c.Name] = seq
	}

	return out
}

// FromMapping builds a table named name from a name -> sequence
// mapping, in columnOrder, converting each element with value.From
// (§4.1). All referenced sequences must have equal length.
func FromMapping(name string, columnOrder []string, mapping map[string][]any) (*Table, error) {
	t, err := New(name, columnOrder...)
	if err != nil {
		return nil, err
	}

	n := -1
	for _, col := range columnOrder {
		seq, ok := mapping[col]
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrUnknownColumn, col)
		}
		if n == -1 {
			n = len(seq)
		} else if len(seq) != n {
			return nil, fmt.Errorf("%w: column %q has %d values, expected %d", errs.ErrShapeMismatch, col, len(seq), n)
		}
	}

	for i := 0; i < n; i++ {
		row := make([]value.Value, len(columnOrder))
		for ci, col := range columnOrder {
			row[ci] = value.From(mapping[col][i])
		}
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}

	return t, nil
}
