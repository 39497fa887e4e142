package table

import (
	"fmt"

	"github.com/qvdfile/qvd/errs"
)

// Concat returns the row-wise union of t and other: column sets must
// match by name (column order taken from t, §8 property #7);
// per-column symbol lists are unioned preserving first-seen order and
// other's codes are remapped onto the union (§4.5). When inplace is
// true, t itself is mutated and returned instead of a copy.
func (t *Table) Concat(other *Table, inplace bool) (*Table, error) {
	if err := t.checkConcatShape(other); err != nil {
		return nil, err
	}

	dst := t
	if !inplace {
		dst = t.Clone()
	}

	for _, c := range dst.columns {
		oi, err := other.columnIndex(c.Name)
		if err != nil {
			return nil, err
		}

		src := other.columns[oi]
		for i := 0; i < other.numRows; i++ {
			c.codes = append(c.codes, c.intern(src.at(i)))
		}
	}
	dst.numRows += other.numRows

	return dst, nil
}

func (t *Table) checkConcatShape(other *Table) error {
	if len(t.columns) != len(other.columns) {
		return fmt.Errorf("%w: %d columns vs %d", errs.ErrShapeMismatch, len(t.columns), len(other.columns))
	}
	for _, c := range t.columns {
		if _, err := other.columnIndex(c.Name); err != nil {
			return err
		}
	}

	return nil
}
