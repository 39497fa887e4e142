package table

import (
	"sort"

	"github.com/qvdfile/qvd/value"
)

// FilterBy returns a new table holding the rows of t where predicate
// holds for column's value, in original order (§8 property #6).
func (t *Table) FilterBy(column string, predicate func(value.Value) bool) (*Table, error) {
	ci, err := t.columnIndex(column)
	if err != nil {
		return nil, err
	}

	src := t.columns[ci]
	var rows []int
	for i := 0; i < t.numRows; i++ {
		if predicate(src.at(i)) {
			rows = append(rows, i)
		}
	}

	return t.selectRows(rows), nil
}

// SortBy returns a new table with rows ordered stably by column
// (§8 property #5). When cmp is nil, §4.1 ordering (value.Compare) is
// used.
func (t *Table) SortBy(column string, ascending bool, cmp func(a, b value.Value) int) (*Table, error) {
	ci, err := t.columnIndex(column)
	if err != nil {
		return nil, err
	}
	if cmp == nil {
		cmp = value.Compare
	}

	src := t.columns[ci]
	rows := rowRange(0, t.numRows)

	sort.SliceStable(rows, func(a, b int) bool {
		c := cmp(src.at(rows[a]), src.at(rows[b]))
		if ascending {
			return c < 0
		}

		return c > 0
	})

	return t.selectRows(rows), nil
}
