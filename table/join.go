package table

import (
	"github.com/qvdfile/qvd/errs"
	"github.com/qvdfile/qvd/value"
)

// JoinHow selects the equi-join variant (§4.5).
type JoinHow int

const (
	JoinInner JoinHow = iota
	JoinLeft
	JoinRight
	JoinOuter
)

// Join returns the equi-join of t and other on the key columns named
// by on. Non-key columns whose names collide across the two tables
// get lsuffix (t's side) or rsuffix (other's side) appended. Key
// equality is §4.1 value equality (§8 property #8). Output row order:
// all matched left rows in left order, then unmatched-right rows in
// right order (for right/outer, §4.5).
func (t *Table) Join(other *Table, on []string, how JoinHow, lsuffix, rsuffix string) (*Table, error) {
	if len(on) == 0 {
		return nil, errs.ErrNoJoinKeys
	}
	if how < JoinInner || how > JoinOuter {
		return nil, errs.ErrUnknownJoinHow
	}

	leftKeyIdx, err := columnIndices(t, on)
	if err != nil {
		return nil, err
	}
	rightKeyIdx, err := columnIndices(other, on)
	if err != nil {
		return nil, err
	}

	keySet := make(map[string]struct{}, len(on))
	for _, n := range on {
		keySet[n] = struct{}{}
	}

	leftNonKeyIdx, leftNonKeyNames := nonKeyColumns(t, keySet)
	rightNonKeyIdx, rightNonKeyNames := nonKeyColumns(other, keySet)

	outNames := joinOutputNames(on, leftNonKeyNames, rightNonKeyNames, lsuffix, rsuffix)
	out, err := New(t.name, outNames...)
	if err != nil {
		return nil, err
	}

	rightBuckets := make(map[uint64][]int, other.numRows)
	for ri := 0; ri < other.numRows; ri++ {
		h := joinRowHash(other, rightKeyIdx, ri)
		rightBuckets[h] = append(rightBuckets[h], ri)
	}

	appendJoinRow := func(li, ri int) error {
		return out.Append(buildJoinRow(t, leftKeyIdx, leftNonKeyIdx, other, rightKeyIdx, rightNonKeyIdx, li, ri))
	}

	matchedRight := make([]bool, other.numRows)
	for li := 0; li < t.numRows; li++ {
		h := joinRowHash(t, leftKeyIdx, li)

		matched := false
		for _, ri := range rightBuckets[h] {
			if !joinRowEqual(t, leftKeyIdx, li, other, rightKeyIdx, ri) {
				continue
			}
			matched = true
			matchedRight[ri] = true
			if err := appendJoinRow(li, ri); err != nil {
				return nil, err
			}
		}

		if !matched && (how == JoinLeft || how == JoinOuter) {
			if err := appendJoinRow(li, -1); err != nil {
				return nil, err
			}
		}
	}

	if how == JoinRight || how == JoinOuter {
		for ri := 0; ri < other.numRows; ri++ {
			if matchedRight[ri] {
				continue
			}
			if err := appendJoinRow(-1, ri); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

func columnIndices(t *Table, names []string) ([]int, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		ci, err := t.columnIndex(n)
		if err != nil {
			return nil, err
		}
		idx[i] = ci
	}

	return idx, nil
}

func nonKeyColumns(t *Table, keySet map[string]struct{}) ([]int, []string) {
	var idx []int
	var names []string
	for i, c := range t.columns {
		if _, isKey := keySet[c.Name]; isKey {
			continue
		}
		idx = append(idx, i)
		names = append(names, c.Name)
	}

	return idx, names
}

func joinOutputNames(on, leftNonKey, rightNonKey []string, lsuffix, rsuffix string) []string {
	rightSet := make(map[string]struct{}, len(rightNonKey))
	for _, n := range rightNonKey {
		rightSet[n] = struct{}{}
	}
	leftSet := make(map[string]struct{}, len(leftNonKey))
	for _, n := range leftNonKey {
		leftSet[n] = struct{}{}
	}

	names := append([]string{}, on...)
	for _, n := range leftNonKey {
		if _, collide := rightSet[n]; collide {
			n += lsuffix
		}
		names = append(names, n)
	}
	for _, n := range rightNonKey {
		if _, collide := leftSet[n]; collide {
			n += rsuffix
		}
		names = append(names, n)
	}

	return names
}

// combineHash folds h into acc the way boost's hash_combine does,
// giving a stable per-row composite hash over an ordered key-column
// list without allocating an intermediate string.
func combineHash(acc, h uint64) uint64 {
	return acc ^ (h + 0x9e3779b97f4a7c15 + (acc << 6) + (acc >> 2))
}

func joinRowHash(t *Table, keyIdx []int, row int) uint64 {
	var h uint64
	for _, ci := range keyIdx {
		h = combineHash(h, t.columns[ci].at(row).Hash())
	}

	return h
}

func joinRowEqual(a *Table, aKeyIdx []int, ai int, b *Table, bKeyIdx []int, bi int) bool {
	for i := range aKeyIdx {
		if !a.columns[aKeyIdx[i]].at(ai).Equal(b.columns[bKeyIdx[i]].at(bi)) {
			return false
		}
	}

	return true
}

// buildJoinRow assembles one output row: key columns (left value, or
// right value when the left side is absent), then left non-key
// columns (Null when absent), then right non-key columns (Null when
// absent).
func buildJoinRow(left *Table, leftKeyIdx, leftNonKeyIdx []int, right *Table, rightKeyIdx, rightNonKeyIdx []int, li, ri int) []value.Value {
	row := make([]value.Value, 0, len(leftKeyIdx)+len(leftNonKeyIdx)+len(rightNonKeyIdx))

	for k := range leftKeyIdx {
		if li >= 0 {
			row = append(row, left.columns[leftKeyIdx[k]].at(li))
		} else {
			row = append(row, right.columns[rightKeyIdx[k]].at(ri))
		}
	}
	for _, ci := range leftNonKeyIdx {
		if li >= 0 {
			row = append(row, left.columns[ci].at(li))
		} else {
			row = append(row, value.Null())
		}
	}
	for _, ci := range rightNonKeyIdx {
		if ri >= 0 {
			row = append(row, right.columns[ci].at(ri))
		} else {
			row = append(row, value.Null())
		}
	}

	return row
}
