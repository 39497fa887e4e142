package table

import (
	"testing"

	"github.com/qvdfile/qvd/value"
	"github.com/stretchr/testify/require"
)

func buildTable(t *testing.T, name string, cols []string, rows [][]value.Value) *Table {
	t.Helper()
	tbl, err := New(name, cols...)
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, tbl.Append(row))
	}

	return tbl
}

func TestNewDuplicateColumn(t *testing.T) {
	_, err := New("T", "A", "A")
	require.Error(t, err)
}

func TestGetSetCell(t *testing.T) {
	tbl := buildTable(t, "T", []string{"A"}, [][]value.Value{{value.Int(1)}, {value.Int(2)}})

	v, err := tbl.Get(0, "A")
	require.NoError(t, err)
	require.True(t, value.Int(1).Equal(v))

	require.NoError(t, tbl.Set(0, "A", value.Int(99)))
	v, err = tbl.Get(0, "A")
	require.NoError(t, err)
	require.True(t, value.Int(99).Equal(v))

	_, err = tbl.Get(5, "A")
	require.Error(t, err)
	_, err = tbl.Get(0, "B")
	require.Error(t, err)
}

func TestSymbolInterningDedups(t *testing.T) {
	tbl := buildTable(t, "T", []string{"A"}, [][]value.Value{
		{value.Str("x")}, {value.Str("y")}, {value.Str("x")},
	})

	col, err := tbl.Column("A")
	require.NoError(t, err)
	require.Len(t, col.Symbols(), 2)
}

func TestGetSetRow(t *testing.T) {
	tbl := buildTable(t, "T", []string{"A", "B"}, [][]value.Value{{value.Int(1), value.Str("a")}})

	row, err := tbl.GetRow(0)
	require.NoError(t, err)
	require.Len(t, row, 2)

	require.NoError(t, tbl.SetRow(0, []value.Value{value.Int(2), value.Str("b")}))
	row, err = tbl.GetRow(0)
	require.NoError(t, err)
	require.True(t, value.Int(2).Equal(row[0]))

	err = tbl.SetRow(0, []value.Value{value.Int(1)})
	require.Error(t, err)
}

func TestGetSetColumn(t *testing.T) {
	tbl := buildTable(t, "T", []string{"A"}, [][]value.Value{{value.Int(1)}, {value.Int(2)}})

	col, err := tbl.GetColumn("A")
	require.NoError(t, err)
	require.Len(t, col, 2)

	require.NoError(t, tbl.SetColumn("A", []value.Value{value.Int(5), value.Int(6)}))
	col, err = tbl.GetColumn("A")
	require.NoError(t, err)
	require.True(t, value.Int(5).Equal(col[0]))

	require.Error(t, tbl.SetColumn("A", []value.Value{value.Int(1)}))
}

func TestInsertAppendDrop(t *testing.T) {
	tbl := buildTable(t, "T", []string{"A"}, [][]value.Value{{value.Int(1)}, {value.Int(3)}})

	require.NoError(t, tbl.Insert(1, []value.Value{value.Int(2)}))
	col, err := tbl.GetColumn("A")
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, []int32{col[0].Int32(), col[1].Int32(), col[2].Int32()})

	require.NoError(t, tbl.DropRow(0))
	col, err = tbl.GetColumn("A")
	require.NoError(t, err)
	require.Len(t, col, 2)

	require.NoError(t, tbl.DropColumn("A"))
	_, cols := tbl.Shape()
	require.Equal(t, 0, cols)
}

func TestHeadTail(t *testing.T) {
	tbl := buildTable(t, "T", []string{"A"}, [][]value.Value{
		{value.Int(1)}, {value.Int(2)}, {value.Int(3)},
	})

	h := tbl.Head(2)
	rows, _ := h.Shape()
	require.Equal(t, 2, rows)
	v, _ := h.Get(0, "A")
	require.True(t, value.Int(1).Equal(v))

	tl := tbl.Tail(2)
	v, _ = tl.Get(0, "A")
	require.True(t, value.Int(2).Equal(v))

	full := tbl.Head(100)
	rows, _ = full.Shape()
	require.Equal(t, 3, rows)
}

func TestCloneIsIndependent(t *testing.T) {
	tbl := buildTable(t, "T", []string{"A"}, [][]value.Value{{value.Int(1)}})
	clone := tbl.Clone()

	require.NoError(t, clone.Set(0, "A", value.Int(99)))
	orig, _ := tbl.Get(0, "A")
	require.True(t, value.Int(1).Equal(orig))
}

func TestCompactDropsUnusedSymbols(t *testing.T) {
	tbl := buildTable(t, "T", []string{"A"}, [][]value.Value{
		{value.Str("x")}, {value.Str("y")}, {value.Str("z")},
	})

	filtered, err := tbl.FilterBy("A", func(v value.Value) bool { return v.Display() == "y" })
	require.NoError(t, err)
	filtered.Compact()

	col, err := filtered.Column("A")
	require.NoError(t, err)
	require.Len(t, col.Symbols(), 1)
}
