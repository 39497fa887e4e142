package table

import (
	"testing"

	"github.com/qvdfile/qvd/value"
	"github.com/stretchr/testify/require"
)

func TestConcatUnionsSymbolsAndRemapsCodes(t *testing.T) {
	a := buildTable(t, "A", []string{"X"}, intCol(value.Str("p"), value.Str("q")))
	b := buildTable(t, "B", []string{"X"}, intCol(value.Str("q"), value.Str("r")))

	got, err := a.Concat(b, false)
	require.NoError(t, err)

	rows, _ := got.Shape()
	require.Equal(t, 4, rows)

	col, err := got.GetColumn("X")
	require.NoError(t, err)
	require.Equal(t, []string{"p", "q", "q", "r"}, []string{
		col[0].Display(), col[1].Display(), col[2].Display(), col[3].Display(),
	})

	// a itself must be untouched: Concat with inplace=false returns a copy.
	aRows, _ := a.Shape()
	require.Equal(t, 2, aRows)
}

func TestConcatInplaceMutatesReceiver(t *testing.T) {
	a := buildTable(t, "A", []string{"X"}, intCol(value.Int(1)))
	b := buildTable(t, "B", []string{"X"}, intCol(value.Int(2)))

	got, err := a.Concat(b, true)
	require.NoError(t, err)
	require.Same(t, a, got)

	rows, _ := a.Shape()
	require.Equal(t, 2, rows)
}

func TestConcatShapeMismatch(t *testing.T) {
	a := buildTable(t, "A", []string{"X"}, intCol(value.Int(1)))
	b := buildTable(t, "B", []string{"X", "Y"}, [][]value.Value{{value.Int(1), value.Int(2)}})

	_, err := a.Concat(b, false)
	require.Error(t, err)
}

func TestConcatAssociativity(t *testing.T) {
	// §8 property #7.
	a := buildTable(t, "A", []string{"X"}, intCol(value.Int(1)))
	b := buildTable(t, "B", []string{"X"}, intCol(value.Int(2)))
	c := buildTable(t, "C", []string{"X"}, intCol(value.Int(3)))

	left, err := a.Concat(b, false)
	require.NoError(t, err)
	left, err = left.Concat(c, false)
	require.NoError(t, err)

	bc, err := b.Concat(c, false)
	require.NoError(t, err)
	right, err := a.Concat(bc, false)
	require.NoError(t, err)

	lCol, _ := left.GetColumn("X")
	rCol, _ := right.GetColumn("X")
	require.Len(t, lCol, 3)
	require.Len(t, rCol, 3)
	for i := range lCol {
		require.True(t, lCol[i].Equal(rCol[i]))
	}
}
