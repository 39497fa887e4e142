package table

import (
	"testing"

	"github.com/qvdfile/qvd/value"
	"github.com/stretchr/testify/require"
)

func TestToMappingFromMappingRoundTrip(t *testing.T) {
	orig := buildTable(t, "T", []string{"A", "B"}, [][]value.Value{
		{value.Int(1), value.Str("x")},
		{value.Int(2), value.Str("y")},
	})

	m := orig.ToMapping()
	require.Equal(t, []any{int32(1), int32(2)}, m["A"])
	require.Equal(t, []any{"x", "y"}, m["B"])

	got, err := FromMapping("T", []string{"A", "B"}, m)
	require.NoError(t, err)

	rows, cols := got.Shape()
	require.Equal(t, 2, rows)
	require.Equal(t, 2, cols)

	a, err := got.GetColumn("A")
	require.NoError(t, err)
	require.Equal(t, int32(1), a[0].Int32())
}

func TestFromMappingShapeMismatch(t *testing.T) {
	m := map[string][]any{
		"A": {1, 2},
		"B": {1},
	}
	_, err := FromMapping("T", []string{"A", "B"}, m)
	require.Error(t, err)
}

func TestFromMappingUnknownColumn(t *testing.T) {
	m := map[string][]any{"A": {1}}
	_, err := FromMapping("T", []string{"A", "B"}, m)
	require.Error(t, err)
}
