package qvd

import (
	"bytes"
	"testing"

	"github.com/qvdfile/qvd/errs"
	"github.com/qvdfile/qvd/table"
	"github.com/qvdfile/qvd/value"
	"github.com/stretchr/testify/require"
)

type nonSeekingReader struct {
	r *bytes.Reader
}

func (n *nonSeekingReader) Read(p []byte) (int, error) { return n.r.Read(p) }

func buildBigTable(t *testing.T, n int) *table.Table {
	t.Helper()
	tbl, err := table.New("Big", "A")
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, tbl.Append([]value.Value{value.Int(int32(i % 7))}))
	}

	return tbl
}

func TestChunkedReadEquivalence(t *testing.T) {
	// §8 property #10 and E5 (scaled down): chunk count and
	// concatenation equivalence.
	tbl := buildBigTable(t, 10)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, tbl))

	it, err := ReadChunks(bytes.NewReader(buf.Bytes()), 4)
	require.NoError(t, err)
	require.Equal(t, 3, it.Len()) // ceil(10/4)

	var gotRows []value.Value
	for {
		chunk, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		col, err := chunk.GetColumn("A")
		require.NoError(t, err)
		gotRows = append(gotRows, col...)
	}

	whole, err := ReadTable(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	wantRows, err := whole.GetColumn("A")
	require.NoError(t, err)

	require.Len(t, gotRows, len(wantRows))
	for i := range wantRows {
		require.True(t, wantRows[i].Equal(gotRows[i]), "row %d", i)
	}
}

func TestChunkedReadUnseekableSourceFailsFast(t *testing.T) {
	tbl := buildBigTable(t, 5)
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, tbl))

	src := &nonSeekingReader{r: bytes.NewReader(buf.Bytes())}
	_, err := ReadChunks(src, 2)
	require.ErrorIs(t, err, errs.ErrUnseekableStream)
}

func TestChunkedReadLastChunkSmaller(t *testing.T) {
	tbl := buildBigTable(t, 10)
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, tbl))

	it, err := ReadChunks(bytes.NewReader(buf.Bytes()), 3)
	require.NoError(t, err)
	require.Equal(t, 4, it.Len()) // ceil(10/3)

	var last *table.Table
	for {
		chunk, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		last = chunk
	}

	rows, _ := last.Shape()
	require.Equal(t, 1, rows) // 10 = 3+3+3+1
}

func TestChunkedReadInvalidChunkSize(t *testing.T) {
	tbl := buildBigTable(t, 3)
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, tbl))

	_, err := ReadChunks(bytes.NewReader(buf.Bytes()), 0)
	require.Error(t, err)
}
