package header

import (
	"testing"

	"github.com/qvdfile/qvd/errs"
	"github.com/qvdfile/qvd/format"
	"github.com/stretchr/testify/require"
)

func sampleHeader() *TableHeader {
	return &TableHeader{
		TableName:      "Table",
		RecordByteSize: 1,
		NoOfRecords:    3,
		Length:         10,
		Fields: []FieldHeader{
			{
				FieldName:    "A",
				BitOffset:    0,
				BitWidth:     2,
				Bias:         0,
				NumberFormat: format.NumberFormat{Kind: format.KindInteger},
				Tags:         []format.Tag{format.TagNumeric},
				Offset:       0,
				Length:       10,
			},
		},
	}
}

// encodeConsistent encodes h with Offset equal to the encoded header's
// own length, re-encoding until the two agree (Offset's digit count can
// change the length).
func encodeConsistent(t *testing.T, h *TableHeader) []byte {
	t.Helper()
	for {
		data, err := Encode(h)
		require.NoError(t, err)
		if len(data) == h.Offset {
			return data
		}
		h.Offset = len(data)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	h := sampleHeader()
	data, err := Encode(h)
	require.NoError(t, err)
	require.Contains(t, string(data), "<?xml version=\"1.0\"")
	require.True(t, len(data) >= 3)
	require.Equal(t, []byte{'\r', '\n', 0}, data[len(data)-3:])

	data = encodeConsistent(t, h) // Offset must equal header length.

	got, headerLen, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, len(data), headerLen)
	require.Equal(t, h.TableName, got.TableName)
	require.Equal(t, h.NoOfRecords, got.NoOfRecords)
	require.Len(t, got.Fields, 1)
	require.Equal(t, "A", got.Fields[0].FieldName)
	require.Equal(t, format.KindInteger, got.Fields[0].NumberFormat.Kind)
	require.Equal(t, []format.Tag{format.TagNumeric}, got.Fields[0].Tags)
}

func TestDecodeMissingSentinel(t *testing.T) {
	_, _, err := Decode([]byte("<QvdTableHeader></QvdTableHeader>"))
	require.ErrorIs(t, err, errs.ErrMissingSentinel)
}

func TestDecodeInvalidXML(t *testing.T) {
	data := append([]byte("<QvdTableHeader"), sentinel...)
	_, _, err := Decode(data)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderXML)
}

func TestDecodeTrailingDataIsSymbolTable(t *testing.T) {
	h := sampleHeader()
	data := encodeConsistent(t, h)

	data = append(data, []byte{1, 2, 3}...)
	got, headerLen, err := Decode(data)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, []byte{1, 2, 3}, data[headerLen:])
}

func TestDecodeTolerateBOM(t *testing.T) {
	h := sampleHeader()
	data := encodeConsistent(t, h)

	withBOM := append(bom, data...)
	got, headerLen, err := Decode(withBOM)
	require.NoError(t, err)
	require.Equal(t, h.TableName, got.TableName)
	require.Equal(t, len(withBOM), headerLen)
}

func TestDecodeInconsistentOffset(t *testing.T) {
	h := sampleHeader()
	h.Offset = 99999
	data, err := Encode(h)
	require.NoError(t, err)

	_, _, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrInconsistentSize)
}
