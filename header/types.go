// Package header implements the XML descriptor block at the start of
// a QVD file (§4.2): table metadata, per-field bit layout, per-field
// symbol-section layout, number format, and tags. The header ends with
// the sentinel byte sequence \r\n\0; the byte immediately after it is
// the first byte of the symbol table.
package header

import "github.com/qvdfile/qvd/format"

// TableHeader is the root descriptor.
type TableHeader struct {
	TableName      string
	RecordByteSize int // bytes per row of the index table
	NoOfRecords    int
	Offset         int // symbol-table start, equal to the header's encoded length
	Length         int // symbol-table byte length
	Fields         []FieldHeader
}

// FieldHeader describes one column's layout within both the index
// record (BitOffset/BitWidth/Bias) and the symbol table
// (Offset/Length), plus its declarative metadata (NumberFormat, Tags).
type FieldHeader struct {
	FieldName string

	// BitOffset/BitWidth locate this field's code within an index
	// record (§4.4); LSB of byte 0 is bit 0.
	BitOffset int
	BitWidth  int // 0 when the column has one symbol and no NULLs, or only NULLs

	// Bias is added to the bit-extracted unsigned code to produce the
	// symbol index (§4.4); a post-bias code < 0 denotes NULL.
	Bias int

	NumberFormat format.NumberFormat
	Tags         []format.Tag

	// Offset/Length locate this column's symbol records within the
	// symbol table, in bytes from the symbol table's start (§4.3).
	Offset int
	Length int
}

// FieldByName returns the field descriptor named name, or false if no
// such field exists.
func (h *TableHeader) FieldByName(name string) (FieldHeader, bool) {
	for _, f := range h.Fields {
		if f.FieldName == name {
			return f, true
		}
	}

	return FieldHeader{}, false
}
