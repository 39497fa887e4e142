// Package index implements the row-major bit-packed index table codec
// (§4.4): per-column layout computation (bit width, bias) and the
// fixed-width record packer/extractor built on bitpack.
package index

import (
	"fmt"

	"github.com/qvdfile/qvd/bitpack"
	"github.com/qvdfile/qvd/errs"
	"github.com/qvdfile/qvd/internal/pool"
)

// NullCode is the in-memory sentinel for a NULL cell. Real symbol
// indices are always >= 0.
const NullCode = -1

// ColumnSpec summarizes what the write-side layout computation needs
// to know about a column: how many distinct symbols it has, and
// whether any row in it is NULL.
type ColumnSpec struct {
	SymbolCount int
	HasNull     bool
}

// Layout is a column's position within an index record.
type Layout struct {
	BitOffset int
	BitWidth  int
	Bias      int
}

// ComputeLayouts lays out specs in order with no intra-record padding
// and returns each column's Layout plus the record's total byte size
// (§4.4 "write-side layout computation").
func ComputeLayouts(specs []ColumnSpec) ([]Layout, int) {
	layouts := make([]Layout, len(specs))
	bitOffset := 0

	for i, spec := range specs {
		total := spec.SymbolCount
		if spec.HasNull {
			total++
		}

		var width, bias int
		if total <= 1 {
			width = 0
			bias = 0
			if spec.HasNull {
				bias = -1 // only NULLs: raw 0 decodes to code -1
			}
		} else {
			width = bitpack.BitWidth(total)
			if spec.HasNull {
				bias = -1
			}
		}

		layouts[i] = Layout{BitOffset: bitOffset, BitWidth: width, Bias: bias}
		bitOffset += width
	}

	recordByteSize := (bitOffset + 7) / 8

	return layouts, recordByteSize
}

// EncodeRow packs one row's per-column codes (a non-negative symbol
// index, or NullCode) into record, which must already be zeroed and
// sized to recordByteSize.
func EncodeRow(codes []int, layouts []Layout, record []byte) error {
	if len(codes) != len(layouts) {
		return fmt.Errorf("%w: %d codes for %d columns", errs.ErrShapeMismatch, len(codes), len(layouts))
	}

	for i, layout := range layouts {
		var raw uint64
		if codes[i] >= 0 {
			raw = uint64(codes[i] - layout.Bias)
		}
		if err := bitpack.Pack(record, layout.BitOffset, layout.BitWidth, raw); err != nil {
			return err
		}
	}

	return nil
}

// DecodeRow extracts one row's per-column codes from record. symbolCounts[i]
// bounds column i's valid code range; a decoded code >= symbolCounts[i]
// is a malformed-file error (§4.4 rule (b)).
func DecodeRow(record []byte, layouts []Layout, symbolCounts []int, codes []int) error {
	for i, layout := range layouts {
		raw, err := bitpack.Extract(record, layout.BitOffset, layout.BitWidth)
		if err != nil {
			return err
		}

		code := int64(raw) + int64(layout.Bias)
		switch {
		case code < 0:
			codes[i] = NullCode
		case code >= int64(symbolCounts[i]):
			return fmt.Errorf("%w: column %d code %d >= %d symbols", errs.ErrCodeOutOfRange, i, code, symbolCounts[i])
		default:
			codes[i] = int(code)
		}
	}

	return nil
}

// EncodeTable packs every row of rows (rows[r][c] is column c's code
// for row r) into a contiguous index table, one recordByteSize-sized
// record per row, accumulated in a single growable buffer (§9) rather
// than per-record concatenation.
func EncodeTable(rows [][]int, layouts []Layout, recordByteSize int) ([]byte, error) {
	buf := pool.GetIndexBuffer()
	defer pool.PutIndexBuffer(buf)

	buf.Grow(len(rows) * recordByteSize)
	for _, row := range rows {
		start := buf.Len()
		buf.ExtendOrGrow(recordByteSize)
		if err := EncodeRow(row, layouts, buf.Slice(start, start+recordByteSize)); err != nil {
			return nil, err
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// DecodeTable unpacks a contiguous index table of numRecords fixed-size
// records into per-row code slices. len(data) must equal
// numRecords*recordByteSize exactly (§4.4 "record count × record size
// ≠ declared byte length" is a malformed-index-table error).
func DecodeTable(data []byte, layouts []Layout, recordByteSize, numRecords int, symbolCounts []int) ([][]int, error) {
	if len(data) != numRecords*recordByteSize {
		return nil, fmt.Errorf("%w: %d bytes for %d records of %d bytes",
			errs.ErrRecordSizeMismatch, len(data), numRecords, recordByteSize)
	}

	rows := make([][]int, numRecords)
	codes := make([]int, len(layouts)*numRecords)
	for r := 0; r < numRecords; r++ {
		rowCodes := codes[r*len(layouts) : (r+1)*len(layouts)]
		record := data[r*recordByteSize : (r+1)*recordByteSize]
		if err := DecodeRow(record, layouts, symbolCounts, rowCodes); err != nil {
			return nil, fmt.Errorf("record %d: %w", r, err)
		}
		rows[r] = rowCodes
	}

	return rows, nil
}
