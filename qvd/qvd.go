// Package qvd is the public surface of the library: it owns the
// Source/Sink stream boundary (§1 "external collaborators"), ties the
// header, symbol, and index codecs together into ReadTable/WriteTable,
// and exposes ReadChunks for reading a file as a sequence of row chunks
// (§4.6). ReadChunks loads the whole file into memory once when it is
// called, so it does not reduce peak memory use compared to ReadTable.
//
// # Basic Usage
//
//	f, err := os.Open("data.qvd")
//	...
//	tbl, err := qvd.ReadTable(f)
//	...
//	out, err := os.Create("copy.qvd")
//	...
//	err = qvd.WriteTable(out, tbl)
package qvd

import (
	"fmt"
	"io"

	"github.com/qvdfile/qvd/endian"
	"github.com/qvdfile/qvd/errs"
	"github.com/qvdfile/qvd/header"
	"github.com/qvdfile/qvd/index"
	"github.com/qvdfile/qvd/symbol"
	"github.com/qvdfile/qvd/table"
	"github.com/qvdfile/qvd/value"
)

// Source is the external byte source a table is read from. ReadTable
// only requires Read; ReadChunks additionally requires the source to
// implement io.Seeker, detected with a type assertion, since chunked
// reads jump directly to each chunk's byte range (§4.6).
type Source interface {
	io.Reader
}

// Sink is the external byte sink a table is written to.
type Sink interface {
	io.Writer
}

// ReadTable decodes a complete QVD file from source: header, then the
// column-major symbol table, then the row-major index table (§5
// "within a single read, symbol decoding finishes before index
// decoding").
func ReadTable(source Source) (*table.Table, error) {
	data, err := io.ReadAll(source)
	if err != nil {
		return nil, err
	}

	h, headerLen, symbols, err := decodeHeaderAndSymbols(data)
	if err != nil {
		return nil, err
	}

	indexStart := headerLen + h.Length
	indexEnd := indexStart + h.RecordByteSize*h.NoOfRecords
	if indexEnd > len(data) {
		return nil, fmt.Errorf("%w: index table truncated", errs.ErrRecordSizeMismatch)
	}

	layouts, symbolCounts := fieldLayouts(h, symbols)
	rows, err := index.DecodeTable(data[indexStart:indexEnd], layouts, h.RecordByteSize, h.NoOfRecords, symbolCounts)
	if err != nil {
		return nil, err
	}

	return rowsToTable(h, symbols, rows)
}

func decodeHeaderAndSymbols(data []byte) (*header.TableHeader, int, [][]value.Value, error) {
	h, headerLen, err := header.Decode(data)
	if err != nil {
		return nil, 0, nil, err
	}

	engine := endian.GetLittleEndianEngine()
	symbols := make([][]value.Value, len(h.Fields))
	for i, f := range h.Fields {
		start := headerLen + f.Offset
		end := start + f.Length
		if end > len(data) {
			return nil, 0, nil, fmt.Errorf("%w: column %q symbol section truncated", errs.ErrSymbolSectionOverflow, f.FieldName)
		}

		symbols[i], err = symbol.Decode(data[start:end], engine)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("column %q: %w", f.FieldName, err)
		}
	}

	return h, headerLen, symbols, nil
}

func fieldLayouts(h *header.TableHeader, symbols [][]value.Value) ([]index.Layout, []int) {
	layouts := make([]index.Layout, len(h.Fields))
	counts := make([]int, len(h.Fields))
	for i, f := range h.Fields {
		layouts[i] = index.Layout{BitOffset: f.BitOffset, BitWidth: f.BitWidth, Bias: f.Bias}
		counts[i] = len(symbols[i])
	}

	return layouts, counts
}

// rowsToTable assembles a self-contained table.Table from decoded
// symbols and row codes: each cell is resolved from the symbol list
// and re-interned into the table's own column dictionary, so the
// result owns its storage independently of the decoded byte slices.
func rowsToTable(h *header.TableHeader, symbols [][]value.Value, rows [][]int) (*table.Table, error) {
	names := make([]string, len(h.Fields))
	for i, f := range h.Fields {
		names[i] = f.FieldName
	}

	tbl, err := table.New(h.TableName, names...)
	if err != nil {
		return nil, err
	}

	for i, f := range h.Fields {
		col, err := tbl.Column(f.FieldName)
		if err != nil {
			return nil, err
		}
		col.Format = f.NumberFormat
		col.Tags = f.Tags
	}

	row := make([]value.Value, len(h.Fields))
	for _, codes := range rows {
		for ci, code := range codes {
			if code == index.NullCode {
				row[ci] = value.Null()
			} else {
				row[ci] = symbols[ci][code]
			}
		}
		if err := tbl.Append(row); err != nil {
			return nil, err
		}
	}

	return tbl, nil
}
