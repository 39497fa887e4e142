package qvd

import (
	"fmt"
	"io"

	"github.com/qvdfile/qvd/errs"
	"github.com/qvdfile/qvd/header"
	"github.com/qvdfile/qvd/index"
	"github.com/qvdfile/qvd/table"
	"github.com/qvdfile/qvd/value"
)

// ChunkIterator produces a finite, ordered sequence of tables from a
// seekable source (§4.6): header and symbol tables are decoded once up
// front, and each call to Next seeks to and reads only that chunk's
// slice of the index table. To decode them, ReadChunks reads the entire
// source, index table included, into memory; that copy is not kept, and
// Next reads its chunk's bytes from the source again.
type ChunkIterator struct {
	source         io.Reader
	seeker         io.Seeker
	h              *header.TableHeader
	symbols        [][]value.Value
	layouts        []index.Layout
	symbolCounts   []int
	recordByteSize int
	indexStart     int64
	totalRows      int
	chunkSize      int
	numChunks      int
	next           int
}

// ReadChunks constructs a ChunkIterator over source with up to
// chunkSize rows per chunk. source must implement io.Seeker; a source
// that does not fails fast with errs.ErrUnseekableStream rather than
// at the first Next call (§4.6).
func ReadChunks(source Source, chunkSize int) (*ChunkIterator, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("qvd: chunk size must be positive, got %d", chunkSize)
	}

	seeker, ok := source.(io.Seeker)
	if !ok {
		return nil, errs.ErrUnseekableStream
	}

	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(source)
	if err != nil {
		return nil, err
	}

	h, headerLen, symbols, err := decodeHeaderAndSymbols(data)
	if err != nil {
		return nil, err
	}

	layouts, symbolCounts := fieldLayouts(h, symbols)
	indexStart := int64(headerLen + h.Length)

	numChunks := 0
	if h.NoOfRecords > 0 {
		numChunks = (h.NoOfRecords + chunkSize - 1) / chunkSize
	}

	it := &ChunkIterator{
		source:         source,
		seeker:         seeker,
		h:              h,
		symbols:        symbols,
		layouts:        layouts,
		symbolCounts:   symbolCounts,
		recordByteSize: h.RecordByteSize,
		indexStart:     indexStart,
		totalRows:      h.NoOfRecords,
		chunkSize:      chunkSize,
		numChunks:      numChunks,
	}

	return it, nil
}

// Len returns the total number of chunks, obtainable without
// advancing iteration (§4.6 "must be obtainable without advancing
// iteration").
func (it *ChunkIterator) Len() int { return it.numChunks }

// Next decodes and returns the next chunk. ok is false once all
// chunks have been consumed.
func (it *ChunkIterator) Next() (tbl *table.Table, ok bool, err error) {
	if it.next >= it.numChunks {
		return nil, false, nil
	}

	rowStart := it.next * it.chunkSize
	rowCount := it.chunkSize
	if rowStart+rowCount > it.totalRows {
		rowCount = it.totalRows - rowStart
	}

	byteOffset := it.indexStart + int64(rowStart*it.recordByteSize)
	if _, err := it.seeker.Seek(byteOffset, io.SeekStart); err != nil {
		return nil, false, err
	}

	buf := make([]byte, rowCount*it.recordByteSize)
	if _, err := io.ReadFull(it.source, buf); err != nil {
		return nil, false, err
	}

	rows, err := index.DecodeTable(buf, it.layouts, it.recordByteSize, rowCount, it.symbolCounts)
	if err != nil {
		return nil, false, err
	}

	chunk, err := rowsToTable(it.h, it.symbols, rows)
	if err != nil {
		return nil, false, err
	}

	it.next++

	return chunk, true, nil
}
