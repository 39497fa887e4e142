package qvd

import (
	"fmt"

	"github.com/qvdfile/qvd/endian"
	"github.com/qvdfile/qvd/format"
	"github.com/qvdfile/qvd/header"
	"github.com/qvdfile/qvd/index"
	"github.com/qvdfile/qvd/internal/options"
	"github.com/qvdfile/qvd/symbol"
	"github.com/qvdfile/qvd/table"
	"github.com/qvdfile/qvd/value"
)

// WriteConfig holds the resolved state of a WriteTable call (§6
// "write options, enumerated").
type WriteConfig struct {
	tableName          string
	dateFormatter      string
	timeFormatter      string
	timestampFormatter string
	intervalFormatter  string
	moneyFormatter     string
}

// WriteOption configures WriteTable.
type WriteOption = options.Option[*WriteConfig]

// WithTableName overrides the header's TableName (default: the
// table's own Name(), or "Table" if that is empty).
func WithTableName(name string) WriteOption {
	return options.NoError(func(c *WriteConfig) { c.tableName = name })
}

// WithDateFormatter sets the display pattern regenerated for DATE
// columns on write; the numeric component is preserved (§6).
func WithDateFormatter(pattern string) WriteOption {
	return options.NoError(func(c *WriteConfig) { c.dateFormatter = pattern })
}

// WithTimeFormatter sets the display pattern regenerated for TIME columns.
func WithTimeFormatter(pattern string) WriteOption {
	return options.NoError(func(c *WriteConfig) { c.timeFormatter = pattern })
}

// WithTimestampFormatter sets the display pattern regenerated for TIMESTAMP columns.
func WithTimestampFormatter(pattern string) WriteOption {
	return options.NoError(func(c *WriteConfig) { c.timestampFormatter = pattern })
}

// WithIntervalFormatter sets the display pattern regenerated for INTERVAL columns.
func WithIntervalFormatter(pattern string) WriteOption {
	return options.NoError(func(c *WriteConfig) { c.intervalFormatter = pattern })
}

// WithMoneyFormatter sets the display pattern regenerated for MONEY columns.
func WithMoneyFormatter(pattern string) WriteOption {
	return options.NoError(func(c *WriteConfig) { c.moneyFormatter = pattern })
}

func (c *WriteConfig) formatterFor(kind format.Kind) (string, bool) {
	var pattern string
	switch kind {
	case format.KindDate:
		pattern = c.dateFormatter
	case format.KindTime:
		pattern = c.timeFormatter
	case format.KindTimestamp:
		pattern = c.timestampFormatter
	case format.KindInterval:
		pattern = c.intervalFormatter
	case format.KindMoney:
		pattern = c.moneyFormatter
	default:
		return "", false
	}

	return pattern, pattern != ""
}

// WriteTable encodes tbl to sink as a complete QVD file in the order
// header, symbol table, index table (§5); no partial writes are
// observable under the reader contract, so a write error leaves
// sink's state undefined and the caller should discard it (§7).
func WriteTable(sink Sink, tbl *table.Table, opts ...WriteOption) error {
	cfg := &WriteConfig{tableName: tbl.Name()}
	if cfg.tableName == "" {
		cfg.tableName = "Table"
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	engine := endian.GetLittleEndianEngine()
	columns := tbl.Columns()
	numRows, _ := tbl.Shape()

	specs := make([]index.ColumnSpec, len(columns))
	symbolBytes := make([][]byte, len(columns))

	for i, col := range columns {
		syms := col.Symbols()
		if pattern, has := cfg.formatterFor(col.Format.Kind); has {
			syms = reformatSymbols(syms, col.Format.Kind, pattern)
		}

		b, err := symbol.Encode(syms, engine)
		if err != nil {
			return fmt.Errorf("column %q: %w", col.Name, err)
		}
		symbolBytes[i] = b

		specs[i] = index.ColumnSpec{SymbolCount: len(syms), HasNull: columnHasNull(col, numRows)}
	}

	layouts, recordByteSize := index.ComputeLayouts(specs)

	rows := make([][]int, numRows)
	for r := 0; r < numRows; r++ {
		row := make([]int, len(columns))
		for ci, col := range columns {
			row[ci] = col.Code(r)
		}
		rows[r] = row
	}

	indexBytes, err := index.EncodeTable(rows, layouts, recordByteSize)
	if err != nil {
		return err
	}

	h := buildHeader(cfg.tableName, columns, layouts, symbolBytes, recordByteSize, numRows)

	headerBytes, err := encodeHeaderFixpoint(h)
	if err != nil {
		return err
	}

	if _, err := sink.Write(headerBytes); err != nil {
		return err
	}
	for _, b := range symbolBytes {
		if _, err := sink.Write(b); err != nil {
			return err
		}
	}
	if _, err := sink.Write(indexBytes); err != nil {
		return err
	}

	return nil
}

func buildHeader(tableName string, columns []*table.Column, layouts []index.Layout, symbolBytes [][]byte, recordByteSize, numRows int) *header.TableHeader {
	h := &header.TableHeader{
		TableName:      tableName,
		RecordByteSize: recordByteSize,
		NoOfRecords:    numRows,
		Fields:         make([]header.FieldHeader, len(columns)),
	}

	symbolOffset := 0
	for i, col := range columns {
		h.Fields[i] = header.FieldHeader{
			FieldName:    col.Name,
			BitOffset:    layouts[i].BitOffset,
			BitWidth:     layouts[i].BitWidth,
			Bias:         layouts[i].Bias,
			NumberFormat: col.Format,
			Tags:         col.Tags,
			Offset:       symbolOffset,
			Length:       len(symbolBytes[i]),
		}
		symbolOffset += len(symbolBytes[i])
	}
	h.Length = symbolOffset

	return h
}

// encodeHeaderFixpoint resolves the header's self-referential Offset
// field: Offset must equal the encoded header's own length, but that
// length can itself change by a digit when Offset grows (e.g. 999 ->
// 1000). A few iterations always converges since header length only
// grows, never shrinks, as Offset's decimal width grows.
func encodeHeaderFixpoint(h *header.TableHeader) ([]byte, error) {
	var encoded []byte
	for i := 0; i < 5; i++ {
		b, err := header.Encode(h)
		if err != nil {
			return nil, err
		}
		if len(b) == h.Offset {
			return b, nil
		}
		h.Offset = len(b)
		encoded = b
	}

	return encoded, nil
}

func columnHasNull(col *table.Column, numRows int) bool {
	for r := 0; r < numRows; r++ {
		if col.Code(r) == index.NullCode {
			return true
		}
	}

	return false
}

func reformatSymbols(syms []value.Value, kind format.Kind, pattern string) []value.Value {
	out := make([]value.Value, len(syms))
	for i, s := range syms {
		out[i] = s.WithDisplay(value.FormatAs(s, kind, pattern))
	}

	return out
}
