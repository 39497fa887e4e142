package header

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/qvdfile/qvd/bitpack"
	"github.com/qvdfile/qvd/errs"
)

// sentinel terminates the header: CR LF NUL. The byte immediately
// after it is the first byte of the symbol table (§4.2, §6).
var sentinel = []byte{'\r', '\n', 0}

var bom = []byte{0xEF, 0xBB, 0xBF}

const prolog = "<?xml version=\"1.0\" encoding=\"utf-8\"?>\r\n"

// Encode serializes h into the deterministic canonical XML form
// (fixed element ordering, two-space indentation) QlikView's reader
// accepts, followed by the sentinel.
func Encode(h *TableHeader) ([]byte, error) {
	x := toXML(h)

	body, err := xml.MarshalIndent(struct {
		XMLName xml.Name `xml:"QvdTableHeader"`
		xmlHeader
	}{xmlHeader: x}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("qvd: marshal header: %w", err)
	}

	out := make([]byte, 0, len(prolog)+len(body)+len(sentinel))
	out = append(out, prolog...)
	out = append(out, body...)
	out = append(out, sentinel...)

	return out, nil
}

// Decode scans data for the \r\n\0 sentinel, parses the XML that
// precedes it, and validates required elements and offset
// consistency. It returns the parsed header and the number of bytes
// the header occupies on disk (including the sentinel) — the caller
// seeks to this offset to find the symbol table's first byte.
func Decode(data []byte) (*TableHeader, int, error) {
	body := data
	if bytes.HasPrefix(body, bom) {
		body = body[len(bom):]
	}

	idx := bytes.Index(body, sentinel)
	if idx < 0 {
		return nil, 0, errs.ErrMissingSentinel
	}

	headerLen := (len(data) - len(body)) + idx + len(sentinel)

	var x struct {
		XMLName xml.Name `xml:"QvdTableHeader"`
		xmlHeader
	}
	if err := xml.Unmarshal(body[:idx], &x); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", errs.ErrInvalidHeaderXML, err)
	}

	h := fromXML(x.xmlHeader)
	if err := validate(h, headerLen, len(data)-len(body)); err != nil {
		return nil, 0, err
	}

	return h, headerLen, nil
}

// validate accepts an Offset equal to the header length either with or
// without a leading BOM (bomLen bytes) counted.
func validate(h *TableHeader, headerLen, bomLen int) error {
	if h.TableName == "" {
		return fmt.Errorf("%w: TableName", errs.ErrMissingElement)
	}
	if h.Offset != headerLen && h.Offset != headerLen-bomLen {
		return fmt.Errorf("%w: header Offset=%d does not match actual header length %d",
			errs.ErrInconsistentSize, h.Offset, headerLen)
	}
	if h.Length < 0 || h.RecordByteSize < 0 || h.NoOfRecords < 0 {
		return fmt.Errorf("%w: negative size field", errs.ErrInconsistentSize)
	}
	for _, f := range h.Fields {
		if f.FieldName == "" {
			return fmt.Errorf("%w: FieldName", errs.ErrMissingElement)
		}
		if f.BitWidth < 0 || f.BitWidth > bitpack.MaxWidth {
			return fmt.Errorf("%w: field %q has invalid BitWidth %d", errs.ErrInconsistentSize, f.FieldName, f.BitWidth)
		}
	}

	return nil
}
