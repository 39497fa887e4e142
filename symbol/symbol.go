// Package symbol implements the column-major symbol table codec
// (§4.3): the per-column dictionary of distinct values, laid out as a
// sequence of type-tagged records.
package symbol

import (
	"math"

	"github.com/qvdfile/qvd/endian"
	"github.com/qvdfile/qvd/errs"
	"github.com/qvdfile/qvd/internal/pool"
	"github.com/qvdfile/qvd/value"
)

// Tag identifies a symbol record's on-disk shape.
type Tag byte

const (
	TagInt        Tag = 0x01 // 4 bytes LE signed int
	TagDouble     Tag = 0x02 // 8 bytes LE IEEE754
	TagString     Tag = 0x04 // NUL-terminated UTF-8 bytes
	TagDualInt    Tag = 0x05 // 4 bytes LE int, then NUL-terminated string
	TagDualDouble Tag = 0x06 // 8 bytes LE IEEE754, then NUL-terminated string
)

// Decode reads exactly data (a column's Length-byte slice from
// Offset, per §4.3) and returns the ordered list of distinct symbols
// it holds. The symbol count is determined by exhausting data; any
// trailing partial record is a decode error.
func Decode(data []byte, engine endian.EndianEngine) ([]value.Value, error) {
	var out []value.Value

	pos := 0
	for pos < len(data) {
		tag := Tag(data[pos])
		pos++

		switch tag {
		case TagInt:
			v, n, err := readInt(data[pos:], engine)
			if err != nil {
				return nil, err
			}
			out = append(out, value.Int(v))
			pos += n

		case TagDouble:
			v, n, err := readDouble(data[pos:], engine)
			if err != nil {
				return nil, err
			}
			out = append(out, value.Double(v))
			pos += n

		case TagString:
			s, n, err := readCString(data[pos:])
			if err != nil {
				return nil, err
			}
			out = append(out, value.Str(s))
			pos += n

		case TagDualInt:
			i, n, err := readInt(data[pos:], engine)
			if err != nil {
				return nil, err
			}
			pos += n
			s, n, err := readCString(data[pos:])
			if err != nil {
				return nil, err
			}
			out = append(out, value.DualInt(i, s))
			pos += n

		case TagDualDouble:
			f, n, err := readDouble(data[pos:], engine)
			if err != nil {
				return nil, err
			}
			pos += n
			s, n, err := readCString(data[pos:])
			if err != nil {
				return nil, err
			}
			out = append(out, value.DualFloat(f, s))
			pos += n

		default:
			return nil, errs.ErrUnknownSymbolTag
		}
	}

	return out, nil
}

func readInt(data []byte, engine endian.EndianEngine) (int32, int, error) {
	if len(data) < 4 {
		return 0, 0, errs.ErrTruncatedSymbol
	}

	return int32(engine.Uint32(data[:4])), 4, nil //nolint:gosec
}

func readDouble(data []byte, engine endian.EndianEngine) (float64, int, error) {
	if len(data) < 8 {
		return 0, 0, errs.ErrTruncatedSymbol
	}
	bits := engine.Uint64(data[:8])

	return math.Float64frombits(bits), 8, nil
}

func readCString(data []byte) (string, int, error) {
	for i, b := range data {
		if b == 0 {
			return string(data[:i]), i + 1, nil
		}
	}

	return "", 0, errs.ErrUnterminatedString
}

// Encode serializes values in on-disk order, selecting the tightest
// tag for each: Integer -> 0x01, Double -> 0x02, plain String -> 0x04.
// Dual variants always keep their dual tag (§4.3 "dual tag
// preservation", §9) even though the string component could in
// principle be re-derived from a format pattern.
func Encode(values []value.Value, engine endian.EndianEngine) ([]byte, error) {
	buf := pool.GetSymbolBuffer()
	defer pool.PutSymbolBuffer(buf)

	for _, v := range values {
		switch v.Kind() {
		case value.KindInteger:
			buf.MustWrite([]byte{byte(TagInt)})
			writeInt(buf, v.Int32(), engine)
		case value.KindDouble:
			buf.MustWrite([]byte{byte(TagDouble)})
			writeDouble(buf, v.Float64(), engine)
		case value.KindString:
			buf.MustWrite([]byte{byte(TagString)})
			writeCString(buf, v.RawString())
		case value.KindDualInteger:
			buf.MustWrite([]byte{byte(TagDualInt)})
			writeInt(buf, v.Int32(), engine)
			writeCString(buf, v.RawString())
		case value.KindDualDouble:
			buf.MustWrite([]byte{byte(TagDualDouble)})
			writeDouble(buf, v.Float64(), engine)
			writeCString(buf, v.RawString())
		default:
			return nil, errs.ErrUnsupportedVariant
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func writeInt(buf *pool.ByteBuffer, v int32, engine endian.EndianEngine) {
	var tmp [4]byte
	engine.PutUint32(tmp[:], uint32(v)) //nolint:gosec
	buf.MustWrite(tmp[:])
}

func writeDouble(buf *pool.ByteBuffer, v float64, engine endian.EndianEngine) {
	var tmp [8]byte
	engine.PutUint64(tmp[:], math.Float64bits(v))
	buf.MustWrite(tmp[:])
}

func writeCString(buf *pool.ByteBuffer, s string) {
	buf.MustWrite([]byte(s))
	buf.MustWrite([]byte{0})
}
