// Package value implements the tagged value variant that is the unit
// of storage in a QVD symbol table and table cell: Integer, Double,
// String, DualInteger, DualDouble, and Null. See §4.1.
//
// Higher-level readings (date, time, timestamp, interval, money) are
// not separate Kinds here; they are projections computed by the
// format package from a Value's numeric and display components,
// driven by a column's declared format.Kind.
package value

import (
	"math"
	"strconv"

	"github.com/qvdfile/qvd/internal/hash"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindDouble
	KindString
	KindDualInteger
	KindDualDouble
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInteger:
		return "Integer"
	case KindDouble:
		return "Double"
	case KindString:
		return "String"
	case KindDualInteger:
		return "DualInteger"
	case KindDualDouble:
		return "DualDouble"
	default:
		return "Unknown"
	}
}

// Value is an immutable tagged variant. The zero Value is Null.
type Value struct {
	kind Kind
	i    int32
	f    float64
	s    string
}

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Int returns an Integer value.
func Int(i int32) Value { return Value{kind: KindInteger, i: i} }

// Double returns a Double value.
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }

// Str returns a String value.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// DualInt returns a DualInteger value: a numeric component plus its
// display text.
func DualInt(i int32, display string) Value {
	return Value{kind: KindDualInteger, i: i, s: display}
}

// DualFloat returns a DualDouble value: a numeric component plus its
// display text.
func DualFloat(f float64, display string) Value {
	return Value{kind: KindDualDouble, f: f, s: display}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int32 returns the numeric component of an Integer or DualInteger
// value. It returns 0 for any other kind.
func (v Value) Int32() int32 {
	if v.kind == KindInteger || v.kind == KindDualInteger {
		return v.i
	}

	return 0
}

// Float64 returns the numeric component of a Double or DualDouble
// value. It returns 0 for any other kind.
func (v Value) Float64() float64 {
	if v.kind == KindDouble || v.kind == KindDualDouble {
		return v.f
	}

	return 0
}

// RawString returns the string component of a String, DualInteger, or
// DualDouble value. It returns "" for any other kind.
func (v Value) RawString() string {
	switch v.kind {
	case KindString, KindDualInteger, KindDualDouble:
		return v.s
	default:
		return ""
	}
}

// Display returns the text rendering of v: the dual string component
// when present, or a canonical rendering of the numeric component,
// or the String payload itself (§3 "display value").
func (v Value) Display() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindInteger:
		return strconv.FormatInt(int64(v.i), 10)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindDualInteger, KindDualDouble:
		return v.s
	default:
		return ""
	}
}

// Calc returns the numeric scalar usable for comparison and filtering
// (§3 "calculation value"): the numeric component for numeric kinds.
// ok is false for String and Null, where sorting falls back to lexical
// display comparison.
func (v Value) Calc() (f float64, ok bool) {
	switch v.kind {
	case KindInteger, KindDualInteger:
		return float64(v.i), true
	case KindDouble, KindDualDouble:
		return v.f, true
	default:
		return 0, false
	}
}

// Equal reports whether v and other are the same variant with
// bitwise-identical components (§4.1): integers and doubles compare by
// bit pattern (so ±0 and NaN are distinguishable), strings by octet
// equality, duals by both components.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindInteger:
		return v.i == other.i
	case KindDouble:
		return math.Float64bits(v.f) == math.Float64bits(other.f)
	case KindString:
		return v.s == other.s
	case KindDualInteger:
		return v.i == other.i && v.s == other.s
	case KindDualDouble:
		return math.Float64bits(v.f) == math.Float64bits(other.f) && v.s == other.s
	default:
		return false
	}
}

// Hash returns a hash consistent with Equal: equal values always hash
// equal. It is used to bucket symbol-dictionary lookups; see
// internal/collision for the exact-equality fallback that makes this
// safe under hash collisions.
func (v Value) Hash() uint64 {
	d := hash.NewDigest()
	d.WriteByte(byte(v.kind))

	switch v.kind {
	case KindInteger:
		writeUint32(d, uint32(v.i)) //nolint:gosec
	case KindDouble:
		writeUint64(d, math.Float64bits(v.f))
	case KindString:
		d.Write([]byte(v.s))
	case KindDualInteger:
		writeUint32(d, uint32(v.i)) //nolint:gosec
		d.Write([]byte(v.s))
	case KindDualDouble:
		writeUint64(d, math.Float64bits(v.f))
		d.Write([]byte(v.s))
	}

	return d.Sum64()
}

func writeUint32(d interface{ Write([]byte) }, u uint32) {
	d.Write([]byte{byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24)})
}

func writeUint64(d interface{ Write([]byte) }, u uint64) {
	d.Write([]byte{
		byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24),
		byte(u >> 32), byte(u >> 40), byte(u >> 48), byte(u >> 56),
	})
}

// Key is a comparable projection of Value, used as the key type for
// the generic hash-collision tracker backing a column's symbol
// dictionary (internal/collision.Tracker[Key]).
type Key struct {
	kind Kind
	i    int32
	f    uint64
	s    string
}

// AsKey returns the comparable key for v.
func (v Value) AsKey() Key {
	switch v.kind {
	case KindDouble, KindDualDouble:
		return Key{kind: v.kind, f: math.Float64bits(v.f), s: v.s}
	default:
		return Key{kind: v.kind, i: v.i, s: v.s}
	}
}
