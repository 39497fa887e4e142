package value

import (
	"time"

	"github.com/qvdfile/qvd/format"
)

// Native converts v back into a plain Go value suitable for
// to_mapping (§4.5): Null -> nil, Integer -> int32, Double -> float64,
// String -> string, duals -> their display string, since the dual's
// numeric component alone would discard the formatted reading a
// caller round-tripping through a mapping expects to see.
func (v Value) Native() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindInteger:
		return v.i
	case KindDouble:
		return v.f
	case KindString:
		return v.s
	case KindDualInteger, KindDualDouble:
		return v.s
	default:
		return nil
	}
}

// AsTime projects v into a time.Time using kind's semantics, when v
// carries a numeric component (Integer, Double, DualInteger,
// DualDouble). ok is false for String and Null, or for a kind that
// does not describe a time reading.
func (v Value) AsTime(kind format.Kind) (t time.Time, ok bool) {
	serial, hasCalc := v.Calc()
	if !hasCalc {
		return time.Time{}, false
	}

	switch kind {
	case format.KindDate, format.KindTimestamp:
		return format.TimeFromSerial(serial), true
	case format.KindTime:
		return format.Epoch.Add(timeDuration(serial)), true
	default:
		return time.Time{}, false
	}
}

func timeDuration(fraction float64) time.Duration {
	return time.Duration(fraction * float64(24*time.Hour))
}

// FormatAs renders v's display text according to kind and pattern,
// regenerating the dual's display component from its numeric component
// rather than returning the value's existing Display() text. This is
// what a WriteOption formatter (§6) applies on write.
func FormatAs(v Value, kind format.Kind, pattern string) string {
	calc, ok := v.Calc()
	if !ok {
		return v.Display()
	}

	switch kind {
	case format.KindDate:
		return format.FormatDate(calc, pattern)
	case format.KindTime:
		return format.FormatTime(calc, pattern)
	case format.KindTimestamp:
		return format.FormatTimestamp(calc, pattern)
	case format.KindInterval:
		return format.FormatInterval(calc, pattern)
	case format.KindMoney:
		return format.FormatMoney(calc, pattern)
	default:
		return v.Display()
	}
}

// WithDisplay returns a copy of a dual value v whose display text is
// replaced by text, preserving its numeric component and dual tag. Any
// non-dual value has no display component and is returned unchanged. Used
// to apply a WriteOption formatter without collapsing the dual tag
// (§9 "dual tag preservation").
func (v Value) WithDisplay(text string) Value {
	switch v.kind {
	case KindDualInteger:
		return DualInt(v.i, text)
	case KindDualDouble:
		return DualFloat(v.f, text)
	default:
		return v
	}
}
