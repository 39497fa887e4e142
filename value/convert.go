package value

import (
	"fmt"
	"math"
	"time"

	"github.com/qvdfile/qvd/format"
)

// From converts a foreign Go scalar to a Value per §4.1:
//
//   - nil -> Null
//   - any signed/unsigned integer that fits in int32 -> Integer
//   - a wider integer that does not fit in int32 -> Double (widened,
//     never silently truncated or rejected)
//   - float32/float64 -> Double
//   - string -> String
//   - bool -> DualInteger(0 or 1, "false"/"true")
//   - time.Time -> DualDouble(serial, formatted text) using the QVD
//     date epoch; callers that need TIME/TIMESTAMP semantics should use
//     FromTime, and INTERVAL semantics FromInterval, since a bare
//     time.Time is ambiguous between those readings
//   - anything else -> its fmt.Sprint rendering, as a String
func From(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case bool:
		if x {
			return DualInt(1, "true")
		}

		return DualInt(0, "false")
	case int:
		return fromInt64(int64(x))
	case int8:
		return Int(int32(x))
	case int16:
		return Int(int32(x))
	case int32:
		return Int(x)
	case int64:
		return fromInt64(x)
	case uint:
		return fromUint64(uint64(x))
	case uint8:
		return Int(int32(x))
	case uint16:
		return Int(int32(x))
	case uint32:
		return fromUint64(uint64(x))
	case uint64:
		return fromUint64(x)
	case float32:
		return Double(float64(x))
	case float64:
		return Double(x)
	case string:
		return Str(x)
	case time.Time:
		serial := format.SerialFromTime(x)

		return DualFloat(serial, format.FormatDate(serial, ""))
	default:
		return Str(fmt.Sprint(x))
	}
}

func fromInt64(x int64) Value {
	if x >= math.MinInt32 && x <= math.MaxInt32 {
		return Int(int32(x))
	}

	return Double(float64(x))
}

func fromUint64(x uint64) Value {
	if x <= math.MaxInt32 {
		return Int(int32(x)) //nolint:gosec
	}

	return Double(float64(x))
}

// FromTime converts t into a dual value whose display text is rendered
// by kind's default formatting, for the DATE/TIME/TIMESTAMP readings
// named in §4.1; any other kind, INTERVAL included, gets the DATE
// projection (intervals are built from a day count by FromInterval).
// pattern overrides the default rendering (empty uses the format
// package's default pattern for kind).
func FromTime(t time.Time, kind format.Kind, pattern string) Value {
	switch kind {
	case format.KindTime:
		frac := format.FractionFromDuration(time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second)

		return DualFloat(frac, format.FormatTime(frac, pattern))
	case format.KindTimestamp:
		serial := format.SerialFromTime(t)

		return DualFloat(serial, format.FormatTimestamp(serial, pattern))
	default: // KindDate and any other reading defaults to the date projection
		serial := format.SerialFromTime(t)

		return DualFloat(serial, format.FormatDate(serial, pattern))
	}
}

// FromInterval converts a duration expressed in days into a dual value
// for the INTERVAL reading named in §4.1.
func FromInterval(days float64, pattern string) Value {
	return DualFloat(days, format.FormatInterval(days, pattern))
}

// FromMoney converts a decimal amount into a dual value for the MONEY
// reading named in §4.1. QVD has no distinct decimal storage type; the
// numeric component is the float64 amount and the display text is
// rendered with pattern.
func FromMoney(amount float64, pattern string) Value {
	return DualFloat(amount, format.FormatMoney(amount, pattern))
}
