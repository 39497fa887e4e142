// Package format carries the declarative number-format metadata that
// accompanies a QVD column (its Kind and pattern string) and the
// formatting/epoch helpers used to project a column's raw numeric and
// dual values into the higher-level Date/Time/Timestamp/Interval/Money
// readings described by the column's metadata.
//
// None of these readings are separate storage kinds: on disk a date is
// still an Integer or DualDouble, exactly like any other numeric column.
// Kind only changes how the boundary (import/export, formatted write)
// interprets that numeric value.
package format

// Kind is the declarative label a field's NumberFormat carries, guiding
// interpretation and formatting of its values at the boundary.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDate
	KindTime
	KindTimestamp
	KindInterval
	KindInteger
	KindMoney
	KindReal
	KindAscii
)

// String renders the Kind using the vendor's own spelling, which is
// also what appears in the XML header's NumberFormat/Type element.
func (k Kind) String() string {
	switch k {
	case KindDate:
		return "DATE"
	case KindTime:
		return "TIME"
	case KindTimestamp:
		return "TIMESTAMP"
	case KindInterval:
		return "INTERVAL"
	case KindInteger:
		return "INTEGER"
	case KindMoney:
		return "MONEY"
	case KindReal:
		return "REAL"
	case KindAscii:
		return "ASCII"
	default:
		return "UNKNOWN"
	}
}

// ParseKind parses the XML NumberFormat/Type element's text into a Kind.
// Unrecognized or empty input yields KindUnknown, never an error: an
// unfamiliar tag should degrade to "treat as plain numeric/string", not
// fail the whole header parse.
func ParseKind(s string) Kind {
	switch s {
	case "DATE":
		return KindDate
	case "TIME":
		return KindTime
	case "TIMESTAMP":
		return KindTimestamp
	case "INTERVAL":
		return KindInterval
	case "INTEGER":
		return KindInteger
	case "MONEY":
		return KindMoney
	case "REAL":
		return KindReal
	case "ASCII":
		return KindAscii
	default:
		return KindUnknown
	}
}

// NumberFormat is the per-field descriptor carried in the XML header
// (§4.2) and used to drive boundary projections (§3).
type NumberFormat struct {
	Kind    Kind
	NDec    int
	UseThou bool
	Fmt     string
	Dec     string
	Thou    string
}

// Tag is a domain hint attached to a field, such as $numeric or $date.
type Tag string

const (
	TagNumeric   Tag = "$numeric"
	TagText      Tag = "$text"
	TagInteger   Tag = "$integer"
	TagDate      Tag = "$date"
	TagTime      Tag = "$time"
	TagTimestamp Tag = "$timestamp"
	TagInterval  Tag = "$interval"
	TagKey       Tag = "$key"
	TagAscii     Tag = "$ascii"
)
