package format

import (
	"strconv"
	"strings"
)

// dateTimeTokens lists recognized pattern tokens, longest first so the
// tokenizer in renderDateTime never matches a prefix of a longer token
// (e.g. "YYYY" before "YY").
var dateTimeTokens = []string{
	"YYYY", "YY", "MM", "M", "DD", "D", "hh", "mm", "ss", "fff",
}

// renderDateTime walks pattern left to right, substituting each
// recognized token with the corresponding field of t and copying every
// other rune through literally. This implements the minimum grammar
// named in §6: YYYY, YY, MM, M, DD, D, hh, mm, ss, fff plus literal
// separators.
func renderDateTime(pattern string, year, month, day, hour, minute, second, milli int) string {
	var b strings.Builder
	i := 0
	for i < len(pattern) {
		matched := ""
		for _, tok := range dateTimeTokens {
			if strings.HasPrefix(pattern[i:], tok) {
				matched = tok
				break
			}
		}
		if matched == "" {
			b.WriteByte(pattern[i])
			i++
			continue
		}

		switch matched {
		case "YYYY":
			b.WriteString(pad(year, 4))
		case "YY":
			b.WriteString(pad(year%100, 2))
		case "MM":
			b.WriteString(pad(month, 2))
		case "M":
			b.WriteString(strconv.Itoa(month))
		case "DD":
			b.WriteString(pad(day, 2))
		case "D":
			b.WriteString(strconv.Itoa(day))
		case "hh":
			b.WriteString(pad(hour, 2))
		case "mm":
			b.WriteString(pad(minute, 2))
		case "ss":
			b.WriteString(pad(second, 2))
		case "fff":
			b.WriteString(pad(milli, 3))
		}
		i += len(matched)
	}

	return b.String()
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}

	return s
}

// FormatDate renders a QVD date serial using pattern (e.g. "DD.MM.YYYY").
// Defaults to "YYYY-MM-DD" when pattern is empty.
func FormatDate(serial float64, pattern string) string {
	if pattern == "" {
		pattern = "YYYY-MM-DD"
	}
	t := TimeFromSerial(serial)

	return renderDateTime(pattern, t.Year(), int(t.Month()), t.Day(), 0, 0, 0, 0)
}

// FormatTime renders a QVD time-of-day fraction using pattern (e.g. "hh:mm:ss").
// Defaults to "hh:mm:ss" when pattern is empty.
func FormatTime(fraction float64, pattern string) string {
	if pattern == "" {
		pattern = "hh:mm:ss"
	}
	totalMillis := int64(fraction*24*3600*1000 + 0.5)
	hour := int((totalMillis / 3600000) % 24)
	minute := int((totalMillis / 60000) % 60)
	second := int((totalMillis / 1000) % 60)
	milli := int(totalMillis % 1000)

	return renderDateTime(pattern, 0, 0, 0, hour, minute, second, milli)
}

// FormatTimestamp renders a combined QVD timestamp serial (days with a
// fractional time-of-day component) using pattern
// (e.g. "DD.MM.YYYY hh:mm:ss"). Defaults to "YYYY-MM-DD hh:mm:ss".
func FormatTimestamp(serial float64, pattern string) string {
	if pattern == "" {
		pattern = "YYYY-MM-DD hh:mm:ss"
	}
	t := TimeFromSerial(serial)
	frac := serial - float64(int64(serial))
	if frac < 0 {
		frac += 1
	}
	totalMillis := int64(frac*24*3600*1000 + 0.5)
	hour := int((totalMillis / 3600000) % 24)
	minute := int((totalMillis / 60000) % 60)
	second := int((totalMillis / 1000) % 60)
	milli := int(totalMillis % 1000)

	return renderDateTime(pattern, t.Year(), int(t.Month()), t.Day(), hour, minute, second, milli)
}

// FormatInterval renders a QVD interval serial (a signed number of days,
// possibly fractional) using pattern. Intervals do not anchor to Epoch;
// the pattern's date tokens render the elapsed day count itself.
func FormatInterval(days float64, pattern string) string {
	if pattern == "" {
		pattern = "D hh:mm:ss"
	}
	whole := int(days)
	frac := days - float64(whole)
	if frac < 0 {
		frac = -frac
	}
	totalMillis := int64(frac*24*3600*1000 + 0.5)
	hour := int((totalMillis / 3600000) % 24)
	minute := int((totalMillis / 60000) % 60)
	second := int((totalMillis / 1000) % 60)
	milli := int(totalMillis % 1000)

	return renderDateTime(pattern, 0, 0, whole, hour, minute, second, milli)
}

// FormatMoney renders value using a pattern whose grammar is the
// minimum named in §6: '#' and '0' digit placeholders, ',' grouping,
// '.' decimal point, and literal prefix/suffix text (e.g. a currency
// symbol). Defaults to "#,##0.00" when pattern is empty.
func FormatMoney(value float64, pattern string) string {
	if pattern == "" {
		pattern = "#,##0.00"
	}

	prefix, numPart, suffix := splitMoneyPattern(pattern)
	grouped := strings.Contains(numPart, ",")
	decimals := 0
	if dot := strings.IndexByte(numPart, '.'); dot >= 0 {
		decimals = len(numPart) - dot - 1
	}

	neg := value < 0
	if neg {
		value = -value
	}
	s := strconv.FormatFloat(value, 'f', decimals, 64)

	intPart, decPart, _ := strings.Cut(s, ".")
	if grouped {
		intPart = groupThousands(intPart)
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(prefix)
	b.WriteString(intPart)
	if decimals > 0 {
		b.WriteByte('.')
		b.WriteString(decPart)
	}
	b.WriteString(suffix)

	return b.String()
}

// splitMoneyPattern separates literal prefix/suffix text from the
// numeric placeholder run (runs of '#', '0', ',', '.').
func splitMoneyPattern(pattern string) (prefix, numeric, suffix string) {
	isNumChar := func(r byte) bool {
		return r == '#' || r == '0' || r == ',' || r == '.'
	}

	start := 0
	for start < len(pattern) && !isNumChar(pattern[start]) {
		start++
	}
	end := len(pattern)
	for end > start && !isNumChar(pattern[end-1]) {
		end--
	}

	return pattern[:start], pattern[start:end], pattern[end:]
}

func groupThousands(intPart string) string {
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	n := len(intPart)
	if n <= 3 {
		if neg {
			return "-" + intPart
		}

		return intPart
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	out := b.String()
	if neg {
		out = "-" + out
	}

	return out
}
