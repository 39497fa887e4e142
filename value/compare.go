package value

import "math"

// Compare orders two values ascending per §4.1: by calculation value
// when both have one (NaN sorts greater than any number, ties broken
// by display value), otherwise by lexical display-value order; Null
// sorts before any non-null value.
func Compare(a, b Value) int {
	if a.IsNull() && b.IsNull() {
		return 0
	}
	if a.IsNull() {
		return -1
	}
	if b.IsNull() {
		return 1
	}

	ac, aok := a.Calc()
	bc, bok := b.Calc()

	if aok && bok {
		aNaN, bNaN := math.IsNaN(ac), math.IsNaN(bc)
		switch {
		case aNaN && bNaN:
			return compareDisplay(a, b)
		case aNaN:
			return 1
		case bNaN:
			return -1
		case ac < bc:
			return -1
		case ac > bc:
			return 1
		default:
			return compareDisplay(a, b)
		}
	}

	return compareDisplay(a, b)
}

func compareDisplay(a, b Value) int {
	da, db := a.Display(), b.Display()
	switch {
	case da < db:
		return -1
	case da > db:
		return 1
	default:
		return 0
	}
}

// Less reports whether a sorts before b under Compare.
func Less(a, b Value) bool { return Compare(a, b) < 0 }
