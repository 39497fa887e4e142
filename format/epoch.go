package format

import "time"

// Epoch is the QVD serial-date origin: day 0 is 1899-12-30 (the same
// origin QlikView inherits from the OLE Automation date convention).
var Epoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// SerialFromTime converts a wall-clock time to a QVD date/timestamp
// serial: whole days since Epoch, with the time-of-day as a fraction.
func SerialFromTime(t time.Time) float64 {
	d := t.UTC().Sub(Epoch)

	return float64(d) / float64(24*time.Hour)
}

// TimeFromSerial converts a QVD date/timestamp serial back to a
// wall-clock time.
func TimeFromSerial(serial float64) time.Time {
	return Epoch.Add(time.Duration(serial * float64(24*time.Hour)))
}

// FractionFromDuration converts a clock duration into a QVD "time of
// day" serial: a fraction of a day in [0, 1).
func FractionFromDuration(d time.Duration) float64 {
	return float64(d%(24*time.Hour)) / float64(24*time.Hour)
}
