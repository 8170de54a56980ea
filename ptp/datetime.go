package ptp

import (
	"strings"
	"time"
)

const timeFormat = "20060102T150405"
const timeFormatNumTZ = "20060102T150405-0700"

// ParseDateTime parses a PTP DateTime string. The empty string is the
// zero time.
func ParseDateTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	// Some devices send a trailing dot or tenths of seconds.
	if i := strings.IndexByte(s, '.'); i == len(timeFormat) {
		s = s[:i] + strings.TrimLeft(s[i:], ".0123456789")
	}
	s = strings.TrimRight(s, "Z")

	t, err := time.Parse(timeFormat, s)
	if err != nil {
		t, err = time.Parse(timeFormatNumTZ, s)
		if err != nil {
			return time.Time{}, &FormatError{What: "DateTime", Reason: err.Error()}
		}
	}
	return t, nil
}

// FormatDateTime is the inverse of ParseDateTime.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeFormat)
}

func (o *ObjectInfo) CaptureTime() (time.Time, error) {
	return ParseDateTime(o.CaptureDate)
}

func (o *ObjectInfo) ModificationTime() (time.Time, error) {
	return ParseDateTime(o.ModificationDate)
}

// SetTimes fills the date strings from t.
func (o *ObjectInfo) SetTimes(capture, modification time.Time) {
	o.CaptureDate = FormatDateTime(capture)
	o.ModificationDate = FormatDateTime(modification)
}
