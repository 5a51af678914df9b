package header

import (
	"strings"
	"time"
)

// A Field is a named header field and its values.
type Field struct {
	name   string
	values []string
	t      time.Time
	isTime bool
}

// Name is the canonical name of f.
func (f Field) Name() string { return f.name }

// Values copies the values of f.
func (f Field) Values() []string {
	if f.values == nil {
		return nil
	}

	vals := make([]string, len(f.values))
	copy(vals, f.values)
	return vals
}

// Time returns the date f holds,
// reporting false when f was not set with a date.
func (f Field) Time() (time.Time, bool) { return f.t, f.isTime }

// String joins the values of f as they are written on a single header line.
func (f Field) String() string { return strings.Join(f.values, ", ") }
