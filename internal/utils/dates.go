package utils

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/yukikurage/portal-api/internal/constants"
)

// DateOf truncates t to its calendar day, expressed in UTC so stored values compare consistently.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return datatypes.Date(t), nil
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(constants.DateLayout)
}

// FormatOptionalDate returns nil for a nil date.
func FormatOptionalDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := FormatDate(*d)
	return &s
}

// SameDate reports whether a and b fall on the same calendar day.
func SameDate(a, b datatypes.Date) bool {
	return FormatDate(a) == FormatDate(b)
}
