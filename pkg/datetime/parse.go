// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/option-lattice/pkg/constants"
	"github.com/iwvelando/option-lattice/pkg/fixed"
)

const (
	// DateLayout is the format expected for dates in config files and is also
	// the output date format.
	DateLayout = constants.DateLayout
)

const day = 24 * time.Hour

// ParseDate parses a date string in DateLayout.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", dateStr, DateLayout)
	}
	return t, nil
}

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// DaysBetween returns the whole calendar days from start to end. Negative when
// end precedes start.
func DaysBetween(start, end time.Time) int64 {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int64(e.Sub(s) / day)
}

// YearFraction returns the ACT/365 year fraction between two dates in
// DateLayout, truncated to the fixed-point scale.
func YearFraction(valuationDate, expiryDate string) (fixed.Value, error) {
	start, err := ParseDate(valuationDate)
	if err != nil {
		return fixed.Zero, err
	}
	end, err := ParseDate(expiryDate)
	if err != nil {
		return fixed.Zero, err
	}
	return fixed.FromInt(DaysBetween(start, end)).DivInt(constants.DaysPerYear)
}

// DateBeforeDate returns true if firstDate is strictly before secondDate.
func DateBeforeDate(firstDate string, secondDate string) (bool, error) {
	firstDateT, err := ParseDate(firstDate)
	if err != nil {
		return false, err
	}
	secondDateT, err := ParseDate(secondDate)
	if err != nil {
		return false, err
	}
	return firstDateT.Before(secondDateT), nil
}
