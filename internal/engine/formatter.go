package engine

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // Resolves zones on hosts without a zoneinfo database.

	"github.com/tartampluch/nepal-clock/internal/config"
)

// ErrNoLocation is returned when formatting without a resolved timezone.
var ErrNoLocation = errors.New(config.ErrNoLocation)

// Display holds the strings rendered by the overlay for one instant.
type Display struct {
	TimeText   string // 12-hour clock, no leading zero on the hour ("9:05:03")
	AMPMText   string
	DateText   string // "Monday, March 10, 2025"
	OffsetText string // "GMT +5:45"
}

// ClockState is a Display plus the pulse phase of the live indicator.
// It is recomputed every tick and never stored.
type ClockState struct {
	Display
	StatusPhase bool
}

// Format converts instant to the wall clock of loc and renders it.
func Format(instant time.Time, loc *time.Location) (Display, error) {
	if loc == nil {
		return Display{}, ErrNoLocation
	}

	local := instant.In(loc)
	return Display{
		TimeText:   local.Format(config.FormatTime),
		AMPMText:   local.Format(config.FormatAMPM),
		DateText:   local.Format(config.FormatDate),
		OffsetText: FormatOffset(local),
	}, nil
}

// FormatOffset renders the UTC offset of t's zone as "GMT +5:45".
func FormatOffset(t time.Time) string {
	_, offset := t.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf(config.FormatOffset, sign, offset/3600, (offset%3600)/60)
}

// Formatter binds Format to a fixed timezone.
type Formatter struct {
	Location *time.Location
}

// NewFormatter resolves zone through the timezone database.
func NewFormatter(zone string) (*Formatter, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", config.ErrLoadLocation, zone, err)
	}
	return &Formatter{Location: loc}, nil
}

// Format renders instant in the formatter's timezone.
func (f *Formatter) Format(instant time.Time) (Display, error) {
	if f == nil {
		return Display{}, ErrNoLocation
	}
	return Format(instant, f.Location)
}
