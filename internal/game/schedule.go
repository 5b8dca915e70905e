// internal/game/schedule.go
//
// Hole availability: a pure date-driven state machine. Hole N unlocks on
// startDate + (N-1) days and is available for new attempts only on that
// calendar day. All comparisons use local calendar dates; the time-of-day
// component of the persisted start date is dropped, so unlock boundaries do
// not drift for users near midnight in other zones.

package game

import (
	"fmt"
	"strings"
	"time"
)

// Availability is a hole's scheduling state for a given day.
type Availability string

const (
	AvailabilityLocked    Availability = "locked"    // its day has not arrived
	AvailabilityAvailable Availability = "available" // playable today
	AvailabilityPast      Availability = "past"      // its day has passed
)

// ParseLocalDate interprets an ISO timestamp or YYYY-MM-DD string as a
// local-midnight date, discarding any time-of-day component.
func ParseLocalDate(s string) (time.Time, error) {
	datePart := strings.SplitN(strings.TrimSpace(s), "T", 2)[0]
	t, err := time.ParseInLocation("2006-01-02", datePart, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// DateString formats t as a local YYYY-MM-DD date key.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// truncateLocal drops the time-of-day from t in the local zone.
func truncateLocal(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// HoleAvailableDate is the local calendar date on which holeNumber unlocks:
// startDate + (holeNumber-1) days.
func HoleAvailableDate(startDate string, holeNumber int) (time.Time, error) {
	start, err := ParseLocalDate(startDate)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 0, holeNumber-1), nil
}

// HoleAvailabilityOn reports a hole's state as of the given instant
// (truncated to its local date). Split out from HoleAvailability so the
// schedule is testable without touching the wall clock.
func HoleAvailabilityOn(startDate string, holeNumber int, now time.Time) (Availability, error) {
	holeDate, err := HoleAvailableDate(startDate, holeNumber)
	if err != nil {
		return "", err
	}
	today := truncateLocal(now)
	switch {
	case today.Equal(holeDate):
		return AvailabilityAvailable, nil
	case today.Before(holeDate):
		return AvailabilityLocked, nil
	default:
		return AvailabilityPast, nil
	}
}

// HoleAvailability is HoleAvailabilityOn against the wall clock.
func HoleAvailability(startDate string, holeNumber int) (Availability, error) {
	return HoleAvailabilityOn(startDate, holeNumber, time.Now())
}

// TodaysHoleNumber returns the hole that is available as of now, if any.
// At most one hole is available on any calendar day.
func TodaysHoleNumber(startDate string, totalHoles int, now time.Time) (int, bool) {
	for n := 1; n <= totalHoles; n++ {
		a, err := HoleAvailabilityOn(startDate, n, now)
		if err != nil {
			return 0, false
		}
		if a == AvailabilityAvailable {
			return n, true
		}
	}
	return 0, false
}

// FormatHoleDate renders a hole's unlock date for display, e.g. "Feb 15".
func FormatHoleDate(startDate string, holeNumber int) string {
	d, err := HoleAvailableDate(startDate, holeNumber)
	if err != nil {
		return ""
	}
	return d.Format("Jan 2")
}
