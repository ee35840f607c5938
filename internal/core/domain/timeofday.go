package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

// TimeToMinutes parses an "HH:MM" clock time into minutes since midnight.
// Callers are expected to pre-validate input; the error is a safety net.
func TimeToMinutes(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidTimeFormat
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, ErrInvalidTimeFormat
	}

	return hours*60 + minutes, nil
}

// MinutesToTime formats minutes since midnight as zero-padded "HH:MM".
// It is only meaningful for 0 <= minutes < 1440; out-of-range values are
// formatted as-is without normalization.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// PeriodsOverlap reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching endpoints do not overlap.
func PeriodsOverlap(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// DayName returns the lowercase English weekday name for a date.
func DayName(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// GenerateTimeSlots produces the candidate start times between start and end,
// spaced slotDuration minutes apart. Generation stops strictly before
// end-slotDuration, so the last offered slot is always at least one full slot
// length before closing.
func GenerateTimeSlots(start, end string, slotDuration int) []string {
	startMinutes, err := TimeToMinutes(start)
	if err != nil {
		return nil
	}
	endMinutes, err := TimeToMinutes(end)
	if err != nil {
		return nil
	}
	if slotDuration <= 0 {
		return nil
	}

	var slots []string
	for current := startMinutes; current < endMinutes-slotDuration; current += slotDuration {
		slots = append(slots, MinutesToTime(current))
	}
	return slots
}

// GenerateDaySlots concatenates the lunch and dinner slots for a day.
// A nil DayHours (closed day) or an absent period contributes nothing.
func GenerateDaySlots(hours *DayHours, slotDuration int) []string {
	if hours == nil {
		return nil
	}

	var slots []string
	if hours.Lunch != nil {
		slots = append(slots, GenerateTimeSlots(hours.Lunch.Start, hours.Lunch.End, slotDuration)...)
	}
	if hours.Dinner != nil {
		slots = append(slots, GenerateTimeSlots(hours.Dinner.Start, hours.Dinner.End, slotDuration)...)
	}
	return slots
}
