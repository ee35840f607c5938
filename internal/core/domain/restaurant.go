package domain

import (
	"errors"

	"github.com/google/uuid"
)

var ErrRestaurantNotConfigured = errors.New("restaurant not configured")

// Period is an opening period within a day, e.g. lunch 12:00-14:30.
type Period struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}

// DayHours holds the opening periods of a single weekday.
// A nil entry in OpeningHours means the restaurant is closed that day.
type DayHours struct {
	Lunch  *Period `json:"lunch,omitempty"`
	Dinner *Period `json:"dinner,omitempty"`
}

// OpeningHours maps lowercase weekday names ("monday"...) to opening periods.
type OpeningHours map[string]*DayHours

// BookingConfig carries the per-restaurant booking parameters. All durations
// are in minutes except the advance-booking bounds.
type BookingConfig struct {
	SlotDuration      int `json:"slotDuration"`
	MealDuration      int `json:"mealDuration"`
	BufferTime        int `json:"bufferTime"`
	MaxPartySize      int `json:"maxPartySize"`
	MinAdvanceBooking int `json:"minAdvanceBooking"` // hours
	MaxAdvanceBooking int `json:"maxAdvanceBooking"` // days
}

type Restaurant struct {
	ID            uuid.UUID
	Name          string
	OpeningHours  OpeningHours
	BookingConfig BookingConfig
}

type Table struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	MinCapacity  int
	MaxCapacity  int
	Zone         string
	IsActive     bool
}

// Fits reports whether the table can seat a party of the given size.
func (t *Table) Fits(partySize int) bool {
	return t.MinCapacity <= partySize && partySize <= t.MaxCapacity
}
