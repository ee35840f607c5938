package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
	ReservationCompleted ReservationStatus = "COMPLETED"
)

type Reservation struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Reference    string
	Name         string
	Email        string
	Phone        string
	Date         string // "YYYY-MM-DD"
	TimeStart    string // "HH:MM"
	TimeEnd      string // "HH:MM"
	PartySize    int
	Status       ReservationStatus
	TableID      *uuid.UUID
	Notes        string
	CreatedAt    time.Time
}

// Occupies reports whether the reservation counts against table availability.
// Cancelled reservations free their table; every other status holds it.
func (r *Reservation) Occupies() bool {
	return r.Status != ReservationCancelled
}

// BlockedSlot marks a table (or the whole restaurant when TableID is nil) as
// unavailable. Nil TimeStart/TimeEnd means the block covers the whole day.
type BlockedSlot struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Date         string // "YYYY-MM-DD"
	TableID      *uuid.UUID
	TimeStart    *string
	TimeEnd      *string
	Reason       string
}

// Interval returns the block's interval in minutes since midnight. Whole-day
// blocks resolve to [0, 1440).
func (b *BlockedSlot) Interval() (start, end int, err error) {
	start, end = 0, minutesPerDay
	if b.TimeStart != nil {
		start, err = TimeToMinutes(*b.TimeStart)
		if err != nil {
			return 0, 0, err
		}
	}
	if b.TimeEnd != nil {
		end, err = TimeToMinutes(*b.TimeEnd)
		if err != nil {
			return 0, 0, err
		}
	}
	return start, end, nil
}
