package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSlotAlreadyLocked = errors.New("slot is already locked by another session")
	ErrLockNotFound      = errors.New("lock not found or expired")
	ErrLockWrongSession  = errors.New("lock does not belong to this session")
	ErrLockSlotMismatch  = errors.New("lock does not match the requested slot")
	ErrLockExpired       = errors.New("lock has expired")
)

// Clock abstracts time.Now so lock expiry is testable.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// SlotLock is a short-lived, session-exclusive claim on a table for a specific
// date and time, held while a customer finishes the checkout flow.
type SlotLock struct {
	LockID    string    `json:"lockId"`
	SessionID string    `json:"sessionId"`
	Date      string    `json:"date"` // "YYYY-MM-DD"
	Time      string    `json:"time"` // "HH:MM"
	PartySize int       `json:"partySize"`
	TableID   uuid.UUID `json:"tableId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SlotKey identifies the table-slot combination a lock protects. At most one
// unexpired lock may exist per key.
func SlotKey(date, timeOfDay string, tableID uuid.UUID) string {
	return fmt.Sprintf("%s_%s_%s", date, timeOfDay, tableID)
}

func (l *SlotLock) Key() string {
	return SlotKey(l.Date, l.Time, l.TableID)
}

func (l *SlotLock) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}

type LockStats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Expired int `json:"expired"`
}
