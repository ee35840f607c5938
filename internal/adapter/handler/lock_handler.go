package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lagourmand/table-booking/internal/core/domain"
	"github.com/lagourmand/table-booking/internal/core/services"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

type LockHandler struct {
	availability *services.AvailabilityService
	locks        *services.LockService
}

func NewLockHandler(availability *services.AvailabilityService, locks *services.LockService) *LockHandler {
	return &LockHandler{availability: availability, locks: locks}
}

type lockRequest struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	PartySize int    `json:"party_size"`
	SessionID string `json:"session_id"`
}

type lockResponse struct {
	Success          bool   `json:"success"`
	LockID           string `json:"lock_id"`
	TableID          string `json:"table_id"`
	ExpiresAt        string `json:"expires_at"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

type lockConflictResponse struct {
	Success      bool     `json:"success"`
	Error        string   `json:"error"`
	Code         string   `json:"code"`
	Alternatives []string `json:"alternatives"`
	RetryAfter   int      `json:"retry_after,omitempty"`
}

// CreateLock handles POST /availability/lock: it re-checks slot availability,
// allocates a table, and claims it for the session. Contention is answered
// with alternative times, never retried here.
func (h *LockHandler) CreateLock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req lockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if !datePattern.MatchString(req.Date) {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}
	if !timePattern.MatchString(req.Time) {
		writeError(w, http.StatusBadRequest, "invalid time format; expected HH:MM")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if req.PartySize < 1 {
		writeError(w, http.StatusBadRequest, "party_size must be a positive integer")
		return
	}

	cfg, err := h.availability.BookingConfig(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "restaurant is not configured")
		return
	}
	if cfg.MaxPartySize > 0 && req.PartySize > cfg.MaxPartySize {
		writeError(w, http.StatusBadRequest, "party size exceeds the maximum for online booking")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	if msg := checkAdvanceBounds(date, req.Time, cfg); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	availability, err := h.availability.GetAvailability(r.Context(), date, req.PartySize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	requested := findSlot(availability.Slots, req.Time)
	if requested == nil || !requested.Available {
		writeJSON(w, http.StatusConflict, lockConflictResponse{
			Error:        "this slot is not available",
			Code:         "SLOT_UNAVAILABLE",
			Alternatives: alternativeTimes(availability.Slots, req.Time),
		})
		return
	}

	tableID, err := h.availability.FindAvailableTable(r.Context(), req.Date, req.Time, req.PartySize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if tableID == uuid.Nil {
		writeJSON(w, http.StatusConflict, lockConflictResponse{
			Error:        "no table available for this slot",
			Code:         "NO_TABLE_AVAILABLE",
			Alternatives: alternativeTimes(availability.Slots, req.Time),
		})
		return
	}

	lock, err := h.locks.CreateLock(req.SessionID, req.Date, req.Time, req.PartySize, tableID)
	if err != nil {
		if errors.Is(err, domain.ErrSlotAlreadyLocked) {
			writeJSON(w, http.StatusConflict, lockConflictResponse{
				Error:        "this slot is being reserved by another customer",
				Code:         "SLOT_LOCKED",
				Alternatives: alternativeTimes(availability.Slots, req.Time),
				RetryAfter:   30,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, lockResponse{
		Success:          true,
		LockID:           lock.LockID,
		TableID:          lock.TableID.String(),
		ExpiresAt:        lock.ExpiresAt.Format(time.RFC3339),
		ExpiresInSeconds: int(time.Until(lock.ExpiresAt).Seconds()),
	})
}

// LockByID handles GET/DELETE /locks/{id} and POST /locks/{id}/extend.
func (h *LockHandler) LockByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/locks/")
	if rest == "" {
		writeError(w, http.StatusNotFound, "lock id required")
		return
	}

	if strings.HasSuffix(rest, "/extend") {
		h.extendLock(w, r, strings.TrimSuffix(rest, "/extend"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getLock(w, r, rest)
	case http.MethodDelete:
		h.releaseLock(w, r, rest)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Stats handles GET /locks/stats.
func (h *LockHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use GET")
		return
	}
	writeJSON(w, http.StatusOK, h.locks.Stats())
}

func (h *LockHandler) getLock(w http.ResponseWriter, r *http.Request, lockID string) {
	lock := h.locks.GetLockByID(lockID)
	if lock == nil {
		writeError(w, http.StatusNotFound, "lock not found or expired")
		return
	}

	remaining := int(time.Until(lock.ExpiresAt).Seconds())
	if remaining < 0 {
		remaining = 0
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"lock": map[string]any{
			"lock_id":           lock.LockID,
			"date":              lock.Date,
			"time":              lock.Time,
			"party_size":        lock.PartySize,
			"table_id":          lock.TableID.String(),
			"expires_at":        lock.ExpiresAt.Format(time.RFC3339),
			"remaining_seconds": remaining,
		},
	})
}

func (h *LockHandler) releaseLock(w http.ResponseWriter, r *http.Request, lockID string) {
	if sessionID := r.Header.Get("X-Session-Id"); sessionID != "" {
		if lock := h.locks.GetLockByID(lockID); lock != nil && lock.SessionID != sessionID {
			writeError(w, http.StatusForbidden, "lock belongs to another session")
			return
		}
	}

	released := h.locks.ReleaseLock(lockID)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "released": released})
}

type extendRequest struct {
	DurationSeconds int `json:"duration_seconds"`
}

func (h *LockHandler) extendLock(w http.ResponseWriter, r *http.Request, lockID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req extendRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	lock := h.locks.ExtendLock(lockID, time.Duration(req.DurationSeconds)*time.Second)
	if lock == nil {
		writeError(w, http.StatusNotFound, "lock not found or expired")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"lock_id":    lock.LockID,
		"expires_at": lock.ExpiresAt.Format(time.RFC3339),
	})
}

func findSlot(slots []services.TimeSlot, timeOfDay string) *services.TimeSlot {
	for i := range slots {
		if slots[i].Time == timeOfDay {
			return &slots[i]
		}
	}
	return nil
}

// alternativeTimes returns up to five other available times for the day.
func alternativeTimes(slots []services.TimeSlot, exclude string) []string {
	alternatives := []string{}
	for _, slot := range slots {
		if slot.Available && slot.Time != exclude {
			alternatives = append(alternatives, slot.Time)
			if len(alternatives) == 5 {
				break
			}
		}
	}
	return alternatives
}

// checkAdvanceBounds enforces the restaurant's min/max advance-booking window.
// Returns an empty string when the slot is inside the window.
func checkAdvanceBounds(date time.Time, timeOfDay string, cfg domain.BookingConfig) string {
	minutes, err := domain.TimeToMinutes(timeOfDay)
	if err != nil {
		return "invalid time"
	}
	slotAt := date.Add(time.Duration(minutes) * time.Minute)

	now := time.Now()
	if cfg.MinAdvanceBooking > 0 && slotAt.Before(now.Add(time.Duration(cfg.MinAdvanceBooking)*time.Hour)) {
		return "this slot is too soon to book online"
	}
	if cfg.MaxAdvanceBooking > 0 && slotAt.After(now.AddDate(0, 0, cfg.MaxAdvanceBooking)) {
		return "this date is too far ahead to book online"
	}
	return ""
}
