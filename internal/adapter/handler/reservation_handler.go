package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lagourmand/table-booking/internal/core/domain"
	"github.com/lagourmand/table-booking/internal/core/services"
)

type ReservationHandler struct {
	svc *services.BookingService
}

func NewReservationHandler(svc *services.BookingService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

// CreateReservation handles POST /reservations. The request must carry a valid
// checkout lock; the distinct lock failure categories map to distinct response
// codes so the client can decide whether to re-offer availability.
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req services.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	resp, err := h.svc.CreateReservation(r.Context(), req)
	if err != nil {
		h.writeLockError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// CancelReservation handles POST /reservations/{reference}/cancel.
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/reservations/")
	reference := strings.TrimSuffix(rest, "/cancel")
	if reference == "" || reference == rest {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.svc.CancelReservation(r.Context(), reference); err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "reservation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *ReservationHandler) writeLockError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrLockNotFound):
		writeJSON(w, http.StatusConflict, map[string]any{"success": false, "error": err.Error(), "code": "LOCK_NOT_FOUND"})
	case errors.Is(err, domain.ErrLockWrongSession):
		writeJSON(w, http.StatusConflict, map[string]any{"success": false, "error": err.Error(), "code": "LOCK_WRONG_SESSION"})
	case errors.Is(err, domain.ErrLockSlotMismatch):
		writeJSON(w, http.StatusConflict, map[string]any{"success": false, "error": err.Error(), "code": "LOCK_SLOT_MISMATCH"})
	case errors.Is(err, domain.ErrLockExpired):
		writeJSON(w, http.StatusConflict, map[string]any{"success": false, "error": err.Error(), "code": "LOCK_EXPIRED"})
	case errors.Is(err, domain.ErrRestaurantNotConfigured):
		writeError(w, http.StatusInternalServerError, "restaurant is not configured")
	case errors.Is(err, domain.ErrInvalidTimeFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	case strings.Contains(err.Error(), "required"):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
