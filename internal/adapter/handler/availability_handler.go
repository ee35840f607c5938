package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/lagourmand/table-booking/internal/core/domain"
	"github.com/lagourmand/table-booking/internal/core/services"
)

type AvailabilityHandler struct {
	svc *services.AvailabilityService
}

func NewAvailabilityHandler(svc *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

// GetAvailability handles GET /availability?date=YYYY-MM-DD&partySize=N.
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use GET")
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	partySize, err := strconv.Atoi(r.URL.Query().Get("partySize"))
	if err != nil || partySize < 1 {
		writeError(w, http.StatusBadRequest, "partySize must be a positive integer")
		return
	}

	cfg, err := h.svc.BookingConfig(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if cfg.MaxPartySize > 0 && partySize > cfg.MaxPartySize {
		writeError(w, http.StatusBadRequest, "party size exceeds the maximum for online booking")
		return
	}

	result, err := h.svc.GetAvailability(r.Context(), date, partySize)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *AvailabilityHandler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrRestaurantNotConfigured) {
		writeError(w, http.StatusInternalServerError, "restaurant is not configured")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal server error")
}
