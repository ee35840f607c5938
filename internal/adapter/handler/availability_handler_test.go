package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lagourmand/table-booking/internal/core/domain"
	"github.com/lagourmand/table-booking/internal/core/ports/mocks"
	"github.com/lagourmand/table-booking/internal/core/services"
)

func testRestaurant() *domain.Restaurant {
	return &domain.Restaurant{
		OpeningHours: domain.OpeningHours{
			"tuesday": {
				Lunch:  &domain.Period{Start: "12:00", End: "14:30"},
				Dinner: &domain.Period{Start: "19:00", End: "22:30"},
			},
		},
		BookingConfig: domain.BookingConfig{
			SlotDuration: 30,
			MealDuration: 90,
			BufferTime:   15,
			MaxPartySize: 8,
		},
	}
}

func newAvailabilityHandler(t *testing.T) (*AvailabilityHandler, *mocks.RestaurantRepository) {
	restaurantRepo := mocks.NewRestaurantRepository(t)
	cache, _ := redismock.NewClientMock()
	svc := services.NewAvailabilityService(
		restaurantRepo,
		mocks.NewTableRepository(t),
		mocks.NewReservationRepository(t),
		mocks.NewBlockedSlotRepository(t),
		cache,
		zerolog.Nop(),
	)
	return NewAvailabilityHandler(svc), restaurantRepo
}

func TestGetAvailabilityHandler_Validation(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"missing date", "/availability?partySize=2", http.StatusBadRequest},
		{"bad date", "/availability?date=04-06-2024&partySize=2", http.StatusBadRequest},
		{"missing party size", "/availability?date=2024-06-04", http.StatusBadRequest},
		{"zero party size", "/availability?date=2024-06-04&partySize=0", http.StatusBadRequest},
		{"non-numeric party size", "/availability?date=2024-06-04&partySize=two", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newAvailabilityHandler(t)
			rec := httptest.NewRecorder()
			h.GetAvailability(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.status, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestGetAvailabilityHandler_PartySizeAboveMaximum(t *testing.T) {
	h, restaurantRepo := newAvailabilityHandler(t)
	restaurantRepo.On("GetRestaurant", mock.Anything).Return(testRestaurant(), nil)

	rec := httptest.NewRecorder()
	h.GetAvailability(rec, httptest.NewRequest(http.MethodGet, "/availability?date=2024-06-04&partySize=9", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAvailabilityHandler_ClosedDay(t *testing.T) {
	h, restaurantRepo := newAvailabilityHandler(t)
	restaurantRepo.On("GetRestaurant", mock.Anything).Return(testRestaurant(), nil)

	rec := httptest.NewRecorder()
	h.GetAvailability(rec, httptest.NewRequest(http.MethodGet, "/availability?date=2024-06-03&partySize=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var result services.AvailabilityResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.IsOpen)
	assert.Equal(t, "monday", result.DayName)
	assert.NotEmpty(t, result.ClosedReason)
}

func TestGetAvailabilityHandler_RestaurantNotConfigured(t *testing.T) {
	h, restaurantRepo := newAvailabilityHandler(t)
	restaurantRepo.On("GetRestaurant", mock.Anything).Return(nil, domain.ErrRestaurantNotConfigured)

	rec := httptest.NewRecorder()
	h.GetAvailability(rec, httptest.NewRequest(http.MethodGet, "/availability?date=2024-06-04&partySize=2", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetAvailabilityHandler_MethodNotAllowed(t *testing.T) {
	h, _ := newAvailabilityHandler(t)
	rec := httptest.NewRecorder()
	h.GetAvailability(rec, httptest.NewRequest(http.MethodPost, "/availability", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
