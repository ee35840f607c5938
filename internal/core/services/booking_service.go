package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lagourmand/table-booking/internal/core/domain"
	"github.com/lagourmand/table-booking/internal/core/ports"
	"github.com/lagourmand/table-booking/internal/platform/metrics"
)

type CreateReservationRequest struct {
	SessionID string `json:"session_id"`
	LockID    string `json:"lock_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"` // "YYYY-MM-DD"
	Time      string `json:"time"` // "HH:MM"
	Notes     string `json:"notes,omitempty"`
}

type CreateReservationResponse struct {
	ReservationID string `json:"reservation_id"`
	Reference     string `json:"reference"`
	TableID       string `json:"table_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	EndTime       string `json:"end_time"`
	PartySize     int    `json:"party_size"`
	Status        string `json:"status"`
}

// BookingService owns the committing write path: it validates the checkout
// lock immediately before writing the reservation and releases it immediately
// after, keeping the window for a double allocation as small as possible.
type BookingService struct {
	restaurantRepo  ports.RestaurantRepository
	reservationRepo ports.ReservationRepository
	locks           *LockService
	cache           *redis.Client
	logger          zerolog.Logger
}

func NewBookingService(
	restaurantRepo ports.RestaurantRepository,
	reservationRepo ports.ReservationRepository,
	locks *LockService,
	cache *redis.Client,
	logger zerolog.Logger,
) *BookingService {
	return &BookingService{
		restaurantRepo:  restaurantRepo,
		reservationRepo: reservationRepo,
		locks:           locks,
		cache:           cache,
		logger:          logger,
	}
}

func (s *BookingService) CreateReservation(ctx context.Context, req CreateReservationRequest) (*CreateReservationResponse, error) {
	if req.Name == "" || req.Email == "" || req.Date == "" || req.Time == "" {
		return nil, errors.New("name, email, date and time are required")
	}

	lock, err := s.locks.ValidateLockForReservation(req.LockID, req.SessionID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	restaurant, err := s.restaurantRepo.GetRestaurant(ctx)
	if err != nil {
		return nil, err
	}

	mealDuration := restaurant.BookingConfig.MealDuration
	if mealDuration <= 0 {
		mealDuration = 90
	}

	startMinutes, err := domain.TimeToMinutes(req.Time)
	if err != nil {
		return nil, err
	}
	endTime := domain.MinutesToTime(startMinutes + mealDuration)

	tableID := lock.TableID
	reservation := &domain.Reservation{
		ID:           uuid.New(),
		RestaurantID: restaurant.ID,
		Reference:    newReference(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Date:         req.Date,
		TimeStart:    req.Time,
		TimeEnd:      endTime,
		PartySize:    lock.PartySize,
		Status:       domain.ReservationPending,
		TableID:      &tableID,
		Notes:        req.Notes,
		CreatedAt:    time.Now(),
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.locks.ReleaseLock(req.LockID)
	s.invalidateAvailability(ctx, req.Date, lock.PartySize)
	metrics.IncReservationCreated()

	s.logger.Info().
		Str("reference", reservation.Reference).
		Str("date", req.Date).
		Str("time", req.Time).
		Str("tableId", tableID.String()).
		Msg("reservation created")

	return &CreateReservationResponse{
		ReservationID: reservation.ID.String(),
		Reference:     reservation.Reference,
		TableID:       tableID.String(),
		Date:          reservation.Date,
		Time:          reservation.TimeStart,
		EndTime:       reservation.TimeEnd,
		PartySize:     reservation.PartySize,
		Status:        string(reservation.Status),
	}, nil
}

// CancelReservation flips the reservation to CANCELLED, freeing its table for
// availability. The record is kept.
func (s *BookingService) CancelReservation(ctx context.Context, reference string) error {
	reservation, err := s.reservationRepo.GetByReference(ctx, reference)
	if err != nil {
		return err
	}

	if reservation.Status == domain.ReservationCancelled {
		return nil
	}

	if err := s.reservationRepo.UpdateStatus(ctx, reservation.ID, domain.ReservationCancelled); err != nil {
		return err
	}

	s.invalidateAvailability(ctx, reservation.Date, reservation.PartySize)
	s.logger.Info().Str("reference", reference).Msg("reservation cancelled")
	return nil
}

func (s *BookingService) invalidateAvailability(ctx context.Context, date string, partySize int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, AvailabilityCacheKey(date, partySize)).Err(); err != nil {
		s.logger.Debug().Err(err).Msg("availability cache invalidation failed")
	}
}

func newReference() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
