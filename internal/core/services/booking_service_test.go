package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lagourmand/table-booking/internal/core/domain"
	"github.com/lagourmand/table-booking/internal/core/ports/mocks"
	"github.com/lagourmand/table-booking/internal/core/services"
)

func TestCreateReservation_Success(t *testing.T) {
	ctx := context.Background()
	locks, _ := newTestLockService()
	restaurantRepo := mocks.NewRestaurantRepository(t)
	reservationRepo := mocks.NewReservationRepository(t)
	cache, cacheMock := redismock.NewClientMock()

	svc := services.NewBookingService(restaurantRepo, reservationRepo, locks, cache, zerolog.Nop())

	tableID := uuid.New()
	lock, err := locks.CreateLock("session-a", "2024-06-04", "19:30", 2, tableID)
	require.NoError(t, err)

	restaurantRepo.On("GetRestaurant", ctx).Return(testRestaurant(), nil)

	var created *domain.Reservation
	reservationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Reservation)
		}).
		Return(nil)

	cacheMock.ExpectDel(services.AvailabilityCacheKey("2024-06-04", 2)).SetVal(1)

	resp, err := svc.CreateReservation(ctx, services.CreateReservationRequest{
		SessionID: "session-a",
		LockID:    lock.LockID,
		Name:      "Alice Martin",
		Email:     "alice@example.com",
		Phone:     "+33612345678",
		Date:      "2024-06-04",
		Time:      "19:30",
	})
	require.NoError(t, err)

	assert.Equal(t, tableID.String(), resp.TableID)
	assert.Equal(t, "19:30", resp.Time)
	assert.Equal(t, "21:00", resp.EndTime)
	assert.Equal(t, 2, resp.PartySize)
	assert.Equal(t, string(domain.ReservationPending), resp.Status)
	assert.Len(t, resp.Reference, 8)

	require.NotNil(t, created)
	assert.Equal(t, resp.Reference, created.Reference)
	require.NotNil(t, created.TableID)
	assert.Equal(t, tableID, *created.TableID)
	assert.Equal(t, domain.ReservationPending, created.Status)

	// The lock is consumed by the successful write.
	assert.Nil(t, locks.GetLockByID(lock.LockID))
	assert.NoError(t, cacheMock.ExpectationsWereMet())
}

func TestCreateReservation_LockErrors(t *testing.T) {
	ctx := context.Background()

	newService := func(t *testing.T) (*services.BookingService, *services.LockService, *fakeClock) {
		locks, clock := newTestLockService()
		cache, _ := redismock.NewClientMock()
		svc := services.NewBookingService(mocks.NewRestaurantRepository(t), mocks.NewReservationRepository(t), locks, cache, zerolog.Nop())
		return svc, locks, clock
	}

	baseRequest := func(lockID string) services.CreateReservationRequest {
		return services.CreateReservationRequest{
			SessionID: "session-a",
			LockID:    lockID,
			Name:      "Alice Martin",
			Email:     "alice@example.com",
			Date:      "2024-06-04",
			Time:      "19:30",
		}
	}

	t.Run("unknown lock", func(t *testing.T) {
		svc, _, _ := newService(t)
		_, err := svc.CreateReservation(ctx, baseRequest("no-such-lock"))
		assert.ErrorIs(t, err, domain.ErrLockNotFound)
	})

	t.Run("wrong session", func(t *testing.T) {
		svc, locks, _ := newService(t)
		lock, err := locks.CreateLock("someone-else", "2024-06-04", "19:30", 2, uuid.New())
		require.NoError(t, err)

		_, err = svc.CreateReservation(ctx, baseRequest(lock.LockID))
		assert.ErrorIs(t, err, domain.ErrLockWrongSession)
	})

	t.Run("slot mismatch", func(t *testing.T) {
		svc, locks, _ := newService(t)
		lock, err := locks.CreateLock("session-a", "2024-06-04", "20:00", 2, uuid.New())
		require.NoError(t, err)

		_, err = svc.CreateReservation(ctx, baseRequest(lock.LockID))
		assert.ErrorIs(t, err, domain.ErrLockSlotMismatch)
	})

	t.Run("expired lock reads as absent", func(t *testing.T) {
		svc, locks, clock := newService(t)
		lock, err := locks.CreateLock("session-a", "2024-06-04", "19:30", 2, uuid.New())
		require.NoError(t, err)

		clock.Advance(5*time.Minute + time.Second)
		_, err = svc.CreateReservation(ctx, baseRequest(lock.LockID))
		assert.ErrorIs(t, err, domain.ErrLockNotFound)
	})

	t.Run("missing required fields", func(t *testing.T) {
		svc, _, _ := newService(t)
		req := baseRequest("irrelevant")
		req.Email = ""
		_, err := svc.CreateReservation(ctx, req)
		assert.Error(t, err)
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()
	locks, _ := newTestLockService()
	restaurantRepo := mocks.NewRestaurantRepository(t)
	reservationRepo := mocks.NewReservationRepository(t)
	cache, cacheMock := redismock.NewClientMock()

	svc := services.NewBookingService(restaurantRepo, reservationRepo, locks, cache, zerolog.Nop())

	id := uuid.New()
	reservationRepo.On("GetByReference", ctx, "ABCD1234").Return(&domain.Reservation{
		ID:        id,
		Reference: "ABCD1234",
		Date:      "2024-06-04",
		PartySize: 4,
		Status:    domain.ReservationConfirmed,
	}, nil)
	reservationRepo.On("UpdateStatus", ctx, id, domain.ReservationCancelled).Return(nil)
	cacheMock.ExpectDel(services.AvailabilityCacheKey("2024-06-04", 4)).SetVal(1)

	require.NoError(t, svc.CancelReservation(ctx, "ABCD1234"))
	assert.NoError(t, cacheMock.ExpectationsWereMet())
}

func TestCancelReservation_AlreadyCancelled(t *testing.T) {
	ctx := context.Background()
	locks, _ := newTestLockService()
	reservationRepo := mocks.NewReservationRepository(t)
	cache, cacheMock := redismock.NewClientMock()

	svc := services.NewBookingService(mocks.NewRestaurantRepository(t), reservationRepo, locks, cache, zerolog.Nop())

	reservationRepo.On("GetByReference", ctx, "ABCD1234").Return(&domain.Reservation{
		ID:        uuid.New(),
		Reference: "ABCD1234",
		Date:      "2024-06-04",
		PartySize: 4,
		Status:    domain.ReservationCancelled,
	}, nil)

	// No status update and no cache invalidation for an already-cancelled
	// reservation.
	require.NoError(t, svc.CancelReservation(ctx, "ABCD1234"))
	assert.NoError(t, cacheMock.ExpectationsWereMet())
}
