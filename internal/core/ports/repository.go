package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/lagourmand/table-booking/internal/core/domain"
)

type RestaurantRepository interface {
	GetRestaurant(ctx context.Context) (*domain.Restaurant, error)
}

type TableRepository interface {
	// GetSuitableTables returns the active tables whose capacity range contains
	// partySize, ordered ascending by max capacity (smallest-fits-first).
	GetSuitableTables(ctx context.Context, restaurantID uuid.UUID, partySize int) ([]domain.Table, error)
}

type ReservationRepository interface {
	// GetByDateAndTables returns the non-cancelled reservations on the date
	// assigned to any of the given tables.
	GetByDateAndTables(ctx context.Context, restaurantID uuid.UUID, date string, tableIDs []uuid.UUID) ([]domain.Reservation, error)
	GetByTable(ctx context.Context, tableID uuid.UUID, date string) ([]domain.Reservation, error)
	GetByReference(ctx context.Context, reference string) (*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error
}

type BlockedSlotRepository interface {
	// GetGlobalBlock returns a whole-restaurant block for the date, or nil.
	GetGlobalBlock(ctx context.Context, restaurantID uuid.UUID, date string) (*domain.BlockedSlot, error)
	// GetForDate returns the blocks on the date that apply to any of the given
	// tables, including restaurant-wide blocks.
	GetForDate(ctx context.Context, restaurantID uuid.UUID, date string, tableIDs []uuid.UUID) ([]domain.BlockedSlot, error)
	GetForTable(ctx context.Context, tableID uuid.UUID, date string) ([]domain.BlockedSlot, error)
}
