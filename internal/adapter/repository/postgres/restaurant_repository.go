package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lagourmand/table-booking/internal/core/domain"
)

type RestaurantRepository struct {
	db *sql.DB
}

func NewRestaurantRepository(db *sql.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// GetRestaurant loads the single configured restaurant. Opening hours and the
// booking configuration are stored as JSONB columns.
func (r *RestaurantRepository) GetRestaurant(ctx context.Context) (*domain.Restaurant, error) {
	query := `
	SELECT id, name, opening_hours, booking_config
	FROM restaurants
	ORDER BY created_at
	LIMIT 1
	`

	var restaurant domain.Restaurant
	var openingHours, bookingConfig []byte

	err := r.db.QueryRowContext(ctx, query).Scan(
		&restaurant.ID,
		&restaurant.Name,
		&openingHours,
		&bookingConfig,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrRestaurantNotConfigured
		}
		return nil, err
	}

	if err := json.Unmarshal(openingHours, &restaurant.OpeningHours); err != nil {
		return nil, fmt.Errorf("failed to decode opening hours: %w", err)
	}

	if err := json.Unmarshal(bookingConfig, &restaurant.BookingConfig); err != nil {
		return nil, fmt.Errorf("failed to decode booking config: %w", err)
	}

	return &restaurant, nil
}
