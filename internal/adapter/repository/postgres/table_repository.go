package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lagourmand/table-booking/internal/core/domain"
)

type TableRepository struct {
	db *sql.DB
}

func NewTableRepository(db *sql.DB) *TableRepository {
	return &TableRepository{db: db}
}

// GetSuitableTables returns the active tables whose capacity range contains
// the party size, smallest max capacity first so the allocator never seats a
// small party at a large table while a smaller one fits.
func (r *TableRepository) GetSuitableTables(ctx context.Context, restaurantID uuid.UUID, partySize int) ([]domain.Table, error) {
	query := `
	SELECT id, restaurant_id, name, min_capacity, max_capacity, zone, is_active
	FROM tables
	WHERE restaurant_id = $1
	  AND is_active = TRUE
	  AND min_capacity <= $2
	  AND max_capacity >= $2
	ORDER BY max_capacity ASC
	`

	rows, err := r.db.QueryContext(ctx, query, restaurantID, partySize)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var tables []domain.Table
	for rows.Next() {
		var table domain.Table
		if err := rows.Scan(
			&table.ID,
			&table.RestaurantID,
			&table.Name,
			&table.MinCapacity,
			&table.MaxCapacity,
			&table.Zone,
			&table.IsActive,
		); err != nil {
			return nil, err
		}

		tables = append(tables, table)
	}

	return tables, rows.Err()
}
