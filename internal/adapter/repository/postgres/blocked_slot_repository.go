package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/lagourmand/table-booking/internal/core/domain"
)

type BlockedSlotRepository struct {
	db *sql.DB
}

func NewBlockedSlotRepository(db *sql.DB) *BlockedSlotRepository {
	return &BlockedSlotRepository{db: db}
}

const blockedSlotColumns = `id, restaurant_id, date, table_id, time_start, time_end, reason`

func scanBlockedSlot(scanner interface{ Scan(...any) error }) (*domain.BlockedSlot, error) {
	var block domain.BlockedSlot
	var tableID, timeStart, timeEnd, reason sql.NullString

	err := scanner.Scan(
		&block.ID,
		&block.RestaurantID,
		&block.Date,
		&tableID,
		&timeStart,
		&timeEnd,
		&reason,
	)
	if err != nil {
		return nil, err
	}

	if tableID.Valid && tableID.String != "" {
		tid, err := uuid.Parse(tableID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid table id on blocked slot %s: %w", block.ID, err)
		}
		block.TableID = &tid
	}
	if timeStart.Valid {
		block.TimeStart = &timeStart.String
	}
	if timeEnd.Valid {
		block.TimeEnd = &timeEnd.String
	}
	if reason.Valid {
		block.Reason = reason.String
	}

	return &block, nil
}

// GetGlobalBlock returns a whole-restaurant block for the date, or nil when
// the day is not globally blocked.
func (r *BlockedSlotRepository) GetGlobalBlock(ctx context.Context, restaurantID uuid.UUID, date string) (*domain.BlockedSlot, error) {
	query := `
	SELECT ` + blockedSlotColumns + `
	FROM blocked_slots
	WHERE restaurant_id = $1
	  AND date = $2
	  AND table_id IS NULL
	LIMIT 1
	`

	block, err := scanBlockedSlot(r.db.QueryRowContext(ctx, query, restaurantID, date))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return block, nil
}

// GetForDate returns blocks on the date targeting any of the given tables,
// plus restaurant-wide blocks.
func (r *BlockedSlotRepository) GetForDate(ctx context.Context, restaurantID uuid.UUID, date string, tableIDs []uuid.UUID) ([]domain.BlockedSlot, error) {
	query := `
	SELECT ` + blockedSlotColumns + `
	FROM blocked_slots
	WHERE restaurant_id = $1
	  AND date = $2
	  AND (table_id = ANY($3) OR table_id IS NULL)
	`

	rows, err := r.db.QueryContext(ctx, query, restaurantID, date, pq.Array(uuidStrings(tableIDs)))
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	return collectBlockedSlots(rows)
}

// GetForTable returns blocks applying to one table on the date, including
// restaurant-wide blocks.
func (r *BlockedSlotRepository) GetForTable(ctx context.Context, tableID uuid.UUID, date string) ([]domain.BlockedSlot, error) {
	query := `
	SELECT ` + blockedSlotColumns + `
	FROM blocked_slots
	WHERE date = $1
	  AND (table_id = $2 OR table_id IS NULL)
	`

	rows, err := r.db.QueryContext(ctx, query, date, tableID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	return collectBlockedSlots(rows)
}

func collectBlockedSlots(rows *sql.Rows) ([]domain.BlockedSlot, error) {
	var blocks []domain.BlockedSlot
	for rows.Next() {
		block, err := scanBlockedSlot(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, *block)
	}

	return blocks, rows.Err()
}
