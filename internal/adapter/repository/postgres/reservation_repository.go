package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/lagourmand/table-booking/internal/core/domain"
)

type ReservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, restaurant_id, reference, name, email, phone, date, time_start, time_end, party_size, status, table_id, notes, created_at`

func scanReservation(scanner interface{ Scan(...any) error }) (*domain.Reservation, error) {
	var res domain.Reservation
	var tableID sql.NullString

	err := scanner.Scan(
		&res.ID,
		&res.RestaurantID,
		&res.Reference,
		&res.Name,
		&res.Email,
		&res.Phone,
		&res.Date,
		&res.TimeStart,
		&res.TimeEnd,
		&res.PartySize,
		&res.Status,
		&tableID,
		&res.Notes,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tableID.Valid && tableID.String != "" {
		tid, err := uuid.Parse(tableID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid table id on reservation %s: %w", res.ID, err)
		}
		res.TableID = &tid
	}

	return &res, nil
}

// GetByDateAndTables returns the non-cancelled reservations on the date that
// occupy any of the given tables.
func (r *ReservationRepository) GetByDateAndTables(ctx context.Context, restaurantID uuid.UUID, date string, tableIDs []uuid.UUID) ([]domain.Reservation, error) {
	if len(tableIDs) == 0 {
		return nil, nil
	}

	query := `
	SELECT ` + reservationColumns + `
	FROM reservations
	WHERE restaurant_id = $1
	  AND date = $2
	  AND status <> 'CANCELLED'
	  AND table_id = ANY($3)
	`

	rows, err := r.db.QueryContext(ctx, query, restaurantID, date, pq.Array(uuidStrings(tableIDs)))
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	return collectReservations(rows)
}

// GetByTable returns the non-cancelled reservations holding one table on the date.
func (r *ReservationRepository) GetByTable(ctx context.Context, tableID uuid.UUID, date string) ([]domain.Reservation, error) {
	query := `
	SELECT ` + reservationColumns + `
	FROM reservations
	WHERE table_id = $1
	  AND date = $2
	  AND status <> 'CANCELLED'
	`

	rows, err := r.db.QueryContext(ctx, query, tableID, date)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	return collectReservations(rows)
}

func (r *ReservationRepository) GetByReference(ctx context.Context, reference string) (*domain.Reservation, error) {
	query := `
	SELECT ` + reservationColumns + `
	FROM reservations
	WHERE reference = $1
	`

	res, err := scanReservation(r.db.QueryRowContext(ctx, query, reference))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("reservation not found")
		}
		return nil, err
	}

	return res, nil
}

func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	query := `
	INSERT INTO reservations (` + reservationColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	var tableID any
	if reservation.TableID != nil {
		tableID = *reservation.TableID
	}

	_, err := r.db.ExecContext(ctx, query,
		reservation.ID,
		reservation.RestaurantID,
		reservation.Reference,
		reservation.Name,
		reservation.Email,
		reservation.Phone,
		reservation.Date,
		reservation.TimeStart,
		reservation.TimeEnd,
		reservation.PartySize,
		reservation.Status,
		tableID,
		reservation.Notes,
		reservation.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	return nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error {
	query := `
	UPDATE reservations
	SET status = $1
	WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errors.New("reservation not found")
	}

	return nil
}

func collectReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}

	return reservations, rows.Err()
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
