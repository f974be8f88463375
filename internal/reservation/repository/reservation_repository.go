package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"snowrent/internal/domain"
	"snowrent/internal/errors"
	"snowrent/internal/infrastructure/database"
)

const reservationColumns = "r.id, r.user_id, r.equipment_id, r.start_date, r.end_date, r.total_price, r.status, r.notes, r.created_at, r.updated_at"

type SQLRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLRepository(db *sql.DB, dialect database.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Insert(ctx context.Context, tx *sql.Tx, res domain.Reservation) (uint, error) {
	query := `INSERT INTO reservations (user_id, equipment_id, start_date, end_date, total_price, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		res.UserID, res.EquipmentID,
		res.StartDate.Format(domain.DateLayout), res.EndDate.Format(domain.DateLayout),
		res.TotalPrice, res.Status, res.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting reservation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted reservation id: %w", err)
	}

	return uint(id), nil
}

// CountOverlapping counts active reservations of an item whose inclusive
// date range touches [start, end].
func (r *SQLRepository) CountOverlapping(ctx context.Context, tx *sql.Tx, equipmentID int, start, end time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM reservations
		WHERE equipment_id = ? AND status IN (?, ?)
		AND start_date <= ? AND end_date >= ?`

	var count int
	err := tx.QueryRowContext(ctx, query,
		equipmentID, domain.ReservationStatusPending, domain.ReservationStatusConfirmed,
		end.Format(domain.DateLayout), start.Format(domain.DateLayout),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting overlapping reservations: %w", err)
	}

	return count, nil
}

// FindByIDForUpdate loads a reservation owned by userID inside tx. Someone
// else's reservation is reported as not found.
func (r *SQLRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint, userID uint) (*domain.Reservation, error) {
	query := fmt.Sprintf("SELECT %s FROM reservations r WHERE r.id = ? AND r.user_id = ?%s",
		reservationColumns, r.dialect.ForUpdate(),
	)

	var res domain.Reservation
	err := tx.QueryRowContext(ctx, query, id, userID).Scan(
		&res.ID, &res.UserID, &res.EquipmentID, &res.StartDate, &res.EndDate,
		&res.TotalPrice, &res.Status, &res.Notes, &res.CreatedAt, &res.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("reservation with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying reservation for update: %w", err)
	}

	return &res, nil
}

func (r *SQLRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error {
	query := `UPDATE reservations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating reservation status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("reservation with id %d not found", id))
	}

	return nil
}

// FindByUser lists a user's reservations with their equipment, newest first.
func (r *SQLRepository) FindByUser(ctx context.Context, userID uint) ([]domain.ReservationView, error) {
	query := fmt.Sprintf(`SELECT %s, e.name, e.category, COALESCE(e.size, ''), e.image_url
		FROM reservations r
		JOIN equipment e ON r.equipment_id = e.id
		WHERE r.user_id = ?
		ORDER BY r.created_at DESC, r.id DESC`, reservationColumns)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying user reservations: %w", err)
	}
	defer rows.Close()

	views := []domain.ReservationView{}
	for rows.Next() {
		var v domain.ReservationView
		if err := rows.Scan(
			&v.ID, &v.UserID, &v.EquipmentID, &v.StartDate, &v.EndDate,
			&v.TotalPrice, &v.Status, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
			&v.EquipmentName, &v.Category, &v.Size, &v.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("scanning reservation row: %w", err)
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservation rows: %w", err)
	}

	return views, nil
}

// FindEndedForUpdate lists active reservations whose end date is before
// today, locking them where the dialect allows.
func (r *SQLRepository) FindEndedForUpdate(ctx context.Context, tx *sql.Tx, today time.Time) ([]domain.Reservation, error) {
	query := fmt.Sprintf(`SELECT %s FROM reservations r
		WHERE r.status IN (?, ?) AND r.end_date < ?
		ORDER BY r.equipment_id, r.id%s`, reservationColumns, r.dialect.ForUpdate())

	rows, err := tx.QueryContext(ctx, query,
		domain.ReservationStatusPending, domain.ReservationStatusConfirmed, today.Format(domain.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("querying ended reservations: %w", err)
	}
	defer rows.Close()

	var ended []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(
			&res.ID, &res.UserID, &res.EquipmentID, &res.StartDate, &res.EndDate,
			&res.TotalPrice, &res.Status, &res.Notes, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning reservation row: %w", err)
		}
		ended = append(ended, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservation rows: %w", err)
	}

	return ended, nil
}
