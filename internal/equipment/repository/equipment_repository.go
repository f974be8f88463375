package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"snowrent/internal/domain"
	"snowrent/internal/errors"
	"snowrent/internal/infrastructure/database"
)

const equipmentColumns = "id, name, category, COALESCE(size, ''), `condition`, daily_rate, total_quantity, available_quantity, description, image_url, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

type SQLRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLRepository(db *sql.DB, dialect database.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func scanEquipment(s scanner) (*domain.Equipment, error) {
	var e domain.Equipment
	err := s.Scan(
		&e.ID, &e.Name, &e.Category, &e.Size, &e.Condition, &e.DailyRate,
		&e.TotalQuantity, &e.AvailableQuantity, &e.Description, &e.ImageURL,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindAvailable lists items with stock left, ordered by name.
func (r *SQLRepository) FindAvailable(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, error) {
	conds := []string{"available_quantity > 0"}
	var args []any
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Size != "" {
		conds = append(conds, "size = ?")
		args = append(args, f.Size)
	}

	query := fmt.Sprintf("SELECT %s FROM equipment WHERE %s ORDER BY name",
		equipmentColumns, strings.Join(conds, " AND "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying equipment: %w", err)
	}
	defer rows.Close()

	items := []domain.Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning equipment row: %w", err)
		}
		items = append(items, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating equipment rows: %w", err)
	}

	return items, nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int) (*domain.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM equipment WHERE id = ?", equipmentColumns)

	e, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("equipment with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying equipment by id: %w", err)
	}

	return e, nil
}

// FindByIDForUpdate reads an item inside tx, holding its row lock where the
// dialect supports one.
func (r *SQLRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM equipment WHERE id = ?%s", equipmentColumns, r.dialect.ForUpdate())

	e, err := scanEquipment(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("equipment with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying equipment for update: %w", err)
	}

	return e, nil
}

func (r *SQLRepository) ListCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "SELECT DISTINCT category FROM equipment ORDER BY category")
}

func (r *SQLRepository) ListSizes(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "SELECT DISTINCT size FROM equipment WHERE size IS NOT NULL AND size <> '' ORDER BY size")
}

func (r *SQLRepository) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying distinct values: %w", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning distinct value: %w", err)
		}
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating distinct values: %w", err)
	}

	return values, nil
}

// DecrementAvailable takes one unit out of stock. It reports a conflict when
// nothing is left.
func (r *SQLRepository) DecrementAvailable(ctx context.Context, tx *sql.Tx, id int) error {
	query := `UPDATE equipment SET available_quantity = available_quantity - 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND available_quantity > 0`

	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("decrementing equipment availability: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewConflictError(fmt.Sprintf("equipment with id %d is out of stock", id))
	}

	return nil
}

// IncrementAvailable returns n units to stock, never above total_quantity.
func (r *SQLRepository) IncrementAvailable(ctx context.Context, tx *sql.Tx, id int, n int) error {
	query := `UPDATE equipment SET available_quantity = CASE
			WHEN available_quantity + ? > total_quantity THEN total_quantity
			ELSE available_quantity + ? END,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, n, n, id)
	if err != nil {
		return fmt.Errorf("incrementing equipment availability: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("equipment with id %d not found", id))
	}

	return nil
}
