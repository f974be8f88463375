package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"snowrent/internal/domain"
	"snowrent/internal/errors"
	"snowrent/internal/infrastructure/database"
)

type SQLRepository struct {
	db *sql.DB
}

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// Insert stores req. Applicant, persons and detail are kept as JSON
// documents. A reused reference is reported as a conflict.
func (r *SQLRepository) Insert(ctx context.Context, req domain.RentalRequest) error {
	applicant, err := json.Marshal(req.Applicant)
	if err != nil {
		return fmt.Errorf("encoding applicant: %w", err)
	}
	persons, err := json.Marshal(req.Persons)
	if err != nil {
		return fmt.Errorf("encoding persons: %w", err)
	}
	detail, err := json.Marshal(req.Detail)
	if err != nil {
		return fmt.Errorf("encoding quote detail: %w", err)
	}

	query := `INSERT INTO rental_requests
		(id, reference, applicant_name, applicant_email, applicant, persons,
		 start_date, end_date, rent_store, return_store, days, total_price, detail, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		req.ID, req.Reference, req.Applicant.Name, req.Applicant.Email, string(applicant), string(persons),
		req.StartDate.Format(domain.DateLayout), req.EndDate.Format(domain.DateLayout),
		string(req.RentStore), string(req.ReturnStore), req.Days, req.TotalPrice, string(detail), req.Status,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return errors.NewConflictError(fmt.Sprintf("reference %s already in use", req.Reference))
		}
		return fmt.Errorf("inserting rental request: %w", err)
	}

	return nil
}

func (r *SQLRepository) FindByReference(ctx context.Context, reference string) (*domain.RentalRequest, error) {
	query := `SELECT id, reference, applicant, persons, start_date, end_date, rent_store, return_store,
		days, total_price, detail, status, created_at
		FROM rental_requests WHERE reference = ?`

	var req domain.RentalRequest
	var applicant, persons, detail []byte
	var rentStore, returnStore string
	err := r.db.QueryRowContext(ctx, query, reference).Scan(
		&req.ID, &req.Reference, &applicant, &persons, &req.StartDate, &req.EndDate,
		&rentStore, &returnStore, &req.Days, &req.TotalPrice, &detail, &req.Status, &req.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("rental request %s not found", reference))
	}
	if err != nil {
		return nil, fmt.Errorf("querying rental request: %w", err)
	}

	if err := json.Unmarshal(applicant, &req.Applicant); err != nil {
		return nil, fmt.Errorf("decoding applicant: %w", err)
	}
	if err := json.Unmarshal(persons, &req.Persons); err != nil {
		return nil, fmt.Errorf("decoding persons: %w", err)
	}
	if err := json.Unmarshal(detail, &req.Detail); err != nil {
		return nil, fmt.Errorf("decoding quote detail: %w", err)
	}
	req.RentStore = domain.Store(rentStore)
	req.ReturnStore = domain.Store(returnStore)

	return &req, nil
}
