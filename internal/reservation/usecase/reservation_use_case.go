package usecase

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"snowrent/internal/clock"
	"snowrent/internal/domain"
	"snowrent/internal/dto"
	"snowrent/internal/errors"
	"snowrent/internal/infrastructure/database"
)

type ReservationService interface {
	Reserve(ctx context.Context, userID uint, equipmentID int, start, end time.Time, notes *string) (*domain.Reservation, error)
	Cancel(ctx context.Context, userID uint, reservationID uint) error
}

type ReservationRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.ReservationView, error)
}

// Backoff before attempt n+1 is retryBackoffs[n-1], plus up to 20% jitter.
var retryBackoffs = []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

type ReservationUseCase struct {
	svc              ReservationService
	repo             ReservationRepository
	clock            clock.Clock
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewReservationUseCase(
	svc ReservationService,
	repo ReservationRepository,
	clk clock.Clock,
	logger *zap.Logger,
	maxRetryAttempts int,
) *ReservationUseCase {
	return &ReservationUseCase{
		svc:              svc,
		repo:             repo,
		clock:            clk,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *ReservationUseCase) Create(ctx context.Context, userID uint, req dto.CreateReservationRequest) (*dto.CreateReservationResponse, error) {
	start, end, err := uc.validateCreate(req)
	if err != nil {
		return nil, err
	}

	var created *domain.Reservation
	err = uc.withRetry(ctx, "create", func() error {
		var err error
		created, err = uc.svc.Reserve(ctx, userID, req.EquipmentID, start, end, normalizeNotes(req.Notes))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateReservationResponse{
		Message:       "reservation created",
		ReservationID: created.ID,
		TotalPrice:    created.TotalPrice,
	}, nil
}

func (uc *ReservationUseCase) ListMine(ctx context.Context, userID uint) ([]dto.ReservationDTO, error) {
	views, err := uc.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list reservations", err)
	}

	out := make([]dto.ReservationDTO, 0, len(views))
	for _, v := range views {
		out = append(out, toDTO(v))
	}
	return out, nil
}

func (uc *ReservationUseCase) Cancel(ctx context.Context, userID uint, reservationID uint) error {
	return uc.withRetry(ctx, "cancel", func() error {
		return uc.svc.Cancel(ctx, userID, reservationID)
	})
}

func (uc *ReservationUseCase) validateCreate(req dto.CreateReservationRequest) (time.Time, time.Time, error) {
	var details []errors.ValidationDetail
	if req.EquipmentID <= 0 {
		details = append(details, errors.ValidationDetail{Field: "equipment_id", Message: "equipment_id must be a positive integer"})
	}

	start, startErr := time.Parse(domain.DateLayout, req.StartDate)
	if startErr != nil {
		details = append(details, errors.ValidationDetail{Field: "start_date", Message: "start_date must be a YYYY-MM-DD date"})
	}
	end, endErr := time.Parse(domain.DateLayout, req.EndDate)
	if endErr != nil {
		details = append(details, errors.ValidationDetail{Field: "end_date", Message: "end_date must be a YYYY-MM-DD date"})
	}
	if len(details) > 0 {
		return time.Time{}, time.Time{}, errors.NewValidationError("invalid reservation request", details...)
	}

	if start.Before(clock.Today(uc.clock)) {
		return time.Time{}, time.Time{}, errors.NewValidationError("start date cannot be earlier than today",
			errors.ValidationDetail{Field: "start_date", Message: "start_date is in the past"})
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.NewValidationError("end date must be after start date",
			errors.ValidationDetail{Field: "end_date", Message: "end_date must be after start_date"})
	}

	return start, end, nil
}

// withRetry reruns op while the database reports a deadlock or lock wait
// timeout, up to maxRetryAttempts attempts in total.
func (uc *ReservationUseCase) withRetry(ctx context.Context, operation string, op func() error) error {
	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}

		if !database.IsRetryable(err) {
			return err
		}

		if attempt == uc.maxRetryAttempts {
			break
		}

		uc.logger.Warn("deadlock detected, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", uc.maxRetryAttempts),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff(attempt)):
		}
	}

	uc.logger.Error("max retries exceeded", zap.String("operation", operation))
	return errors.NewDeadlockError("max retries exceeded")
}

func backoff(attempt int) time.Duration {
	base := retryBackoffs[len(retryBackoffs)-1]
	if attempt-1 < len(retryBackoffs) {
		base = retryBackoffs[attempt-1]
	}
	if base <= 0 {
		return 0
	}
	return base + rand.N(base/5)
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func toDTO(v domain.ReservationView) dto.ReservationDTO {
	return dto.ReservationDTO{
		ID:            v.ID,
		UserID:        v.UserID,
		EquipmentID:   v.EquipmentID,
		StartDate:     v.StartDate.Format(domain.DateLayout),
		EndDate:       v.EndDate.Format(domain.DateLayout),
		TotalPrice:    v.TotalPrice,
		Status:        v.Status,
		Notes:         v.Notes,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
		EquipmentName: v.EquipmentName,
		Category:      v.Category,
		Size:          v.Size,
		ImageURL:      v.ImageURL,
	}
}
