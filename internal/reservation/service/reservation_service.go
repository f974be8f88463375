package service

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"snowrent/internal/domain"
	"snowrent/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type EquipmentRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.Equipment, error)
	DecrementAvailable(ctx context.Context, tx *sql.Tx, id int) error
	IncrementAvailable(ctx context.Context, tx *sql.Tx, id int, n int) error
}

type ReservationRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, res domain.Reservation) (uint, error)
	CountOverlapping(ctx context.Context, tx *sql.Tx, equipmentID int, start, end time.Time) (int, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint, userID uint) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error
	FindEndedForUpdate(ctx context.Context, tx *sql.Tx, today time.Time) ([]domain.Reservation, error)
}

// ReservationService runs every stock-changing operation in a single
// transaction that holds the equipment row lock.
type ReservationService struct {
	db              TransactionManager
	txOptions       *sql.TxOptions
	equipmentRepo   EquipmentRepository
	reservationRepo ReservationRepository
	logger          *zap.Logger
	txTimeout       time.Duration
}

func NewReservationService(
	db TransactionManager,
	txOptions *sql.TxOptions,
	equipmentRepo EquipmentRepository,
	reservationRepo ReservationRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *ReservationService {
	return &ReservationService{
		db:              db,
		txOptions:       txOptions,
		equipmentRepo:   equipmentRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
		txTimeout:       txTimeout,
	}
}

// RentalDays is the number of days billed for [start, end), rounded up.
func RentalDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// Reserve books one unit of an item for [start, end]. The caller has already
// checked the dates.
func (s *ReservationService) Reserve(
	ctx context.Context,
	userID uint,
	equipmentID int,
	start, end time.Time,
	notes *string,
) (*domain.Reservation, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, s.txOptions)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// Rollback after Commit is a no-op.
	defer tx.Rollback()

	equipment, err := s.equipmentRepo.FindByIDForUpdate(txCtx, tx, equipmentID)
	if err != nil {
		return nil, err
	}

	if !equipment.InStock() {
		s.logger.Warn("reservation rejected: out of stock", zap.Int("equipmentId", equipmentID))
		return nil, errors.NewConflictError("equipment is out of stock")
	}

	overlapping, err := s.reservationRepo.CountOverlapping(txCtx, tx, equipmentID, start, end)
	if err != nil {
		s.logger.Error("failed to count overlapping reservations", zap.Int("equipmentId", equipmentID), zap.Error(err))
		return nil, err
	}

	if overlapping >= equipment.TotalQuantity {
		s.logger.Warn("reservation rejected: dates already booked",
			zap.Int("equipmentId", equipmentID),
			zap.Int("overlapping", overlapping),
			zap.Int("totalQuantity", equipment.TotalQuantity),
		)
		return nil, errors.NewConflictError("equipment is already booked for the selected dates")
	}

	res := domain.Reservation{
		UserID:      userID,
		EquipmentID: equipmentID,
		StartDate:   start,
		EndDate:     end,
		TotalPrice:  equipment.DailyRate * float64(RentalDays(start, end)),
		Status:      domain.ReservationStatusPending,
		Notes:       notes,
	}

	res.ID, err = s.reservationRepo.Insert(txCtx, tx, res)
	if err != nil {
		s.logger.Error("failed to insert reservation", zap.Int("equipmentId", equipmentID), zap.Error(err))
		return nil, err
	}

	if err := s.equipmentRepo.DecrementAvailable(txCtx, tx, equipmentID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("reservationId", res.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("reservation created",
		zap.Uint("reservationId", res.ID),
		zap.Uint("userId", userID),
		zap.Int("equipmentId", equipmentID),
		zap.Float64("totalPrice", res.TotalPrice),
	)

	return &res, nil
}

// Cancel cancels a user's own active reservation and returns its unit to
// stock.
func (s *ReservationService) Cancel(ctx context.Context, userID uint, reservationID uint) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, s.txOptions)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	res, err := s.reservationRepo.FindByIDForUpdate(txCtx, tx, reservationID, userID)
	if err != nil {
		return err
	}

	switch res.Status {
	case domain.ReservationStatusCancelled:
		return errors.NewConflictError("reservation is already cancelled")
	case domain.ReservationStatusCompleted:
		return errors.NewConflictError("completed reservations cannot be cancelled")
	}

	if err := s.reservationRepo.UpdateStatus(txCtx, tx, res.ID, domain.ReservationStatusCancelled); err != nil {
		return err
	}

	if err := s.equipmentRepo.IncrementAvailable(txCtx, tx, res.EquipmentID, 1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("reservationId", res.ID), zap.Error(err))
		return err
	}

	s.logger.Info("reservation cancelled", zap.Uint("reservationId", res.ID), zap.Uint("userId", userID))
	return nil
}

// CompleteEnded marks every active reservation that ended before today as
// completed and restores the stock it held. It returns how many changed.
func (s *ReservationService) CompleteEnded(ctx context.Context, today time.Time) (int, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, s.txOptions)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	ended, err := s.reservationRepo.FindEndedForUpdate(txCtx, tx, today)
	if err != nil {
		return 0, err
	}
	if len(ended) == 0 {
		return 0, nil
	}

	// ended is ordered by equipment id, so locks are taken in a stable order.
	released := map[int]int{}
	var order []int
	for _, res := range ended {
		if err := s.reservationRepo.UpdateStatus(txCtx, tx, res.ID, domain.ReservationStatusCompleted); err != nil {
			return 0, fmt.Errorf("completing reservation %d: %w", res.ID, err)
		}
		if released[res.EquipmentID] == 0 {
			order = append(order, res.EquipmentID)
		}
		released[res.EquipmentID]++
	}

	for _, equipmentID := range order {
		if err := s.equipmentRepo.IncrementAvailable(txCtx, tx, equipmentID, released[equipmentID]); err != nil {
			return 0, fmt.Errorf("restoring stock of equipment %d: %w", equipmentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Error(err))
		return 0, err
	}

	s.logger.Info("ended reservations completed", zap.Int("count", len(ended)), zap.Int("equipmentCount", len(order)))
	return len(ended), nil
}
