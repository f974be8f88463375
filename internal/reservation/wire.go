package reservation

import (
	"database/sql"

	"go.uber.org/zap"

	"snowrent/internal/clock"
	"snowrent/internal/config"
	equipmentrepo "snowrent/internal/equipment/repository"
	"snowrent/internal/infrastructure/database"
	"snowrent/internal/reservation/controller"
	reservationrepo "snowrent/internal/reservation/repository"
	"snowrent/internal/reservation/service"
	"snowrent/internal/reservation/usecase"
)

type Module struct {
	Controller *controller.ReservationController
	// Service is shared with the completion job.
	Service *service.ReservationService
}

func NewModule(db *sql.DB, dialect database.Dialect, clk clock.Clock, cfg config.ReservationConfig, logger *zap.Logger) *Module {
	equipmentRepo := equipmentrepo.NewSQLRepository(db, dialect)
	reservationRepo := reservationrepo.NewSQLRepository(db, dialect)

	svc := service.NewReservationService(
		db,
		dialect.TxOptions(),
		equipmentRepo,
		reservationRepo,
		logger,
		cfg.TxTimeout,
	)

	uc := usecase.NewReservationUseCase(svc, reservationRepo, clk, logger, cfg.MaxRetries)

	return &Module{
		Controller: controller.NewReservationController(uc, logger),
		Service:    svc,
	}
}
