package equipment

import (
	"database/sql"

	"go.uber.org/zap"

	"snowrent/internal/equipment/repository"
	"snowrent/internal/infrastructure/database"
)

func NewModule(db *sql.DB, dialect database.Dialect, logger *zap.Logger) *Controller {
	repo := repository.NewSQLRepository(db, dialect)
	svc := NewService(repo)
	uc := NewUseCase(svc)
	return NewController(uc, logger)
}
