package intake

import (
	"database/sql"

	"go.uber.org/zap"

	"snowrent/internal/clock"
	"snowrent/internal/intake/repository"
	"snowrent/internal/pricing"
)

func NewModule(db *sql.DB, table *pricing.Table, notifier Notifier, clk clock.Clock, logger *zap.Logger) *Controller {
	repo := repository.NewSQLRepository(db)
	svc := NewService(repo, notifier, table, clk, logger)
	return NewController(svc, logger)
}
