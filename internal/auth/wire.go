package auth

import (
	"database/sql"

	"go.uber.org/zap"

	"snowrent/internal/auth/repository"
)

// NewModule wires the user store, hasher and token manager behind the auth
// routes.
func NewModule(db *sql.DB, tokens *TokenManager, logger *zap.Logger) *Controller {
	repo := repository.NewSQLRepository(db)
	svc := NewService(repo, tokens, NewPasswordHasher(0), logger)
	return NewController(svc, logger)
}
