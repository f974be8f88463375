package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"snowrent/internal/auth"
	"snowrent/internal/dto"
	apperrors "snowrent/internal/errors"
)

type ReservationUseCase interface {
	Create(ctx context.Context, userID uint, req dto.CreateReservationRequest) (*dto.CreateReservationResponse, error)
	ListMine(ctx context.Context, userID uint) ([]dto.ReservationDTO, error)
	Cancel(ctx context.Context, userID uint, reservationID uint) error
}

type ReservationController struct {
	useCase ReservationUseCase
	logger  *zap.Logger
}

func NewReservationController(useCase ReservationUseCase, logger *zap.Logger) *ReservationController {
	return &ReservationController{
		useCase: useCase,
		logger:  logger,
	}
}

// Routes mounts the reservation endpoints. They expect auth.Middleware in
// front of them.
func (c *ReservationController) Routes(r chi.Router) {
	r.Post("/", c.Create)
	r.Get("/my", c.ListMine)
	r.Patch("/{id}/cancel", c.Cancel)
}

func (c *ReservationController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		c.writeError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), logger)
		return
	}

	var req dto.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, dto.NewValidationErrorResponse(traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	resp, err := c.useCase.Create(r.Context(), userID, req)
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, resp)
}

func (c *ReservationController) ListMine(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		c.writeError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), logger)
		return
	}

	reservations, err := c.useCase.ListMine(r.Context(), userID)
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, reservations)
}

func (c *ReservationController) Cancel(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		c.writeError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), logger)
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		logger.Warn("invalid reservation id in path", zap.String("id", chi.URLParam(r, "id")))
		c.writeJSON(w, http.StatusBadRequest, dto.NewValidationErrorResponse(traceID, "invalid id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		}))
		return
	}

	if err := c.useCase.Cancel(r.Context(), userID, uint(id)); err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "reservation cancelled"})
}

func (c *ReservationController) writeError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, dto.NewValidationErrorResponse(traceID, ve.Message, ve.Details...))
		return
	}

	status, code := apperrors.HTTPStatus(err)
	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		logger.Error("unexpected error", zap.Error(err))
		message = "an unexpected error occurred"
	case http.StatusConflict:
		logger.Warn("request conflicts with current state", zap.String("code", code), zap.Error(err))
	}

	c.writeJSON(w, status, dto.NewErrorResponse(traceID, status, code, message))
}

func (c *ReservationController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
