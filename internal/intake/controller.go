package intake

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"snowrent/internal/domain"
	"snowrent/internal/dto"
	apperrors "snowrent/internal/errors"
	"snowrent/internal/pricing"
)

type UseCase interface {
	Quote(ctx context.Context, sub domain.RentalSubmission) (*QuoteResponse, error)
	Submit(ctx context.Context, sub domain.RentalSubmission) (*SubmitResponse, error)
	Find(ctx context.Context, reference string) (*RentalRequestDTO, error)
	PriceTable() *pricing.Table
}

type Controller struct {
	useCase UseCase
	logger  *zap.Logger
}

func NewController(useCase UseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

// Routes mounts the public endpoints used by the reservation form.
func (c *Controller) Routes(r chi.Router) {
	r.Post("/", c.HandleSubmit)
	r.Post("/quote", c.HandleQuote)
	r.Get("/price-table", c.HandlePriceTable)
	r.Get("/{reference}", c.HandleFind)
}

func (c *Controller) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sub, ok := c.decode(w, r, traceID, logger)
	if !ok {
		return
	}

	resp, err := c.useCase.Submit(r.Context(), sub)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	resp.TraceID = traceID
	c.writeJSON(w, http.StatusCreated, resp)
}

func (c *Controller) HandleQuote(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sub, ok := c.decode(w, r, traceID, logger)
	if !ok {
		return
	}

	resp, err := c.useCase.Quote(r.Context(), sub)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandlePriceTable(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.useCase.PriceTable())
}

func (c *Controller) HandleFind(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	resp, err := c.useCase.Find(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) decode(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (domain.RentalSubmission, bool) {
	var sub domain.RentalSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		logger.Warn("invalid rental submission body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, dto.NewValidationErrorResponse(traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: err.Error(),
		}))
		return sub, false
	}
	return sub, true
}

func (c *Controller) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		logger.Info("rental request rejected", zap.String("reason", ve.Message))
		c.writeJSON(w, http.StatusBadRequest, dto.NewValidationErrorResponse(traceID, ve.Message, ve.Details...))
		return
	}

	status, code := apperrors.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("unexpected error", zap.Error(err))
		message = "an unexpected error occurred"
	}

	c.writeJSON(w, status, dto.NewErrorResponse(traceID, status, code, message))
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
