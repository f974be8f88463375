package equipment

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"snowrent/internal/dto"
	apperrors "snowrent/internal/errors"
)

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

// Routes mounts the public catalog endpoints.
func (c *Controller) Routes(r chi.Router) {
	r.Get("/", c.HandleList)
	r.Get("/categories/list", c.HandleCategories)
	r.Get("/sizes/list", c.HandleSizes)
	r.Get("/{id}", c.HandleGet)
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	items, err := c.useCase.List(r.Context(), ListRequest{
		Category: r.URL.Query().Get("category"),
		Size:     r.URL.Query().Get("size"),
	})
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, items)
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		logger.Warn("invalid equipment id in path", zap.String("id", chi.URLParam(r, "id")))
		c.writeJSON(w, http.StatusBadRequest, dto.NewValidationErrorResponse(traceID, "invalid id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		}))
		return
	}

	item, err := c.useCase.Get(r.Context(), id)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, item)
}

func (c *Controller) HandleCategories(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	categories, err := c.useCase.Categories(r.Context())
	if err != nil {
		c.handleUseCaseError(w, traceID, err, c.logger.With(zap.String("traceId", traceID)))
		return
	}

	c.writeJSON(w, http.StatusOK, categories)
}

func (c *Controller) HandleSizes(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	sizes, err := c.useCase.Sizes(r.Context())
	if err != nil {
		c.handleUseCaseError(w, traceID, err, c.logger.With(zap.String("traceId", traceID)))
		return
	}

	c.writeJSON(w, http.StatusOK, sizes)
}

func (c *Controller) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
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
