package equipment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"snowrent/internal/dto"
	apperrors "snowrent/internal/errors"
)

type mockUseCase struct {
	ListFunc       func(ctx context.Context, req ListRequest) ([]EquipmentDTO, error)
	GetFunc        func(ctx context.Context, id int) (*EquipmentDTO, error)
	CategoriesFunc func(ctx context.Context) ([]string, error)
	SizesFunc      func(ctx context.Context) ([]string, error)
}

func (m *mockUseCase) List(ctx context.Context, req ListRequest) ([]EquipmentDTO, error) {
	return m.ListFunc(ctx, req)
}

func (m *mockUseCase) Get(ctx context.Context, id int) (*EquipmentDTO, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockUseCase) Categories(ctx context.Context) ([]string, error) {
	return m.CategoriesFunc(ctx)
}

func (m *mockUseCase) Sizes(ctx context.Context) ([]string, error) {
	return m.SizesFunc(ctx)
}

func newTestRouter(uc UseCase) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/equipment", NewController(uc, zap.NewNop()).Routes)
	return r
}

func TestHandleList_PassesFilters(t *testing.T) {
	var got ListRequest
	uc := &mockUseCase{ListFunc: func(_ context.Context, req ListRequest) ([]EquipmentDTO, error) {
		got = req
		return []EquipmentDTO{{ID: 1, Name: "Burton Custom Snowboard", Category: "snowboard"}}, nil
	}}

	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/equipment?category=snowboard&size=158cm", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ListRequest{Category: "snowboard", Size: "158cm"}, got)

	var body []EquipmentDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 1)
}

func TestHandleList_InvalidCategory(t *testing.T) {
	uc := &mockUseCase{ListFunc: func(context.Context, ListRequest) ([]EquipmentDTO, error) {
		return nil, apperrors.NewValidationError("unknown category \"sled\"", apperrors.ValidationDetail{Field: "category"})
	}}

	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/equipment?category=sled", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error)
	assert.Equal(t, "category", body.Details[0].Field)
}

func TestHandleGet_NotFound(t *testing.T) {
	uc := &mockUseCase{GetFunc: func(_ context.Context, id int) (*EquipmentDTO, error) {
		return nil, apperrors.NewNotFoundError("equipment with id 42 not found")
	}}

	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/equipment/42", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.NotEmpty(t, body.TraceID)
}

func TestHandleGet_InvalidID(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&mockUseCase{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/equipment/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCategories_StaticRouteWins(t *testing.T) {
	uc := &mockUseCase{CategoriesFunc: func(context.Context) ([]string, error) {
		return []string{"boots", "ski"}, nil
	}}

	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/equipment/categories/list", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["boots","ski"]`, rec.Body.String())
}

func TestHandleSizes_InternalErrorHidesCause(t *testing.T) {
	uc := &mockUseCase{SizesFunc: func(context.Context) ([]string, error) {
		return nil, errors.New("connection refused")
	}}

	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/equipment/sizes/list", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
