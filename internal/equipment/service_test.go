package equipment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snowrent/internal/domain"
	apperrors "snowrent/internal/errors"
)

type mockRepository struct {
	FindAvailableFunc  func(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, error)
	FindByIDFunc       func(ctx context.Context, id int) (*domain.Equipment, error)
	ListCategoriesFunc func(ctx context.Context) ([]string, error)
	ListSizesFunc      func(ctx context.Context) ([]string, error)
}

func (m *mockRepository) FindAvailable(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, error) {
	return m.FindAvailableFunc(ctx, f)
}

func (m *mockRepository) FindByID(ctx context.Context, id int) (*domain.Equipment, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) ListCategories(ctx context.Context) ([]string, error) {
	return m.ListCategoriesFunc(ctx)
}

func (m *mockRepository) ListSizes(ctx context.Context) ([]string, error) {
	return m.ListSizesFunc(ctx)
}

func TestListAvailable_RejectsUnknownCategory(t *testing.T) {
	repo := &mockRepository{FindAvailableFunc: func(context.Context, domain.EquipmentFilter) ([]domain.Equipment, error) {
		t.Fatal("repository should not be called")
		return nil, nil
	}}

	_, err := NewService(repo).ListAvailable(context.Background(), domain.EquipmentFilter{Category: "sled"})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "category", ve.Details[0].Field)
}

func TestUseCase_ListMapsToDTO(t *testing.T) {
	desc := "All-mountain board"
	repo := &mockRepository{FindAvailableFunc: func(_ context.Context, f domain.EquipmentFilter) ([]domain.Equipment, error) {
		assert.Equal(t, "snowboard", f.Category)
		return []domain.Equipment{{
			ID: 2, Name: "Burton Custom Snowboard", Category: "snowboard", Size: "158cm",
			Condition: "good", DailyRate: 600, TotalQuantity: 8, AvailableQuantity: 5, Description: &desc,
		}}, nil
	}}

	items, err := NewUseCase(NewService(repo)).List(context.Background(), ListRequest{Category: "snowboard"})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 600.0, items[0].DailyRate)
	assert.Equal(t, 5, items[0].AvailableQuantity)
	assert.Equal(t, &desc, items[0].Description)
}

func TestUseCase_GetPropagatesNotFound(t *testing.T) {
	repo := &mockRepository{FindByIDFunc: func(_ context.Context, id int) (*domain.Equipment, error) {
		return nil, apperrors.NewNotFoundError("equipment with id 9 not found")
	}}

	_, err := NewUseCase(NewService(repo)).Get(context.Background(), 9)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
