package equipment

import (
	"context"
	"fmt"

	"snowrent/internal/domain"
	apperrors "snowrent/internal/errors"
)

type equipmentService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &equipmentService{repo: repo}
}

func (s *equipmentService) ListAvailable(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, error) {
	if f.Category != "" && !domain.IsValidCategory(f.Category) {
		msg := fmt.Sprintf("unknown category %q", f.Category)
		return nil, apperrors.NewValidationError(msg, apperrors.ValidationDetail{
			Field:   "category",
			Message: "category must be one of ski, snowboard, boots, helmet, clothing",
		})
	}
	return s.repo.FindAvailable(ctx, f)
}

func (s *equipmentService) GetByID(ctx context.Context, id int) (*domain.Equipment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *equipmentService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

func (s *equipmentService) Sizes(ctx context.Context) ([]string, error) {
	return s.repo.ListSizes(ctx)
}
