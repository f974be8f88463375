package equipment

import (
	"context"

	"snowrent/internal/domain"
)

type catalogUseCase struct {
	service Service
}

func NewUseCase(service Service) UseCase {
	return &catalogUseCase{service: service}
}

func (uc *catalogUseCase) List(ctx context.Context, req ListRequest) ([]EquipmentDTO, error) {
	items, err := uc.service.ListAvailable(ctx, domain.EquipmentFilter{
		Category: req.Category,
		Size:     req.Size,
	})
	if err != nil {
		return nil, err
	}

	out := make([]EquipmentDTO, 0, len(items))
	for _, e := range items {
		out = append(out, toDTO(e))
	}
	return out, nil
}

func (uc *catalogUseCase) Get(ctx context.Context, id int) (*EquipmentDTO, error) {
	e, err := uc.service.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*e)
	return &dto, nil
}

func (uc *catalogUseCase) Categories(ctx context.Context) ([]string, error) {
	return uc.service.Categories(ctx)
}

func (uc *catalogUseCase) Sizes(ctx context.Context) ([]string, error) {
	return uc.service.Sizes(ctx)
}

func toDTO(e domain.Equipment) EquipmentDTO {
	return EquipmentDTO{
		ID:                e.ID,
		Name:              e.Name,
		Category:          e.Category,
		Size:              e.Size,
		Condition:         e.Condition,
		DailyRate:         e.DailyRate,
		TotalQuantity:     e.TotalQuantity,
		AvailableQuantity: e.AvailableQuantity,
		Description:       e.Description,
		ImageURL:          e.ImageURL,
		CreatedAt:         e.CreatedAt,
	}
}
