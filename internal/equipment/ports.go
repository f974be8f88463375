package equipment

import (
	"context"

	"snowrent/internal/domain"
)

type UseCase interface {
	List(ctx context.Context, req ListRequest) ([]EquipmentDTO, error)
	Get(ctx context.Context, id int) (*EquipmentDTO, error)
	Categories(ctx context.Context) ([]string, error)
	Sizes(ctx context.Context) ([]string, error)
}

type Service interface {
	ListAvailable(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, error)
	GetByID(ctx context.Context, id int) (*domain.Equipment, error)
	Categories(ctx context.Context) ([]string, error)
	Sizes(ctx context.Context) ([]string, error)
}

type Repository interface {
	FindAvailable(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, error)
	FindByID(ctx context.Context, id int) (*domain.Equipment, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListSizes(ctx context.Context) ([]string, error)
}
