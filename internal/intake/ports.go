package intake

import (
	"context"

	"snowrent/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, req domain.RentalRequest) error
	FindByReference(ctx context.Context, reference string) (*domain.RentalRequest, error)
}

// Notifier tells staff and the applicant about a new request.
type Notifier interface {
	RentalRequestReceived(ctx context.Context, req domain.RentalRequest) error
}
