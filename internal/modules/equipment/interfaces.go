package equipment

import (
	"context"

	"mms/internal/domain"
	"mms/internal/repository"
)

// EquipmentRepository defines the persistence operations the service needs.
type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	Save(ctx context.Context, e *domain.Equipment) error
	SaveVersioned(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, int64, error)
	FindByParent(ctx context.Context, parentID *int64) ([]domain.Equipment, error)
	HasActiveChildren(ctx context.Context, id int64) (bool, error)
}

// SequenceAllocator hands out atomic entity codes.
type SequenceAllocator interface {
	NextCode(ctx context.Context, name, prefix string, width int) (string, error)
}
