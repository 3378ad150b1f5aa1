package workorder

import (
	"context"
	"time"

	"mms/internal/domain"
	"mms/internal/repository"
)

type WorkOrderRepository interface {
	Create(ctx context.Context, w *domain.WorkOrder) error
	Save(ctx context.Context, w *domain.WorkOrder) error
	GetByID(ctx context.Context, id int64) (*domain.WorkOrder, error)
	List(ctx context.Context, f repository.WorkOrderFilter) ([]domain.WorkOrder, int64, error)
}

type BacklogStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Backlog, error)
	Save(ctx context.Context, b *domain.Backlog) error
}

// EquipmentStore receives maintenance write-backs when a work order completes.
type EquipmentStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	ApplyMaintenance(ctx context.Context, id int64, lastMaintenanceHours float64, at time.Time) error
	AddMaintenanceCost(ctx context.Context, id int64, cost float64, at time.Time) error
}

type SequenceAllocator interface {
	NextCode(ctx context.Context, name, prefix string, width int) (string, error)
}
