package backlog

import (
	"context"

	"mms/internal/domain"
	"mms/internal/repository"
)

type BacklogRepository interface {
	Create(ctx context.Context, b *domain.Backlog) error
	Save(ctx context.Context, b *domain.Backlog) error
	GetByID(ctx context.Context, id int64) (*domain.Backlog, error)
	List(ctx context.Context, f repository.BacklogFilter) ([]domain.Backlog, int64, error)
}

// WorkOrderGenerator promotes one eligible backlog into a work order. The
// work-order module provides the implementation; the rule engine reuses the
// same generator for auto-spawned orders.
type WorkOrderGenerator interface {
	CreateFromBacklog(ctx context.Context, b *domain.Backlog, origin domain.WorkOrderOrigin, createdBy int64) (*domain.WorkOrder, error)
}

type SequenceAllocator interface {
	NextCode(ctx context.Context, name, prefix string, width int) (string, error)
}
