package rules

import (
	"context"

	"mms/internal/domain"
)

type RuleRepository interface {
	Create(ctx context.Context, rule *domain.AutoWorkOrderRule) error
	Save(ctx context.Context, rule *domain.AutoWorkOrderRule) error
	GetByID(ctx context.Context, id int64) (*domain.AutoWorkOrderRule, error)
	List(ctx context.Context) ([]domain.AutoWorkOrderRule, error)
	ListActive(ctx context.Context) ([]domain.AutoWorkOrderRule, error)
}

type EquipmentStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

// WorkOrderSpawner stamps out the work order when a rule fires. Implemented
// by the work-order service.
type WorkOrderSpawner interface {
	CreateFromRule(ctx context.Context, rule *domain.AutoWorkOrderRule, trigger domain.TriggerCondition) (*domain.WorkOrder, error)
}

type SequenceAllocator interface {
	NextCode(ctx context.Context, name, prefix string, width int) (string, error)
}
