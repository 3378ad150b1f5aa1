package inspection

import (
	"context"

	"mms/internal/domain"
	"mms/internal/repository"
)

type InspectionRepository interface {
	Create(ctx context.Context, i *domain.Inspection) error
	Save(ctx context.Context, i *domain.Inspection) error
	GetByID(ctx context.Context, id int64) (*domain.Inspection, error)
	List(ctx context.Context, f repository.InspectionFilter) ([]domain.Inspection, int64, error)
}

type TemplateRepository interface {
	Create(ctx context.Context, t *domain.InspectionTemplate) error
	Save(ctx context.Context, t *domain.InspectionTemplate) error
	GetByID(ctx context.Context, id int64) (*domain.InspectionTemplate, error)
	List(ctx context.Context, activeOnly bool) ([]domain.InspectionTemplate, error)
}

// EquipmentStore is the narrow slice of the equipment repository the
// inspection lifecycle needs: the health snapshot in, the verdict out.
type EquipmentStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	UpdateHealth(ctx context.Context, id int64, score int) error
}

// BacklogGenerator converts one severe finding into a backlog item. The
// backlog module provides the implementation.
type BacklogGenerator interface {
	GenerateFromFinding(ctx context.Context, insp *domain.Inspection, f domain.Finding, createdBy int64) (*domain.Backlog, error)
}

type SequenceAllocator interface {
	NextCode(ctx context.Context, name, prefix string, width int) (string, error)
}
