package pm

import (
	"context"
	"time"

	"mms/internal/domain"
	"mms/internal/repository"
)

type PMRepository interface {
	Create(ctx context.Context, s *domain.PMSchedule) error
	Save(ctx context.Context, s *domain.PMSchedule) error
	GetByID(ctx context.Context, id int64) (*domain.PMSchedule, error)
	List(ctx context.Context, f repository.PMFilter) ([]domain.PMSchedule, int64, error)
	FindDueBefore(ctx context.Context, now time.Time) ([]domain.PMSchedule, error)
	ExistsForEquipment(ctx context.Context, equipmentID int64, freq domain.PMFrequency) (bool, error)
}

type EquipmentStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	ListActiveByType(ctx context.Context, t domain.EquipmentType) ([]domain.Equipment, error)
	AddMaintenanceCost(ctx context.Context, id int64, cost float64, at time.Time) error
}

type SequenceAllocator interface {
	NextCode(ctx context.Context, name, prefix string, width int) (string, error)
}
