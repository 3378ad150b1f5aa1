package equipment

import (
	"testing"
	"time"

	"mms/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestScore_NewEquipment(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	e := &domain.Equipment{
		RunningHours:         100,
		NextMaintenanceHours: 1000,
		CommissionDate:       &now,
	}

	assert.Equal(t, 100, Score(e, now))
}

func TestScore_OverdueHoursCappedAt30(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	e := &domain.Equipment{
		RunningHours:         2000,
		NextMaintenanceHours: 1000, // 1000 hours overdue, 100 penalty capped to 30
		CommissionDate:       &now,
	}

	assert.Equal(t, 70, Score(e, now))
}

func TestScore_AgePenaltyCappedAt20(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	commissioned := now.AddDate(-15, 0, 0)
	e := &domain.Equipment{
		RunningHours:         100,
		NextMaintenanceHours: 1000,
		CommissionDate:       &commissioned,
	}

	assert.Equal(t, 80, Score(e, now))
}

func TestScore_HighCostPenalty(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	e := &domain.Equipment{
		RunningHours:         100,
		NextMaintenanceHours: 1000,
		CommissionDate:       &now,
		MaintenanceCost:      150000,
	}

	assert.Equal(t, 90, Score(e, now))
}

func TestScore_NeverBelowZero(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	commissioned := now.AddDate(-20, 0, 0)
	e := &domain.Equipment{
		RunningHours:         5000,
		NextMaintenanceHours: 1000,
		CommissionDate:       &commissioned,
		MaintenanceCost:      200000,
	}

	score := Score(e, now)
	assert.GreaterOrEqual(t, score, 0)
	assert.Equal(t, 40, score) // 100 - 30 - 20 - 10
}
