package equipment

import (
	"math"
	"time"

	"mms/internal/domain"
)

// costThreshold is the cumulative maintenance spend past which an asset
// takes a flat health deduction.
const costThreshold = 100000

// Score computes the baseline health score for an asset from its runtime
// state. It is the default used when no recent inspection has produced an
// evidence-based value; inspection completion overrides the stored score
// directly.
func Score(e *domain.Equipment, now time.Time) int {
	score := 100.0

	if e.RunningHours > e.NextMaintenanceHours {
		overdue := e.RunningHours - e.NextMaintenanceHours
		score -= math.Min(overdue/10, 30)
	}

	if e.CommissionDate != nil {
		ageYears := math.Floor(now.Sub(*e.CommissionDate).Hours() / (24 * 365))
		if ageYears > 0 {
			score -= math.Min(ageYears*2, 20)
		}
	}

	if e.MaintenanceCost > costThreshold {
		score -= 10
	}

	return clampScore(int(math.Round(score)))
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
