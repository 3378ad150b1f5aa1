package pm

import (
	"time"

	"mms/internal/domain"
)

// NextDue computes when a schedule is next due, anchored on the last
// performed date (or now for a fresh schedule). Month-based frequencies
// clamp to the last day of a shorter target month, so Jan 31 plus one month
// lands on Feb 29 in a leap year rather than spilling into March.
func NextDue(freq domain.PMFrequency, lastPerformed *time.Time, now time.Time) time.Time {
	anchor := now
	if lastPerformed != nil {
		anchor = *lastPerformed
	}

	switch freq {
	case domain.FrequencyDaily:
		return anchor.AddDate(0, 0, 1)
	case domain.FrequencyWeekly:
		return anchor.AddDate(0, 0, 7)
	case domain.FrequencyMonthly:
		return addMonthsClamped(anchor, 1)
	case domain.FrequencyQuarterly:
		return addMonthsClamped(anchor, 3)
	case domain.FrequencySemiAnnually:
		return addMonthsClamped(anchor, 6)
	case domain.FrequencyAnnually:
		return addMonthsClamped(anchor, 12)
	}
	return anchor
}

// addMonthsClamped advances by whole months without day overflow.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month()); d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func validStatus(s domain.PMStatus) bool {
	switch s {
	case domain.PMScheduled, domain.PMInProgress, domain.PMCompleted, domain.PMOverdue:
		return true
	}
	return false
}

func validFrequency(f domain.PMFrequency) bool {
	switch f {
	case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyMonthly,
		domain.FrequencyQuarterly, domain.FrequencySemiAnnually, domain.FrequencyAnnually:
		return true
	}
	return false
}

// defaultChecklist seeds auto-generated schedules. Longer frequencies have
// no canned list and start empty.
func defaultChecklist(freq domain.PMFrequency) []domain.ChecklistItem {
	switch freq {
	case domain.FrequencyDaily:
		return []domain.ChecklistItem{
			{Item: "Visual inspection for leaks or damage"},
			{Item: "Check operating parameters"},
			{Item: "Listen for unusual noises"},
		}
	case domain.FrequencyWeekly:
		return []domain.ChecklistItem{
			{Item: "Clean equipment surfaces"},
			{Item: "Check fluid levels"},
			{Item: "Test safety devices"},
			{Item: "Record operating hours"},
		}
	case domain.FrequencyMonthly:
		return []domain.ChecklistItem{
			{Item: "Lubrication of moving parts"},
			{Item: "Tighten connections"},
			{Item: "Check belt tension"},
			{Item: "Calibrate instruments"},
			{Item: "Test emergency stops"},
		}
	}
	return []domain.ChecklistItem{}
}

func defaultCost(freq domain.PMFrequency) float64 {
	switch freq {
	case domain.FrequencyDaily:
		return 500
	case domain.FrequencyWeekly:
		return 1000
	case domain.FrequencyMonthly:
		return 2500
	case domain.FrequencyQuarterly:
		return 5000
	case domain.FrequencySemiAnnually:
		return 7500
	case domain.FrequencyAnnually:
		return 10000
	}
	return 1000
}
