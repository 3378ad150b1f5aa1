package pm

import (
	"testing"
	"time"

	"mms/internal/domain"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestNextDue_MonthEndClamps(t *testing.T) {
	jan31 := date(2024, time.January, 31)

	next := NextDue(domain.FrequencyMonthly, &jan31, time.Now())

	// leap year: Feb has 29 days
	assert.Equal(t, date(2024, time.February, 29), next)
}

func TestNextDue_MonthEndClampsNonLeap(t *testing.T) {
	jan31 := date(2025, time.January, 31)

	next := NextDue(domain.FrequencyMonthly, &jan31, time.Now())

	assert.Equal(t, date(2025, time.February, 28), next)
}

func TestNextDue_MidMonthKeepsDay(t *testing.T) {
	mar15 := date(2026, time.March, 15)

	next := NextDue(domain.FrequencyMonthly, &mar15, time.Now())

	assert.Equal(t, date(2026, time.April, 15), next)
}

func TestNextDue_QuarterlyAcrossYearEnd(t *testing.T) {
	nov30 := date(2026, time.November, 30)

	next := NextDue(domain.FrequencyQuarterly, &nov30, time.Now())

	assert.Equal(t, date(2027, time.February, 28), next)
}

func TestNextDue_Annually(t *testing.T) {
	feb29 := date(2024, time.February, 29)

	next := NextDue(domain.FrequencyAnnually, &feb29, time.Now())

	assert.Equal(t, date(2025, time.February, 28), next)
}

func TestNextDue_DailyAndWeekly(t *testing.T) {
	anchor := date(2026, time.June, 1)

	assert.Equal(t, date(2026, time.June, 2), NextDue(domain.FrequencyDaily, &anchor, time.Now()))
	assert.Equal(t, date(2026, time.June, 8), NextDue(domain.FrequencyWeekly, &anchor, time.Now()))
}

func TestNextDue_FreshScheduleAnchorsOnNow(t *testing.T) {
	now := date(2026, time.August, 31)

	next := NextDue(domain.FrequencyMonthly, nil, now)

	assert.Equal(t, date(2026, time.September, 30), next)
}

func TestDefaultChecklist(t *testing.T) {
	assert.Len(t, defaultChecklist(domain.FrequencyDaily), 3)
	assert.Len(t, defaultChecklist(domain.FrequencyWeekly), 4)
	assert.Len(t, defaultChecklist(domain.FrequencyMonthly), 5)
	assert.Empty(t, defaultChecklist(domain.FrequencyQuarterly))
	assert.Empty(t, defaultChecklist(domain.FrequencyAnnually))
}

func TestDefaultCost(t *testing.T) {
	assert.Equal(t, float64(500), defaultCost(domain.FrequencyDaily))
	assert.Equal(t, float64(2500), defaultCost(domain.FrequencyMonthly))
	assert.Equal(t, float64(10000), defaultCost(domain.FrequencyAnnually))
	assert.Equal(t, float64(1000), defaultCost(domain.PMFrequency("Fortnightly")))
}
