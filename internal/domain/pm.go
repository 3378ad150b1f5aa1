package domain

import "time"

type PMFrequency string

const (
	FrequencyDaily        PMFrequency = "Daily"
	FrequencyWeekly       PMFrequency = "Weekly"
	FrequencyMonthly      PMFrequency = "Monthly"
	FrequencyQuarterly    PMFrequency = "Quarterly"
	FrequencySemiAnnually PMFrequency = "Semi-Annually"
	FrequencyAnnually     PMFrequency = "Annually"
)

type PMStatus string

const (
	PMScheduled  PMStatus = "Scheduled"
	PMInProgress PMStatus = "In Progress"
	PMCompleted  PMStatus = "Completed"
	PMOverdue    PMStatus = "Overdue"
)

type ChecklistItem struct {
	Item      string `json:"item"`
	Completed bool   `json:"completed"`
}

// PMCompletion is one entry in a schedule's append-only completion log.
type PMCompletion struct {
	CompletedDate time.Time `json:"completed_date"`
	CompletedBy   int64     `json:"completed_by"`
	ActualCost    float64   `json:"actual_cost"`
	Findings      string    `json:"findings,omitempty"`
	NextActions   string    `json:"next_actions,omitempty"`
}

// PMSchedule is a recurring maintenance obligation. Status is derived from
// NextDue; Overdue is never stored as a final truth independent of the dates.
type PMSchedule struct {
	ID                int64           `json:"id" gorm:"primaryKey"`
	Code              string          `json:"code" gorm:"uniqueIndex"`
	EquipmentID       int64           `json:"equipment_id" gorm:"index" validate:"required"`
	Title             string          `json:"title" validate:"required"`
	Frequency         PMFrequency     `json:"frequency" validate:"required"`
	LastPerformed     *time.Time      `json:"last_performed,omitempty"`
	NextDue           time.Time       `json:"next_due" gorm:"index"`
	AssignedTo        *int64          `json:"assigned_to,omitempty"`
	EstimatedDuration string          `json:"estimated_duration,omitempty"`
	Status            PMStatus        `json:"status" gorm:"index"`
	Checklist         []ChecklistItem `json:"checklist" gorm:"serializer:json"`
	EstimatedCost     float64         `json:"estimated_cost"`
	ActualCost        float64         `json:"actual_cost"`
	CompletionHistory []PMCompletion  `json:"completion_history" gorm:"serializer:json"`
	IsActive          bool            `json:"is_active"`
	CreatedBy         int64           `json:"created_by"`
	IsDeleted         bool            `json:"is_deleted" gorm:"index"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
}

func (PMSchedule) TableName() string { return "pm_schedules" }

func (s *PMSchedule) IsOverdue(now time.Time) bool {
	return s.NextDue.Before(now) && s.Status != PMCompleted
}
