package domain

import "time"

type RuleTriggerType string

const (
	TriggerRunningHours      RuleTriggerType = "running_hours"
	TriggerCalendarBased     RuleTriggerType = "calendar_based"
	TriggerConditionBased    RuleTriggerType = "condition_based"
	TriggerInspectionFinding RuleTriggerType = "inspection_finding"
)

// WorkOrderTemplate is what a rule stamps out when it fires.
type WorkOrderTemplate struct {
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Type           WorkOrderType `json:"type"`
	EstimatedHours float64       `json:"estimated_hours"`
	Materials      []Material    `json:"materials,omitempty"`
}

// AutoWorkOrderRule spawns work orders without human initiation. Only the
// rule engine mutates LastTriggered.
type AutoWorkOrderRule struct {
	ID            int64             `json:"id" gorm:"primaryKey"`
	Code          string            `json:"code" gorm:"uniqueIndex"`
	EquipmentID   int64             `json:"equipment_id" gorm:"index" validate:"required"`
	Name          string            `json:"name" validate:"required"`
	TriggerType   RuleTriggerType   `json:"trigger_type" validate:"required"`
	TriggerValue  float64           `json:"trigger_value"`
	TriggerUnit   string            `json:"trigger_unit"`
	Template      WorkOrderTemplate `json:"work_order_template" gorm:"serializer:json;column:work_order_template"`
	LastTriggered *time.Time        `json:"last_triggered,omitempty"`
	NextTrigger   *time.Time        `json:"next_trigger,omitempty"`
	Priority      BacklogPriority   `json:"priority"`
	IsActive      bool              `json:"is_active" gorm:"index"`
	CreatedBy     int64             `json:"created_by"`
	IsDeleted     bool              `json:"is_deleted" gorm:"index"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
}

func (AutoWorkOrderRule) TableName() string { return "auto_work_order_rules" }
