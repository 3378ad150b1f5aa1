package domain

import "time"

type WorkOrderStatus string

const (
	WorkOrderPlanned    WorkOrderStatus = "Planned"
	WorkOrderScheduled  WorkOrderStatus = "Scheduled"
	WorkOrderInProgress WorkOrderStatus = "In Progress"
	WorkOrderOnHold     WorkOrderStatus = "On Hold"
	WorkOrderCompleted  WorkOrderStatus = "Completed"
	WorkOrderCancelled  WorkOrderStatus = "Cancelled"
)

type WorkOrderType string

const (
	WorkCorrective WorkOrderType = "Corrective"
	WorkPreventive WorkOrderType = "Preventive"
	WorkEmergency  WorkOrderType = "Emergency"
	WorkShutdown   WorkOrderType = "Shutdown"
)

// WorkOrderOrigin distinguishes rule-spawned work orders from user-created
// ones (the original "woType" field).
type WorkOrderOrigin string

const (
	OriginAuto WorkOrderOrigin = "Auto Generated"
	OriginUser WorkOrderOrigin = "User Generated"
)

type MaterialStatus string

const (
	MaterialAvailable MaterialStatus = "Available"
	MaterialOrdered   MaterialStatus = "Ordered"
	MaterialReceived  MaterialStatus = "Received"
	MaterialUsed      MaterialStatus = "Used"
)

type Material struct {
	Item      string         `json:"item"`
	Quantity  float64        `json:"quantity"`
	UnitCost  float64        `json:"unit_cost"`
	TotalCost float64        `json:"total_cost"`
	Status    MaterialStatus `json:"status"`
}

type Labor struct {
	TechnicianID int64   `json:"technician_id"`
	Hours        float64 `json:"hours"`
	Rate         float64 `json:"rate"`
	Total        float64 `json:"total"`
}

// TriggerCondition records why a rule-spawned work order exists: the rule
// type, its threshold and the value observed when it fired.
type TriggerCondition struct {
	Type         RuleTriggerType `json:"type"`
	Threshold    float64         `json:"threshold"`
	CurrentValue float64         `json:"current_value"`
	Description  string          `json:"description"`
}

type CompletionReport struct {
	Findings        string `json:"findings,omitempty"`
	Recommendations string `json:"recommendations,omitempty"`
	NextActions     string `json:"next_actions,omitempty"`
	CompletedBy     int64  `json:"completed_by"`
}

type WorkOrder struct {
	ID                   int64             `json:"id" gorm:"primaryKey"`
	Code                 string            `json:"code" gorm:"uniqueIndex"`
	BacklogID            *int64            `json:"backlog_id,omitempty"`
	Title                string            `json:"title" validate:"required"`
	Description          string            `json:"description" gorm:"type:text"`
	EquipmentID          int64             `json:"equipment_id" gorm:"index" validate:"required"`
	Status               WorkOrderStatus   `json:"status" gorm:"index"`
	Priority             BacklogPriority   `json:"priority"`
	Type                 WorkOrderType     `json:"type"`
	Origin               WorkOrderOrigin   `json:"wo_type" gorm:"column:wo_type"`
	AssignedTo           *int64            `json:"assigned_to,omitempty"`
	ScheduledDate        time.Time         `json:"scheduled_date"`
	StartDate            *time.Time        `json:"start_date,omitempty"`
	CompletionDate       *time.Time        `json:"completion_date,omitempty"`
	EstimatedHours       float64           `json:"estimated_hours"`
	ActualHours          float64           `json:"actual_hours"`
	Progress             int               `json:"progress"`
	EstimatedCost        float64           `json:"estimated_cost"`
	ActualCost           float64           `json:"actual_cost"`
	TriggerCondition     *TriggerCondition `json:"trigger_condition,omitempty" gorm:"serializer:json"`
	Materials            []Material        `json:"materials" gorm:"serializer:json"`
	Labor                []Labor           `json:"labor" gorm:"serializer:json"`
	CompletionReport     *CompletionReport `json:"completion_report,omitempty" gorm:"serializer:json"`
	AutoGenerationRuleID *int64            `json:"auto_generation_rule_id,omitempty"`
	CreatedBy            int64             `json:"created_by"`
	IsDeleted            bool              `json:"is_deleted" gorm:"index"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`

	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
	Backlog   *Backlog   `json:"backlog,omitempty" gorm:"foreignKey:BacklogID"`
}

func (WorkOrder) TableName() string { return "work_orders" }

// TotalCost sums material and labor spend. Written into ActualCost at
// completion, never before.
func (w *WorkOrder) TotalCost() float64 {
	var total float64
	for _, m := range w.Materials {
		total += m.TotalCost
	}
	for _, l := range w.Labor {
		total += l.Total
	}
	return total
}

func (w *WorkOrder) IsOverdue(now time.Time) bool {
	return w.ScheduledDate.Before(now) && w.Status != WorkOrderCompleted
}
