package domain

import "time"

type BacklogStatus string

const (
	BacklogOpen       BacklogStatus = "Open"
	BacklogValidated  BacklogStatus = "Validated"
	BacklogPlanned    BacklogStatus = "Planned"
	BacklogInProgress BacklogStatus = "In Progress"
	BacklogCompleted  BacklogStatus = "Completed"
)

type BacklogPriority string

const (
	PriorityP1 BacklogPriority = "P1"
	PriorityP2 BacklogPriority = "P2"
	PriorityP3 BacklogPriority = "P3"
	PriorityP4 BacklogPriority = "P4"
)

type BacklogSource string

const (
	SourceManual            BacklogSource = "Manual"
	SourceInspectionFinding BacklogSource = "Inspection Finding"
)

// SourceReference points back at the record a backlog was generated from,
// e.g. {Type: "Inspection", ID: 42}.
type SourceReference struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

// Backlog is an identified, not-yet-scheduled maintenance issue. Status
// advances monotonically as a linked work order progresses.
type Backlog struct {
	ID             int64            `json:"id" gorm:"primaryKey"`
	Code           string           `json:"code" gorm:"uniqueIndex"`
	EquipmentID    int64            `json:"equipment_id" gorm:"index" validate:"required"`
	Issue          string           `json:"issue" gorm:"type:text" validate:"required"`
	Category       string           `json:"category"`
	Priority       BacklogPriority  `json:"priority"`
	Status         BacklogStatus    `json:"status" gorm:"index"`
	WorkOrderID    *int64           `json:"work_order_id,omitempty"`
	Source         BacklogSource    `json:"source"`
	AutoGenerated  bool             `json:"auto_generated"`
	SourceRef      *SourceReference `json:"source_reference,omitempty" gorm:"serializer:json;column:source_reference"`
	AssignedTo     *int64           `json:"assigned_to,omitempty"`
	DueDate        *time.Time       `json:"due_date,omitempty"`
	EstimatedHours float64          `json:"estimated_hours"`
	EstimatedCost  float64          `json:"estimated_cost"`
	Progress       int              `json:"progress"`
	CreatedBy      int64            `json:"created_by"`
	IsDeleted      bool             `json:"is_deleted" gorm:"index"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
}

func (Backlog) TableName() string { return "backlogs" }
