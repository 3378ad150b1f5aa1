package domain

import "time"

type InspectionStatus string

const (
	InspectionScheduled  InspectionStatus = "Scheduled"
	InspectionInProgress InspectionStatus = "In Progress"
	InspectionCompleted  InspectionStatus = "Completed"
	InspectionCancelled  InspectionStatus = "Cancelled"
)

type InspectionPriority string

const (
	InspectionNormal InspectionPriority = "Normal"
	InspectionHigh   InspectionPriority = "High"
	InspectionUrgent InspectionPriority = "Urgent"
)

type FindingStatus string

const (
	FindingPassed      FindingStatus = "passed"
	FindingFailed      FindingStatus = "failed"
	FindingObservation FindingStatus = "observation"
)

type FindingPriority string

const (
	FindingLow      FindingPriority = "low"
	FindingMedium   FindingPriority = "medium"
	FindingHigh     FindingPriority = "high"
	FindingCritical FindingPriority = "critical"
)

// Finding is an observation recorded during an inspection. Findings are
// immutable once the owning inspection is completed.
type Finding struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Status      FindingStatus   `json:"status"`
	Priority    FindingPriority `json:"priority"`
	Action      string          `json:"action,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

type SafetyCheckResult struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Acknowledged bool   `json:"acknowledged"`
}

type CheckpointResult struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Mandatory bool   `json:"mandatory"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes,omitempty"`
}

// JourneyData carries the in-flight state of a single inspection walk:
// safety acknowledgements, checkpoint results and the final verdict.
type JourneyData struct {
	SafetyChecks []SafetyCheckResult `json:"safety_checks,omitempty"`
	Checkpoints  []CheckpointResult  `json:"checkpoints,omitempty"`
	Comments     string              `json:"comments,omitempty"`
	FinalStatus  FindingStatus       `json:"final_status,omitempty"`
}

// ResourceTracking audits how long each phase took and how many times a
// draft was saved before completion.
type ResourceTracking struct {
	MeasurementStart *time.Time `json:"measurement_start,omitempty"`
	MeasurementEnd   *time.Time `json:"measurement_end,omitempty"`
	EngagementStart  *time.Time `json:"engagement_start,omitempty"`
	EngagementEnd    *time.Time `json:"engagement_end,omitempty"`
	TotalTries       int        `json:"total_tries"`
	TotalTimeSpent   float64    `json:"total_time_spent"` // hours
}

type Inspection struct {
	ID                int64              `json:"id" gorm:"primaryKey"`
	Code              string             `json:"code" gorm:"uniqueIndex"`
	EquipmentID       int64              `json:"equipment_id" gorm:"index" validate:"required"`
	TemplateID        *int64             `json:"template_id,omitempty"`
	Type              string             `json:"type"`
	ScheduledDate     time.Time          `json:"scheduled_date" validate:"required"`
	Status            InspectionStatus   `json:"status" gorm:"index"`
	AssignedTo        *int64             `json:"assigned_to,omitempty"`
	EstimatedDuration string             `json:"estimated_duration,omitempty"`
	Priority          InspectionPriority `json:"priority"`
	HealthScoreBefore int                `json:"health_score_before"`
	HealthScoreAfter  *int               `json:"health_score_after,omitempty"`
	Findings          []Finding          `json:"findings" gorm:"serializer:json"`
	IsDraft           bool               `json:"is_draft"`
	Journey           *JourneyData       `json:"journey_data,omitempty" gorm:"serializer:json;column:journey_data"`
	Resources         ResourceTracking   `json:"resource_tracking" gorm:"serializer:json;column:resource_tracking"`
	CompletedBy       *int64             `json:"completed_by,omitempty"`
	CompletedDate     *time.Time         `json:"completed_date,omitempty"`
	CreatedBy         int64              `json:"created_by"`
	IsDeleted         bool               `json:"is_deleted" gorm:"index"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`

	Equipment *Equipment          `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
	Template  *InspectionTemplate `json:"template,omitempty" gorm:"foreignKey:TemplateID"`
}

func (Inspection) TableName() string { return "inspections" }

type TemplateCheck struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Mandatory bool   `json:"mandatory"`
}

type InspectionTemplate struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" validate:"required"`
	EquipmentType EquipmentType   `json:"equipment_type"`
	SafetyChecks  []TemplateCheck `json:"safety_checks" gorm:"serializer:json"`
	Checkpoints   []TemplateCheck `json:"checkpoints" gorm:"serializer:json"`
	IsActive      bool            `json:"is_active"`
	CreatedBy     int64           `json:"created_by"`
	IsDeleted     bool            `json:"is_deleted"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (InspectionTemplate) TableName() string { return "inspection_templates" }
