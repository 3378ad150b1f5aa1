package inspection

import (
	"time"

	"mms/internal/domain"
)

type CreateInspectionRequest struct {
	EquipmentID       int64                     `json:"equipment_id" binding:"required"`
	TemplateID        *int64                    `json:"template_id"`
	Type              string                    `json:"type" binding:"required"`
	ScheduledDate     time.Time                 `json:"scheduled_date" binding:"required"`
	AssignedTo        *int64                    `json:"assigned_to"`
	EstimatedDuration string                    `json:"estimated_duration"`
	Priority          domain.InspectionPriority `json:"priority"`
}

// SaveJourneyRequest is one draft save of the in-flight journey. Every save
// counts as a try and accumulates time spent.
type SaveJourneyRequest struct {
	Journey        domain.JourneyData `json:"journey_data" binding:"required"`
	IsDraft        *bool              `json:"is_draft"`
	TimeSpentHours float64            `json:"time_spent_hours"`
	Phase          string             `json:"phase"` // "measurement" or "engagement"
}

type FindingInput struct {
	Description string                 `json:"description" binding:"required"`
	Status      domain.FindingStatus   `json:"status" binding:"required"`
	Priority    domain.FindingPriority `json:"priority" binding:"required"`
	Action      string                 `json:"action"`
}

type CompleteInspectionRequest struct {
	Findings []FindingInput      `json:"findings"`
	Journey  *domain.JourneyData `json:"journey_data"`
}

// CompleteResult reports the completed inspection together with the outcome
// of backlog generation, which uses partial-failure semantics.
type CompleteResult struct {
	Inspection *domain.Inspection `json:"inspection"`
	Backlogs   []domain.Backlog   `json:"backlogs"`
	Generation domain.BatchResult `json:"generation"`
}

type CreateTemplateRequest struct {
	Name          string                 `json:"name" binding:"required"`
	EquipmentType domain.EquipmentType   `json:"equipment_type"`
	SafetyChecks  []domain.TemplateCheck `json:"safety_checks"`
	Checkpoints   []domain.TemplateCheck `json:"checkpoints"`
}

type UpdateTemplateRequest struct {
	Name          *string                 `json:"name"`
	EquipmentType *domain.EquipmentType   `json:"equipment_type"`
	SafetyChecks  *[]domain.TemplateCheck `json:"safety_checks"`
	Checkpoints   *[]domain.TemplateCheck `json:"checkpoints"`
	IsActive      *bool                   `json:"is_active"`
}
