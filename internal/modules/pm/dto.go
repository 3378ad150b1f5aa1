package pm

import (
	"mms/internal/domain"
)

type CreateScheduleRequest struct {
	EquipmentID       int64                  `json:"equipment_id" binding:"required"`
	Title             string                 `json:"title" binding:"required"`
	Frequency         domain.PMFrequency     `json:"frequency" binding:"required"`
	AssignedTo        *int64                 `json:"assigned_to"`
	EstimatedDuration string                 `json:"estimated_duration"`
	Checklist         []domain.ChecklistItem `json:"checklist"`
	EstimatedCost     float64                `json:"estimated_cost"`
}

type UpdateScheduleRequest struct {
	Title             *string                 `json:"title"`
	Frequency         *domain.PMFrequency     `json:"frequency"`
	Status            *domain.PMStatus        `json:"status"`
	AssignedTo        *int64                  `json:"assigned_to"`
	EstimatedDuration *string                 `json:"estimated_duration"`
	Checklist         *[]domain.ChecklistItem `json:"checklist"`
	EstimatedCost     *float64                `json:"estimated_cost"`
	IsActive          *bool                   `json:"is_active"`
}

type CompleteScheduleRequest struct {
	ActualCost  float64 `json:"actual_cost"`
	Findings    string  `json:"findings"`
	NextActions string  `json:"next_actions"`
}

type AutoGenerateRequest struct {
	EquipmentType domain.EquipmentType `json:"equipment_type" binding:"required"`
	Frequency     domain.PMFrequency   `json:"frequency" binding:"required"`
}

type AutoGenerateResult struct {
	Created   int                 `json:"created"`
	Schedules []domain.PMSchedule `json:"schedules"`
	Result    domain.BatchResult  `json:"result"`
}
