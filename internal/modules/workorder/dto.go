package workorder

import (
	"time"

	"mms/internal/domain"
)

type CreateWorkOrderRequest struct {
	Title          string                 `json:"title" binding:"required"`
	Description    string                 `json:"description"`
	EquipmentID    int64                  `json:"equipment_id" binding:"required"`
	BacklogID      *int64                 `json:"backlog_id"`
	Priority       domain.BacklogPriority `json:"priority"`
	Type           domain.WorkOrderType   `json:"type"`
	AssignedTo     *int64                 `json:"assigned_to"`
	ScheduledDate  time.Time              `json:"scheduled_date"`
	EstimatedHours float64                `json:"estimated_hours"`
	EstimatedCost  float64                `json:"estimated_cost"`
	Materials      []domain.Material      `json:"materials"`
}

type UpdateWorkOrderRequest struct {
	Title          *string                  `json:"title"`
	Description    *string                  `json:"description"`
	Status         *domain.WorkOrderStatus  `json:"status"`
	Priority       *domain.BacklogPriority  `json:"priority"`
	AssignedTo     *int64                   `json:"assigned_to"`
	ScheduledDate  *time.Time               `json:"scheduled_date"`
	EstimatedHours *float64                 `json:"estimated_hours"`
	ActualHours    *float64                 `json:"actual_hours"`
	Progress       *int                     `json:"progress"`
	Materials      *[]domain.Material       `json:"materials"`
	Labor          *[]domain.Labor          `json:"labor"`
	Report         *domain.CompletionReport `json:"completion_report"`
}
