package backlog

import (
	"time"

	"mms/internal/domain"
)

type CreateBacklogRequest struct {
	EquipmentID    int64                  `json:"equipment_id" binding:"required"`
	Issue          string                 `json:"issue" binding:"required"`
	Category       string                 `json:"category"`
	Priority       domain.BacklogPriority `json:"priority" binding:"required"`
	AssignedTo     *int64                 `json:"assigned_to"`
	DueDate        *time.Time             `json:"due_date"`
	EstimatedHours float64                `json:"estimated_hours"`
	EstimatedCost  float64                `json:"estimated_cost"`
}

type UpdateBacklogRequest struct {
	Issue          *string                 `json:"issue"`
	Category       *string                 `json:"category"`
	Priority       *domain.BacklogPriority `json:"priority"`
	Status         *domain.BacklogStatus   `json:"status"`
	AssignedTo     *int64                  `json:"assigned_to"`
	DueDate        *time.Time              `json:"due_date"`
	EstimatedHours *float64                `json:"estimated_hours"`
	EstimatedCost  *float64                `json:"estimated_cost"`
}

// BulkAssignRequest applies the same assignment fields to many backlogs.
type BulkAssignRequest struct {
	BacklogIDs  []int64                 `json:"backlog_ids" binding:"required"`
	AssignedTo  *int64                  `json:"assigned_to"`
	Priority    *domain.BacklogPriority `json:"priority"`
	DueDate     *time.Time              `json:"due_date"`
	Category    *string                 `json:"category"`
}

type GenerateWorkOrdersRequest struct {
	BacklogIDs []int64 `json:"backlog_ids" binding:"required"`
}

type GenerateWorkOrdersResult struct {
	WorkOrders []domain.WorkOrder `json:"work_orders"`
	Result     domain.BatchResult `json:"result"`
}
