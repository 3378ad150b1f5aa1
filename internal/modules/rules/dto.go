package rules

import (
	"mms/internal/domain"
)

type CreateRuleRequest struct {
	EquipmentID  int64                    `json:"equipment_id" binding:"required"`
	Name         string                   `json:"name" binding:"required"`
	TriggerType  domain.RuleTriggerType   `json:"trigger_type" binding:"required"`
	TriggerValue float64                  `json:"trigger_value" binding:"required"`
	TriggerUnit  string                   `json:"trigger_unit"`
	Template     domain.WorkOrderTemplate `json:"work_order_template"`
	Priority     domain.BacklogPriority   `json:"priority"`
}

type UpdateRuleRequest struct {
	Name         *string                   `json:"name"`
	TriggerType  *domain.RuleTriggerType   `json:"trigger_type"`
	TriggerValue *float64                  `json:"trigger_value"`
	TriggerUnit  *string                   `json:"trigger_unit"`
	Template     *domain.WorkOrderTemplate `json:"work_order_template"`
	Priority     *domain.BacklogPriority   `json:"priority"`
	IsActive     *bool                     `json:"is_active"`
}

type EvaluateResult struct {
	WorkOrders []domain.WorkOrder `json:"work_orders"`
	Result     domain.BatchResult `json:"result"`
}
