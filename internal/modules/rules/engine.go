package rules

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mms/internal/domain"
	"mms/internal/events"

	"gorm.io/gorm"
)

type Engine struct {
	rules      RuleRepository
	equipment  EquipmentStore
	workorders WorkOrderSpawner
	seq        SequenceAllocator
	bus        events.Publisher

	// latched remembers which rules have fired while their condition keeps
	// holding. The latch clears the first time the condition reads false,
	// re-arming the rule. Kept in memory only; after a restart a
	// still-true condition fires once more, which is acceptable for
	// maintenance work.
	mu      sync.Mutex
	latched map[int64]bool
}

func NewEngine(rules RuleRepository, equipment EquipmentStore, workorders WorkOrderSpawner, seq SequenceAllocator, bus events.Publisher) *Engine {
	return &Engine{
		rules:      rules,
		equipment:  equipment,
		workorders: workorders,
		seq:        seq,
		bus:        bus,
		latched:    make(map[int64]bool),
	}
}

func (e *Engine) Create(ctx context.Context, req CreateRuleRequest, createdBy int64) (*domain.AutoWorkOrderRule, error) {
	if !validTriggerType(req.TriggerType) {
		return nil, fmt.Errorf("%w: unknown trigger type %q", ErrValidation, req.TriggerType)
	}
	if _, err := e.equipment.GetByID(ctx, req.EquipmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}

	code, err := e.seq.NextCode(ctx, "rule", "RULE", 4)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityP2
	}

	rule := &domain.AutoWorkOrderRule{
		Code:         code,
		EquipmentID:  req.EquipmentID,
		Name:         req.Name,
		TriggerType:  req.TriggerType,
		TriggerValue: req.TriggerValue,
		TriggerUnit:  req.TriggerUnit,
		Template:     req.Template,
		Priority:     priority,
		IsActive:     true,
		CreatedBy:    createdBy,
	}

	if err := e.rules.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (e *Engine) Update(ctx context.Context, id int64, req UpdateRuleRequest) (*domain.AutoWorkOrderRule, error) {
	rule, err := e.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.TriggerType != nil {
		if !validTriggerType(*req.TriggerType) {
			return nil, fmt.Errorf("%w: unknown trigger type %q", ErrValidation, *req.TriggerType)
		}
		rule.TriggerType = *req.TriggerType
	}
	if req.TriggerValue != nil {
		rule.TriggerValue = *req.TriggerValue
	}
	if req.TriggerUnit != nil {
		rule.TriggerUnit = *req.TriggerUnit
	}
	if req.Template != nil {
		rule.Template = *req.Template
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := e.rules.Save(ctx, rule); err != nil {
		return nil, err
	}

	// edits change what "true" means, so the rule re-arms
	e.mu.Lock()
	delete(e.latched, rule.ID)
	e.mu.Unlock()

	return rule, nil
}

func (e *Engine) Delete(ctx context.Context, id int64) error {
	rule, err := e.get(ctx, id)
	if err != nil {
		return err
	}
	rule.IsDeleted = true
	rule.IsActive = false
	if err := e.rules.Save(ctx, rule); err != nil {
		return err
	}
	e.mu.Lock()
	delete(e.latched, rule.ID)
	e.mu.Unlock()
	return nil
}

func (e *Engine) Get(ctx context.Context, id int64) (*domain.AutoWorkOrderRule, error) {
	return e.get(ctx, id)
}

func (e *Engine) List(ctx context.Context) ([]domain.AutoWorkOrderRule, error) {
	return e.rules.List(ctx)
}

// EvaluateAll runs every active rule against its equipment's current state.
// Each rule is evaluated independently; one failure never stops the sweep. A
// rule fires at most once per condition episode: the in-memory latch holds it
// until the condition reads false again.
func (e *Engine) EvaluateAll(ctx context.Context, now time.Time) (*EvaluateResult, error) {
	active, err := e.rules.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := &EvaluateResult{WorkOrders: []domain.WorkOrder{}}
	for i := range active {
		rule := &active[i]

		eq, err := e.equipment.GetByID(ctx, rule.EquipmentID)
		if err != nil {
			out.Result.Failure(rule.ID, err)
			continue
		}
		if eq.IsDeleted {
			continue
		}

		fire, current := shouldTrigger(rule, eq, now)
		if !fire {
			e.mu.Lock()
			delete(e.latched, rule.ID)
			e.mu.Unlock()
			continue
		}

		e.mu.Lock()
		already := e.latched[rule.ID]
		e.mu.Unlock()
		if already {
			continue
		}

		trigger := domain.TriggerCondition{
			Type:         rule.TriggerType,
			Threshold:    rule.TriggerValue,
			CurrentValue: current,
			Description:  describeTrigger(rule, current),
		}
		wo, err := e.workorders.CreateFromRule(ctx, rule, trigger)
		if err != nil {
			out.Result.Failure(rule.ID, err)
			continue
		}

		rule.LastTriggered = &now
		if err := e.rules.Save(ctx, rule); err != nil {
			out.Result.Failure(rule.ID, err)
			continue
		}

		e.mu.Lock()
		e.latched[rule.ID] = true
		e.mu.Unlock()

		out.Result.Success()
		out.WorkOrders = append(out.WorkOrders, *wo)
	}
	return out, nil
}

func (e *Engine) get(ctx context.Context, id int64) (*domain.AutoWorkOrderRule, error) {
	rule, err := e.rules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rule.IsDeleted {
		return nil, ErrNotFound
	}
	return rule, nil
}

// shouldTrigger evaluates one rule against the equipment snapshot and reports
// the observed value that was compared.
func shouldTrigger(rule *domain.AutoWorkOrderRule, eq *domain.Equipment, now time.Time) (bool, float64) {
	switch rule.TriggerType {
	case domain.TriggerRunningHours:
		since := eq.RunningHours - eq.LastMaintenanceHours
		return since >= rule.TriggerValue, since
	case domain.TriggerCalendarBased:
		if rule.LastTriggered == nil {
			return true, 0
		}
		days := now.Sub(*rule.LastTriggered).Hours() / 24
		return days >= rule.TriggerValue, days
	case domain.TriggerConditionBased:
		score := float64(eq.HealthScore)
		return score < rule.TriggerValue, score
	}
	return false, 0
}

func describeTrigger(rule *domain.AutoWorkOrderRule, current float64) string {
	switch rule.TriggerType {
	case domain.TriggerRunningHours:
		return fmt.Sprintf("%.0f hours since last maintenance (threshold %.0f)", current, rule.TriggerValue)
	case domain.TriggerCalendarBased:
		return fmt.Sprintf("%.0f days since last trigger (threshold %.0f)", current, rule.TriggerValue)
	case domain.TriggerConditionBased:
		return fmt.Sprintf("health score %.0f below threshold %.0f", current, rule.TriggerValue)
	}
	return ""
}

func validTriggerType(t domain.RuleTriggerType) bool {
	switch t {
	case domain.TriggerRunningHours, domain.TriggerCalendarBased,
		domain.TriggerConditionBased, domain.TriggerInspectionFinding:
		return true
	}
	return false
}
