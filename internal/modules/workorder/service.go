package workorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mms/internal/domain"
	"mms/internal/events"
	"mms/internal/repository"

	"gorm.io/gorm"
)

// hourlyRate backs the estimated-cost default when a backlog carries hours
// but no cost figure.
const hourlyRate = 500

type Service struct {
	workorders WorkOrderRepository
	backlogs   BacklogStore
	equipment  EquipmentStore
	seq        SequenceAllocator
	bus        events.Publisher
}

func NewService(workorders WorkOrderRepository, backlogs BacklogStore, equipment EquipmentStore, seq SequenceAllocator, bus events.Publisher) *Service {
	return &Service{workorders: workorders, backlogs: backlogs, equipment: equipment, seq: seq, bus: bus}
}

func (s *Service) Create(ctx context.Context, req CreateWorkOrderRequest, createdBy int64) (*domain.WorkOrder, error) {
	if _, err := s.equipment.GetByID(ctx, req.EquipmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}

	code, err := s.seq.NextCode(ctx, "workorder", "WO", 6)
	if err != nil {
		return nil, err
	}

	woType := req.Type
	if woType == "" {
		woType = domain.WorkCorrective
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityP3
	}
	scheduled := req.ScheduledDate
	if scheduled.IsZero() {
		scheduled = time.Now().AddDate(0, 0, 7)
	}
	estimatedCost := req.EstimatedCost
	if estimatedCost == 0 && req.EstimatedHours > 0 {
		estimatedCost = req.EstimatedHours * hourlyRate
	}

	w := &domain.WorkOrder{
		Code:           code,
		BacklogID:      req.BacklogID,
		Title:          req.Title,
		Description:    req.Description,
		EquipmentID:    req.EquipmentID,
		Status:         domain.WorkOrderPlanned,
		Priority:       priority,
		Type:           woType,
		Origin:         domain.OriginUser,
		AssignedTo:     req.AssignedTo,
		ScheduledDate:  scheduled,
		EstimatedHours: req.EstimatedHours,
		EstimatedCost:  estimatedCost,
		Materials:      req.Materials,
		Labor:          []domain.Labor{},
		CreatedBy:      createdBy,
	}
	if w.Materials == nil {
		w.Materials = []domain.Material{}
	}

	if err := s.workorders.Create(ctx, w); err != nil {
		return nil, err
	}

	if req.BacklogID != nil {
		if err := s.linkBacklog(ctx, *req.BacklogID, w.ID); err != nil {
			return nil, err
		}
	}

	s.bus.Publish(events.New(events.WorkOrderCreated, w))
	return w, nil
}

// CreateFromBacklog stamps a corrective work order out of a backlog item and
// links the two records. Cost falls back to estimated hours at the standard
// rate when the backlog has no figure.
func (s *Service) CreateFromBacklog(ctx context.Context, b *domain.Backlog, origin domain.WorkOrderOrigin, createdBy int64) (*domain.WorkOrder, error) {
	code, err := s.seq.NextCode(ctx, "workorder", "WO", 6)
	if err != nil {
		return nil, err
	}

	scheduled := time.Now().AddDate(0, 0, 7)
	if b.DueDate != nil {
		scheduled = *b.DueDate
	}
	estimatedCost := b.EstimatedCost
	if estimatedCost == 0 && b.EstimatedHours > 0 {
		estimatedCost = b.EstimatedHours * hourlyRate
	}

	w := &domain.WorkOrder{
		Code:           code,
		BacklogID:      &b.ID,
		Title:          fmt.Sprintf("%s Work: %s", b.Priority, truncate(b.Issue, 50)),
		Description:    b.Issue,
		EquipmentID:    b.EquipmentID,
		Status:         domain.WorkOrderPlanned,
		Priority:       b.Priority,
		Type:           domain.WorkCorrective,
		Origin:         origin,
		AssignedTo:     b.AssignedTo,
		ScheduledDate:  scheduled,
		EstimatedHours: b.EstimatedHours,
		EstimatedCost:  estimatedCost,
		Materials:      []domain.Material{},
		Labor:          []domain.Labor{},
		CreatedBy:      createdBy,
	}

	if err := s.workorders.Create(ctx, w); err != nil {
		return nil, err
	}
	if err := s.linkBacklog(ctx, b.ID, w.ID); err != nil {
		return nil, err
	}

	s.bus.Publish(events.New(events.WorkOrderCreated, w))
	return w, nil
}

// CreateFromRule stamps a work order out of a rule's template, recording the
// trigger condition that caused it.
func (s *Service) CreateFromRule(ctx context.Context, rule *domain.AutoWorkOrderRule, trigger domain.TriggerCondition) (*domain.WorkOrder, error) {
	code, err := s.seq.NextCode(ctx, "workorder", "WO", 6)
	if err != nil {
		return nil, err
	}

	tmpl := rule.Template
	woType := tmpl.Type
	if woType == "" {
		woType = domain.WorkPreventive
	}
	priority := rule.Priority
	if priority == "" {
		priority = domain.PriorityP3
	}
	materials := tmpl.Materials
	if materials == nil {
		materials = []domain.Material{}
	}

	w := &domain.WorkOrder{
		Code:                 code,
		Title:                tmpl.Title,
		Description:          tmpl.Description,
		EquipmentID:          rule.EquipmentID,
		Status:               domain.WorkOrderPlanned,
		Priority:             priority,
		Type:                 woType,
		Origin:               domain.OriginAuto,
		ScheduledDate:        time.Now(),
		EstimatedHours:       tmpl.EstimatedHours,
		EstimatedCost:        tmpl.EstimatedHours * hourlyRate,
		TriggerCondition:     &trigger,
		Materials:            materials,
		Labor:                []domain.Labor{},
		AutoGenerationRuleID: &rule.ID,
		CreatedBy:            rule.CreatedBy,
	}

	if err := s.workorders.Create(ctx, w); err != nil {
		return nil, err
	}

	s.bus.Publish(events.New(events.WorkOrderCreated, w))
	return w, nil
}

// Update applies field changes and drives the status lifecycle. Moving to
// In Progress stamps the start date; moving to Completed stamps completion,
// rolls material and labor spend into the actual cost and writes maintenance
// state back to the equipment. The linked backlog mirrors status and progress.
func (s *Service) Update(ctx context.Context, id int64, req UpdateWorkOrderRequest) (*domain.WorkOrder, error) {
	if req.Status != nil && !validStatus(*req.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
	}

	w, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Status == domain.WorkOrderCompleted {
		return nil, ErrAlreadyCompleted
	}

	if req.Title != nil {
		w.Title = *req.Title
	}
	if req.Description != nil {
		w.Description = *req.Description
	}
	if req.Priority != nil {
		w.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		w.AssignedTo = req.AssignedTo
	}
	if req.ScheduledDate != nil {
		w.ScheduledDate = *req.ScheduledDate
	}
	if req.EstimatedHours != nil {
		w.EstimatedHours = *req.EstimatedHours
	}
	if req.ActualHours != nil {
		w.ActualHours = *req.ActualHours
	}
	if req.Progress != nil {
		w.Progress = *req.Progress
	}
	if req.Materials != nil {
		w.Materials = *req.Materials
	}
	if req.Labor != nil {
		w.Labor = *req.Labor
	}
	if req.Report != nil {
		w.CompletionReport = req.Report
	}

	now := time.Now()
	completedNow := false
	if req.Status != nil && *req.Status != w.Status {
		w.Status = *req.Status
		switch w.Status {
		case domain.WorkOrderInProgress:
			if w.StartDate == nil {
				w.StartDate = &now
			}
		case domain.WorkOrderCompleted:
			w.CompletionDate = &now
			w.Progress = 100
			w.ActualCost = w.TotalCost()
			completedNow = true
		}
	}

	if err := s.workorders.Save(ctx, w); err != nil {
		return nil, err
	}

	if completedNow {
		if err := s.applyCompletion(ctx, w, now); err != nil {
			return nil, err
		}
	}
	if w.BacklogID != nil {
		if err := s.mirrorBacklog(ctx, w); err != nil {
			return nil, err
		}
	}

	s.bus.Publish(events.New(events.WorkOrderUpdated, w))
	return w, nil
}

// Delete soft-deletes the work order and releases its backlog back to Open.
func (s *Service) Delete(ctx context.Context, id int64) error {
	w, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	w.IsDeleted = true
	if err := s.workorders.Save(ctx, w); err != nil {
		return err
	}

	if w.BacklogID != nil {
		b, err := s.backlogs.GetByID(ctx, *w.BacklogID)
		if err == nil && !b.IsDeleted {
			b.WorkOrderID = nil
			b.Status = domain.BacklogOpen
			if err := s.backlogs.Save(ctx, b); err != nil {
				return err
			}
		}
	}

	s.bus.Publish(events.New(events.WorkOrderDeleted, w))
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	return s.get(ctx, id)
}

func (s *Service) List(ctx context.Context, f repository.WorkOrderFilter) ([]domain.WorkOrder, int64, error) {
	return s.workorders.List(ctx, f)
}

// applyCompletion writes maintenance state back to the equipment. The
// running-hours baseline only resets when real hours were booked; cost
// accumulates regardless.
func (s *Service) applyCompletion(ctx context.Context, w *domain.WorkOrder, at time.Time) error {
	if w.ActualHours > 0 {
		eq, err := s.equipment.GetByID(ctx, w.EquipmentID)
		if err != nil {
			return err
		}
		if err := s.equipment.ApplyMaintenance(ctx, eq.ID, eq.RunningHours, at); err != nil {
			return err
		}
	}
	if w.ActualCost > 0 {
		if err := s.equipment.AddMaintenanceCost(ctx, w.EquipmentID, w.ActualCost, at); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) mirrorBacklog(ctx context.Context, w *domain.WorkOrder) error {
	b, err := s.backlogs.GetByID(ctx, *w.BacklogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if b.IsDeleted {
		return nil
	}

	switch w.Status {
	case domain.WorkOrderCompleted:
		b.Status = domain.BacklogCompleted
		b.Progress = 100
	case domain.WorkOrderInProgress:
		b.Status = domain.BacklogInProgress
		b.Progress = w.Progress
	default:
		b.Status = domain.BacklogPlanned
		b.Progress = w.Progress
	}
	return s.backlogs.Save(ctx, b)
}

func (s *Service) linkBacklog(ctx context.Context, backlogID, workOrderID int64) error {
	b, err := s.backlogs.GetByID(ctx, backlogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	b.WorkOrderID = &workOrderID
	b.Status = domain.BacklogPlanned
	return s.backlogs.Save(ctx, b)
}

func (s *Service) get(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	w, err := s.workorders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if w.IsDeleted {
		return nil, ErrNotFound
	}
	return w, nil
}

func validStatus(s domain.WorkOrderStatus) bool {
	switch s {
	case domain.WorkOrderPlanned, domain.WorkOrderScheduled, domain.WorkOrderInProgress,
		domain.WorkOrderOnHold, domain.WorkOrderCompleted, domain.WorkOrderCancelled:
		return true
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
