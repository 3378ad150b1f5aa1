package backlog

import (
	"context"
	"errors"
	"fmt"

	"mms/internal/domain"
	"mms/internal/events"
	"mms/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	backlogs   BacklogRepository
	workorders WorkOrderGenerator
	seq        SequenceAllocator
	bus        events.Publisher
}

func NewService(backlogs BacklogRepository, workorders WorkOrderGenerator, seq SequenceAllocator, bus events.Publisher) *Service {
	return &Service{backlogs: backlogs, workorders: workorders, seq: seq, bus: bus}
}

func (s *Service) Create(ctx context.Context, req CreateBacklogRequest, createdBy int64) (*domain.Backlog, error) {
	if !validPriority(req.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, req.Priority)
	}

	code, err := s.seq.NextCode(ctx, "backlog", "BL", 6)
	if err != nil {
		return nil, err
	}

	b := &domain.Backlog{
		Code:           code,
		EquipmentID:    req.EquipmentID,
		Issue:          req.Issue,
		Category:       req.Category,
		Priority:       req.Priority,
		Status:         domain.BacklogOpen,
		Source:         domain.SourceManual,
		AssignedTo:     req.AssignedTo,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		EstimatedCost:  req.EstimatedCost,
		CreatedBy:      createdBy,
	}

	if err := s.backlogs.Create(ctx, b); err != nil {
		return nil, err
	}

	s.bus.Publish(events.New(events.BacklogCreated, b))
	return b, nil
}

// GenerateFromFinding converts one severe inspection finding into an open
// backlog. Critical findings map to P1, high to P2, everything else to P3.
func (s *Service) GenerateFromFinding(ctx context.Context, insp *domain.Inspection, f domain.Finding, createdBy int64) (*domain.Backlog, error) {
	code, err := s.seq.NextCode(ctx, "backlog", "BL", 6)
	if err != nil {
		return nil, err
	}

	b := &domain.Backlog{
		Code:          code,
		EquipmentID:   insp.EquipmentID,
		Issue:         f.Description,
		Category:      "Inspection",
		Priority:      priorityForFinding(f),
		Status:        domain.BacklogOpen,
		Source:        domain.SourceInspectionFinding,
		AutoGenerated: true,
		SourceRef:     &domain.SourceReference{Type: "Inspection", ID: insp.ID},
		CreatedBy:     createdBy,
	}

	if err := s.backlogs.Create(ctx, b); err != nil {
		return nil, err
	}

	s.bus.Publish(events.New(events.BacklogCreated, b))
	return b, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateBacklogRequest) (*domain.Backlog, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Issue != nil {
		b.Issue = *req.Issue
	}
	if req.Category != nil {
		b.Category = *req.Category
	}
	if req.Priority != nil {
		if !validPriority(*req.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, *req.Priority)
		}
		b.Priority = *req.Priority
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
		}
		b.Status = *req.Status
	}
	if req.AssignedTo != nil {
		b.AssignedTo = req.AssignedTo
	}
	if req.DueDate != nil {
		b.DueDate = req.DueDate
	}
	if req.EstimatedHours != nil {
		b.EstimatedHours = *req.EstimatedHours
	}
	if req.EstimatedCost != nil {
		b.EstimatedCost = *req.EstimatedCost
	}

	if err := s.backlogs.Save(ctx, b); err != nil {
		return nil, err
	}

	s.bus.Publish(events.New(events.BacklogUpdated, b))
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	b, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	b.IsDeleted = true
	if err := s.backlogs.Save(ctx, b); err != nil {
		return err
	}
	s.bus.Publish(events.New(events.BacklogUpdated, b))
	return nil
}

// BulkAssign applies the same assignment fields to every listed backlog.
// Each item succeeds or fails on its own; one bad id never blocks the rest.
func (s *Service) BulkAssign(ctx context.Context, req BulkAssignRequest) (domain.BatchResult, error) {
	var result domain.BatchResult
	if len(req.BacklogIDs) == 0 {
		return result, ErrEmptyBatch
	}

	for _, id := range req.BacklogIDs {
		b, err := s.get(ctx, id)
		if err != nil {
			result.Failure(id, err)
			continue
		}
		if req.AssignedTo != nil {
			b.AssignedTo = req.AssignedTo
		}
		if req.Priority != nil {
			b.Priority = *req.Priority
		}
		if req.DueDate != nil {
			b.DueDate = req.DueDate
		}
		if req.Category != nil {
			b.Category = *req.Category
		}
		if err := s.backlogs.Save(ctx, b); err != nil {
			result.Failure(id, err)
			continue
		}
		result.Success()
	}

	s.bus.Publish(events.New(events.BacklogBulkUpdated, result))
	return result, nil
}

// GenerateWorkOrders promotes each eligible backlog into a corrective work
// order. Eligibility is strict: status Open, Validated or Planned, no linked
// work order yet, not deleted. Ineligible ids are reported per item.
func (s *Service) GenerateWorkOrders(ctx context.Context, req GenerateWorkOrdersRequest, createdBy int64) (*GenerateWorkOrdersResult, error) {
	if len(req.BacklogIDs) == 0 {
		return nil, ErrEmptyBatch
	}

	out := &GenerateWorkOrdersResult{WorkOrders: []domain.WorkOrder{}}
	for _, id := range req.BacklogIDs {
		b, err := s.get(ctx, id)
		if err != nil {
			out.Result.Failure(id, err)
			continue
		}
		if !Eligible(b) {
			out.Result.Failure(id, ErrNotEligible)
			continue
		}
		wo, err := s.workorders.CreateFromBacklog(ctx, b, domain.OriginUser, createdBy)
		if err != nil {
			out.Result.Failure(id, err)
			continue
		}
		out.Result.Success()
		out.WorkOrders = append(out.WorkOrders, *wo)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Backlog, error) {
	return s.get(ctx, id)
}

func (s *Service) List(ctx context.Context, f repository.BacklogFilter) ([]domain.Backlog, int64, error) {
	return s.backlogs.List(ctx, f)
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Backlog, error) {
	b, err := s.backlogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.IsDeleted {
		return nil, ErrNotFound
	}
	return b, nil
}

// Eligible reports whether a backlog may still be promoted to a work order.
func Eligible(b *domain.Backlog) bool {
	if b.IsDeleted || b.WorkOrderID != nil {
		return false
	}
	switch b.Status {
	case domain.BacklogOpen, domain.BacklogValidated, domain.BacklogPlanned:
		return true
	}
	return false
}

func priorityForFinding(f domain.Finding) domain.BacklogPriority {
	switch f.Priority {
	case domain.FindingCritical:
		return domain.PriorityP1
	case domain.FindingHigh:
		return domain.PriorityP2
	default:
		return domain.PriorityP3
	}
}

func validStatus(s domain.BacklogStatus) bool {
	switch s {
	case domain.BacklogOpen, domain.BacklogValidated, domain.BacklogPlanned,
		domain.BacklogInProgress, domain.BacklogCompleted:
		return true
	}
	return false
}

func validPriority(p domain.BacklogPriority) bool {
	switch p {
	case domain.PriorityP1, domain.PriorityP2, domain.PriorityP3, domain.PriorityP4:
		return true
	}
	return false
}
