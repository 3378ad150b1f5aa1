package pm

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

type Service struct {
	schedules PMRepository
	equipment EquipmentStore
	seq       SequenceAllocator
	bus       events.Publisher
}

func NewService(schedules PMRepository, equipment EquipmentStore, seq SequenceAllocator, bus events.Publisher) *Service {
	return &Service{schedules: schedules, equipment: equipment, seq: seq, bus: bus}
}

func (s *Service) Create(ctx context.Context, req CreateScheduleRequest, createdBy int64) (*domain.PMSchedule, error) {
	if !validFrequency(req.Frequency) {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrValidation, req.Frequency)
	}
	if _, err := s.equipment.GetByID(ctx, req.EquipmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}

	code, err := s.seq.NextCode(ctx, "pm", "PM", 6)
	if err != nil {
		return nil, err
	}

	checklist := req.Checklist
	if checklist == nil {
		checklist = []domain.ChecklistItem{}
	}

	now := time.Now()
	sched := &domain.PMSchedule{
		Code:              code,
		EquipmentID:       req.EquipmentID,
		Title:             req.Title,
		Frequency:         req.Frequency,
		NextDue:           NextDue(req.Frequency, nil, now),
		AssignedTo:        req.AssignedTo,
		EstimatedDuration: req.EstimatedDuration,
		Status:            domain.PMScheduled,
		Checklist:         checklist,
		EstimatedCost:     req.EstimatedCost,
		CompletionHistory: []domain.PMCompletion{},
		IsActive:          true,
		CreatedBy:         createdBy,
	}

	if err := s.schedules.Create(ctx, sched); err != nil {
		return nil, err
	}

	s.bus.Publish(events.New(events.PMCreated, sched))
	return sched, nil
}

// Update applies field changes. A frequency change recomputes the due date
// from the last performed anchor.
func (s *Service) Update(ctx context.Context, id int64, req UpdateScheduleRequest) (*domain.PMSchedule, error) {
	sched, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		sched.Title = *req.Title
	}
	if req.Frequency != nil {
		if !validFrequency(*req.Frequency) {
			return nil, fmt.Errorf("%w: unknown frequency %q", ErrValidation, *req.Frequency)
		}
		sched.Frequency = *req.Frequency
		sched.NextDue = NextDue(sched.Frequency, sched.LastPerformed, time.Now())
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
		}
		sched.Status = *req.Status
	}
	if req.AssignedTo != nil {
		sched.AssignedTo = req.AssignedTo
	}
	if req.EstimatedDuration != nil {
		sched.EstimatedDuration = *req.EstimatedDuration
	}
	if req.Checklist != nil {
		sched.Checklist = *req.Checklist
	}
	if req.EstimatedCost != nil {
		sched.EstimatedCost = *req.EstimatedCost
	}
	if req.IsActive != nil {
		sched.IsActive = *req.IsActive
	}

	if err := s.schedules.Save(ctx, sched); err != nil {
		return nil, err
	}

	s.bus.Publish(events.New(events.PMUpdated, sched))
	return sched, nil
}

// Complete appends a history entry, rolls the schedule forward to its next
// occurrence and accumulates the spend on the equipment. The schedule stays
// alive; Completed is a moment, not a terminal state.
func (s *Service) Complete(ctx context.Context, id int64, req CompleteScheduleRequest, completedBy int64) (*domain.PMSchedule, error) {
	sched, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	actualCost := req.ActualCost
	if actualCost == 0 {
		actualCost = sched.EstimatedCost
	}

	sched.CompletionHistory = append(sched.CompletionHistory, domain.PMCompletion{
		CompletedDate: now,
		CompletedBy:   completedBy,
		ActualCost:    actualCost,
		Findings:      req.Findings,
		NextActions:   req.NextActions,
	})
	sched.LastPerformed = &now
	sched.Status = domain.PMScheduled
	sched.ActualCost = actualCost
	sched.NextDue = NextDue(sched.Frequency, sched.LastPerformed, now)

	if err := s.schedules.Save(ctx, sched); err != nil {
		return nil, err
	}

	if actualCost > 0 {
		if err := s.equipment.AddMaintenanceCost(ctx, sched.EquipmentID, actualCost, now); err != nil {
			return nil, err
		}
	}

	s.bus.Publish(events.New(events.PMCompleted, sched))
	return sched, nil
}

// AutoGenerate creates a schedule for every active piece of equipment of the
// given type that does not already carry one at the given frequency. Each
// equipment succeeds or fails independently.
func (s *Service) AutoGenerate(ctx context.Context, req AutoGenerateRequest, createdBy int64) (*AutoGenerateResult, error) {
	if !validFrequency(req.Frequency) {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrValidation, req.Frequency)
	}

	equipment, err := s.equipment.ListActiveByType(ctx, req.EquipmentType)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := &AutoGenerateResult{Schedules: []domain.PMSchedule{}}
	for _, eq := range equipment {
		exists, err := s.schedules.ExistsForEquipment(ctx, eq.ID, req.Frequency)
		if err != nil {
			out.Result.Failure(eq.ID, err)
			continue
		}
		if exists {
			continue
		}

		code, err := s.seq.NextCode(ctx, "pm", "PM", 6)
		if err != nil {
			out.Result.Failure(eq.ID, err)
			continue
		}

		sched := &domain.PMSchedule{
			Code:              code,
			EquipmentID:       eq.ID,
			Title:             fmt.Sprintf("%s Maintenance - %s", req.Frequency, eq.Name),
			Frequency:         req.Frequency,
			NextDue:           NextDue(req.Frequency, nil, now),
			EstimatedDuration: "2 hours",
			Status:            domain.PMScheduled,
			Checklist:         defaultChecklist(req.Frequency),
			EstimatedCost:     defaultCost(req.Frequency),
			CompletionHistory: []domain.PMCompletion{},
			IsActive:          true,
			CreatedBy:         createdBy,
		}
		if err := s.schedules.Create(ctx, sched); err != nil {
			out.Result.Failure(eq.ID, err)
			continue
		}
		out.Result.Success()
		out.Schedules = append(out.Schedules, *sched)
		s.bus.Publish(events.New(events.PMCreated, sched))
	}
	out.Created = len(out.Schedules)
	return out, nil
}

// SweepOverdue marks every schedule whose due date has passed as Overdue.
// Returns how many rows flipped.
func (s *Service) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.schedules.FindDueBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	flipped := 0
	for i := range due {
		sched := &due[i]
		sched.Status = domain.PMOverdue
		if err := s.schedules.Save(ctx, sched); err != nil {
			return flipped, err
		}
		flipped++
		s.bus.Publish(events.New(events.PMUpdated, sched))
	}
	return flipped, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	sched, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	sched.IsDeleted = true
	return s.schedules.Save(ctx, sched)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.PMSchedule, error) {
	return s.get(ctx, id)
}

func (s *Service) List(ctx context.Context, f repository.PMFilter) ([]domain.PMSchedule, int64, error) {
	return s.schedules.List(ctx, f)
}

func (s *Service) get(ctx context.Context, id int64) (*domain.PMSchedule, error) {
	sched, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sched.IsDeleted {
		return nil, ErrNotFound
	}
	return sched, nil
}
