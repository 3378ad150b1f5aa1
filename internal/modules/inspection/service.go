package inspection

import (
	"context"
	"errors"
	"time"

	"mms/internal/domain"
	"mms/internal/events"
	"mms/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const minHealthScoreAfter = 50

type Service struct {
	inspections InspectionRepository
	templates   TemplateRepository
	equipment   EquipmentStore
	backlogs    BacklogGenerator
	seq         SequenceAllocator
	bus         events.Publisher
}

func NewService(
	inspections InspectionRepository,
	templates TemplateRepository,
	equipment EquipmentStore,
	backlogs BacklogGenerator,
	seq SequenceAllocator,
	bus events.Publisher,
) *Service {
	return &Service{
		inspections: inspections,
		templates:   templates,
		equipment:   equipment,
		backlogs:    backlogs,
		seq:         seq,
		bus:         bus,
	}
}

func (s *Service) Create(ctx context.Context, req CreateInspectionRequest, createdBy int64) (*domain.Inspection, error) {
	eq, err := s.equipment.GetByID(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	if eq.IsDeleted {
		return nil, ErrEquipmentNotFound
	}

	if req.TemplateID != nil {
		if _, err := s.templates.GetByID(ctx, *req.TemplateID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTemplateNotFound
			}
			return nil, err
		}
	}

	code, err := s.seq.NextCode(ctx, "inspection", "INSP", 6)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.InspectionNormal
	}

	i := &domain.Inspection{
		Code:              code,
		EquipmentID:       req.EquipmentID,
		TemplateID:        req.TemplateID,
		Type:              req.Type,
		ScheduledDate:     req.ScheduledDate,
		Status:            domain.InspectionScheduled,
		AssignedTo:        req.AssignedTo,
		EstimatedDuration: req.EstimatedDuration,
		Priority:          priority,
		HealthScoreBefore: eq.HealthScore,
		Findings:          []domain.Finding{},
		CreatedBy:         createdBy,
	}

	if err := s.inspections.Create(ctx, i); err != nil {
		return nil, err
	}

	s.bus.Publish(events.New(events.InspectionCreated, i))
	return i, nil
}

// SaveJourney records one draft save of the journey. Entry into In Progress
// is gated on every mandatory template safety check being acknowledged; a
// failed gate leaves the inspection untouched.
func (s *Service) SaveJourney(ctx context.Context, id int64, req SaveJourneyRequest) (*domain.Inspection, error) {
	i, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch i.Status {
	case domain.InspectionCompleted:
		return nil, ErrAlreadyCompleted
	case domain.InspectionCancelled:
		return nil, ErrCancelled
	}

	tmpl, err := s.template(ctx, i)
	if err != nil {
		return nil, err
	}
	if !safetyChecksSatisfied(tmpl, req.Journey.SafetyChecks) {
		return nil, ErrIncompleteSafetyChecks
	}

	now := time.Now()
	journey := req.Journey
	i.Journey = &journey
	i.Status = domain.InspectionInProgress
	i.IsDraft = req.IsDraft == nil || *req.IsDraft

	i.Resources.TotalTries++
	if req.TimeSpentHours > 0 {
		i.Resources.TotalTimeSpent += req.TimeSpentHours
	}
	switch req.Phase {
	case "measurement":
		if i.Resources.MeasurementStart == nil {
			i.Resources.MeasurementStart = &now
		}
		i.Resources.MeasurementEnd = &now
	case "engagement":
		if i.Resources.EngagementStart == nil {
			i.Resources.EngagementStart = &now
		}
		i.Resources.EngagementEnd = &now
	}

	if err := s.inspections.Save(ctx, i); err != nil {
		return nil, err
	}

	s.bus.Publish(events.New(events.InspectionUpdated, i))
	return i, nil
}

// Complete finalizes an inspection. Every mandatory checkpoint must be
// satisfied or the transition is refused with no partial side effects. On
// success the evidence-based health score is written back to the equipment
// and severe findings are converted into backlogs item by item.
func (s *Service) Complete(ctx context.Context, id int64, req CompleteInspectionRequest, completedBy int64) (*CompleteResult, error) {
	i, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch i.Status {
	case domain.InspectionCompleted:
		return nil, ErrAlreadyCompleted
	case domain.InspectionCancelled:
		return nil, ErrCancelled
	}

	if req.Journey != nil {
		journey := *req.Journey
		i.Journey = &journey
	}

	tmpl, err := s.template(ctx, i)
	if err != nil {
		return nil, err
	}
	if !checkpointsSatisfied(tmpl, i.Journey) {
		return nil, ErrIncompleteMandatoryCheckpoints
	}

	now := time.Now()
	findings := make([]domain.Finding, 0, len(req.Findings))
	failed, observations := 0, 0
	for _, f := range req.Findings {
		switch f.Status {
		case domain.FindingFailed:
			failed++
		case domain.FindingObservation:
			observations++
		}
		findings = append(findings, domain.Finding{
			ID:          uuid.NewString(),
			Description: f.Description,
			Status:      f.Status,
			Priority:    f.Priority,
			Action:      f.Action,
			Timestamp:   now,
		})
	}

	after := i.HealthScoreBefore - 10*failed - 2*observations
	if after < minHealthScoreAfter {
		after = minHealthScoreAfter
	}

	i.Findings = findings
	i.Status = domain.InspectionCompleted
	i.IsDraft = false
	i.HealthScoreAfter = &after
	i.CompletedBy = &completedBy
	i.CompletedDate = &now

	if err := s.inspections.Save(ctx, i); err != nil {
		return nil, err
	}

	if err := s.equipment.UpdateHealth(ctx, i.EquipmentID, after); err != nil {
		// the inspection itself is committed; surface the write-back failure
		return nil, err
	}

	result := &CompleteResult{Inspection: i, Backlogs: []domain.Backlog{}}
	creator := completedBy
	if creator == 0 && i.AssignedTo != nil {
		creator = *i.AssignedTo
	}
	for _, f := range i.Findings {
		if !needsBacklog(f) {
			continue
		}
		bl, err := s.backlogs.GenerateFromFinding(ctx, i, f, creator)
		if err != nil {
			result.Generation.Failure(i.ID, err)
			continue
		}
		result.Generation.Success()
		result.Backlogs = append(result.Backlogs, *bl)
	}

	s.bus.Publish(events.New(events.InspectionCompleted, i))
	return result, nil
}

// Cancel aborts any non-terminal inspection.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Inspection, error) {
	i, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch i.Status {
	case domain.InspectionCompleted:
		return nil, ErrAlreadyCompleted
	case domain.InspectionCancelled:
		return nil, ErrCancelled
	}

	i.Status = domain.InspectionCancelled
	if err := s.inspections.Save(ctx, i); err != nil {
		return nil, err
	}

	s.bus.Publish(events.New(events.InspectionUpdated, i))
	return i, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Inspection, error) {
	return s.get(ctx, id)
}

func (s *Service) List(ctx context.Context, f repository.InspectionFilter) ([]domain.Inspection, int64, error) {
	return s.inspections.List(ctx, f)
}

func (s *Service) CreateTemplate(ctx context.Context, req CreateTemplateRequest, createdBy int64) (*domain.InspectionTemplate, error) {
	t := &domain.InspectionTemplate{
		Name:          req.Name,
		EquipmentType: req.EquipmentType,
		SafetyChecks:  req.SafetyChecks,
		Checkpoints:   req.Checkpoints,
		IsActive:      true,
		CreatedBy:     createdBy,
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateTemplate(ctx context.Context, id int64, req UpdateTemplateRequest) (*domain.InspectionTemplate, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if t.IsDeleted {
		return nil, ErrTemplateNotFound
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.EquipmentType != nil {
		t.EquipmentType = *req.EquipmentType
	}
	if req.SafetyChecks != nil {
		t.SafetyChecks = *req.SafetyChecks
	}
	if req.Checkpoints != nil {
		t.Checkpoints = *req.Checkpoints
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.templates.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) ListTemplates(ctx context.Context, activeOnly bool) ([]domain.InspectionTemplate, error) {
	return s.templates.List(ctx, activeOnly)
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Inspection, error) {
	i, err := s.inspections.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if i.IsDeleted {
		return nil, ErrNotFound
	}
	return i, nil
}

func (s *Service) template(ctx context.Context, i *domain.Inspection) (*domain.InspectionTemplate, error) {
	if i.TemplateID == nil {
		return nil, nil
	}
	t, err := s.templates.GetByID(ctx, *i.TemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// safetyChecksSatisfied is a boolean gate with no partial credit: every
// mandatory template check must be acknowledged in the journey.
func safetyChecksSatisfied(tmpl *domain.InspectionTemplate, results []domain.SafetyCheckResult) bool {
	mandatory := mandatoryChecks(tmpl, func(t *domain.InspectionTemplate) []domain.TemplateCheck {
		return t.SafetyChecks
	})
	if len(mandatory) == 0 {
		return true
	}

	acked := make(map[string]bool, len(results))
	for _, r := range results {
		if r.Acknowledged {
			acked[r.ID] = true
		}
	}
	for id := range mandatory {
		if !acked[id] {
			return false
		}
	}
	return true
}

// checkpointsSatisfied requires every mandatory checkpoint complete. When no
// template is attached, the journey's own mandatory flags govern.
func checkpointsSatisfied(tmpl *domain.InspectionTemplate, journey *domain.JourneyData) bool {
	var results []domain.CheckpointResult
	if journey != nil {
		results = journey.Checkpoints
	}

	mandatory := mandatoryChecks(tmpl, func(t *domain.InspectionTemplate) []domain.TemplateCheck {
		return t.Checkpoints
	})
	if len(mandatory) > 0 {
		done := make(map[string]bool, len(results))
		for _, r := range results {
			if r.Completed {
				done[r.ID] = true
			}
		}
		for id := range mandatory {
			if !done[id] {
				return false
			}
		}
		return true
	}

	for _, r := range results {
		if r.Mandatory && !r.Completed {
			return false
		}
	}
	return true
}

func mandatoryChecks(tmpl *domain.InspectionTemplate, pick func(*domain.InspectionTemplate) []domain.TemplateCheck) map[string]bool {
	out := make(map[string]bool)
	if tmpl == nil {
		return out
	}
	for _, chk := range pick(tmpl) {
		if chk.Mandatory {
			out[chk.ID] = true
		}
	}
	return out
}

// needsBacklog selects findings severe enough to become maintenance work:
// anything failed, or anything high/critical regardless of outcome.
func needsBacklog(f domain.Finding) bool {
	if f.Status == domain.FindingFailed {
		return true
	}
	return f.Priority == domain.FindingHigh || f.Priority == domain.FindingCritical
}
