package equipment

import (
	"context"
	"errors"
	"strings"
	"time"

	"mms/internal/domain"
	"mms/internal/events"
	"mms/internal/pkg/validator"
	"mms/internal/repository"

	"gorm.io/gorm"
)

const defaultNextMaintenanceHours = 1000

type Service struct {
	repo EquipmentRepository
	seq  SequenceAllocator
	bus  events.Publisher
}

func NewService(repo EquipmentRepository, seq SequenceAllocator, bus events.Publisher) *Service {
	return &Service{repo: repo, seq: seq, bus: bus}
}

func (s *Service) Create(ctx context.Context, req CreateEquipmentRequest, createdBy int64) (*domain.Equipment, error) {
	if !validType(req.Type) || !validCriticality(req.Criticality) {
		return nil, ErrValidation
	}
	if req.Level < 1 || req.Level > 5 {
		return nil, ErrValidation
	}

	if err := s.validateHierarchy(ctx, req.Level, req.ParentID); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		prefix := strings.ToUpper(string(req.Type))
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		var err error
		code, err = s.seq.NextCode(ctx, "equipment:"+string(req.Type), prefix, 4)
		if err != nil {
			return nil, err
		}
	}

	nextHours := req.NextMaintenanceHours
	if nextHours <= 0 {
		nextHours = defaultNextMaintenanceHours
	}

	e := &domain.Equipment{
		Code:                 code,
		Name:                 req.Name,
		Type:                 req.Type,
		Level:                req.Level,
		ParentID:             req.ParentID,
		Criticality:          req.Criticality,
		Location:             req.Location,
		Status:               domain.EquipmentActive,
		Description:          req.Description,
		Manufacturer:         req.Manufacturer,
		Model:                req.Model,
		SerialNumber:         req.SerialNumber,
		CommissionDate:       req.CommissionDate,
		RunningHours:         req.RunningHours,
		NextMaintenanceHours: nextHours,
		Specifications:       specsToJSON(req.Specifications),
		HealthScore:          100,
		UptimePercentage:     100,
		CreatedBy:            createdBy,
	}

	if errs := validator.Validate(e); errs != nil {
		return nil, ErrValidation
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.bus.Publish(events.New(events.EquipmentCreated, e))
	return e, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateEquipmentRequest) (*domain.Equipment, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Criticality != nil {
		if !validCriticality(*req.Criticality) {
			return nil, ErrValidation
		}
		e.Criticality = *req.Criticality
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Manufacturer != nil {
		e.Manufacturer = *req.Manufacturer
	}
	if req.Model != nil {
		e.Model = *req.Model
	}
	if req.SerialNumber != nil {
		e.SerialNumber = *req.SerialNumber
	}
	if req.CommissionDate != nil {
		e.CommissionDate = req.CommissionDate
	}
	if req.RunningHours != nil {
		e.RunningHours = *req.RunningHours
	}
	if req.NextMaintenanceHours != nil {
		e.NextMaintenanceHours = *req.NextMaintenanceHours
	}
	if req.UptimePercentage != nil {
		e.UptimePercentage = *req.UptimePercentage
	}
	if req.Specifications != nil {
		e.Specifications = specsToJSON(req.Specifications)
	}

	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}

	s.bus.Publish(events.New(events.EquipmentUpdated, e))
	return e, nil
}

// SetParent moves a node under a new parent. The write is versioned so two
// concurrent reparenting operations on siblings cannot interleave; the loser
// re-reads and retries once before surfacing ErrConflict.
func (s *Service) SetParent(ctx context.Context, id int64, newParentID *int64) (*domain.Equipment, error) {
	for attempt := 0; attempt < 2; attempt++ {
		e, err := s.get(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := s.validateHierarchy(ctx, e.Level, newParentID); err != nil {
			return nil, err
		}
		if newParentID != nil && *newParentID == id {
			return nil, ErrHierarchyViolation
		}

		e.ParentID = newParentID
		err = s.repo.SaveVersioned(ctx, e)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		s.bus.Publish(events.New(events.EquipmentUpdated, e))
		return e, nil
	}
	return nil, ErrConflict
}

// Delete soft-deletes a leaf node. Nodes with non-deleted children are
// refused so the tree never dangles.
func (s *Service) Delete(ctx context.Context, id int64) error {
	e, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	hasChildren, err := s.repo.HasActiveChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return ErrHasActiveChildren
	}

	e.IsDeleted = true
	if err := s.repo.Save(ctx, e); err != nil {
		return err
	}

	s.bus.Publish(events.New(events.EquipmentDeleted, e.ID))
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	// children are a query, never a stored array
	children, err := s.repo.FindByParent(ctx, &e.ID)
	if err != nil {
		return nil, err
	}
	e.Children = children
	return e, nil
}

func (s *Service) List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, int64, error) {
	return s.repo.List(ctx, f)
}

// Children returns the derived children set for a node.
func (s *Service) Children(ctx context.Context, id int64) ([]domain.Equipment, error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.FindByParent(ctx, &id)
}

// Hierarchy builds the full tree from the roots down, recomputing children
// at every level.
func (s *Service) Hierarchy(ctx context.Context) ([]TreeNode, error) {
	return s.subtree(ctx, nil)
}

func (s *Service) subtree(ctx context.Context, parentID *int64) ([]TreeNode, error) {
	rows, err := s.repo.FindByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}

	nodes := make([]TreeNode, 0, len(rows))
	for _, row := range rows {
		id := row.ID
		kids, err := s.subtree(ctx, &id)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, TreeNode{Equipment: row, Nodes: kids})
	}
	return nodes, nil
}

// FullPath walks parents upward and renders "Plant > Line > Pump".
func (s *Service) FullPath(ctx context.Context, id int64) (string, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return "", err
	}

	path := []string{e.Name}
	for e.ParentID != nil {
		e, err = s.repo.GetByID(ctx, *e.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return "", err
		}
		path = append([]string{e.Name}, path...)
	}
	return strings.Join(path, " > "), nil
}

// RecalculateHealth applies the baseline formula and stores the result.
func (s *Service) RecalculateHealth(ctx context.Context, id int64) (*domain.Equipment, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	e.HealthScore = Score(e, time.Now())
	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}

	s.bus.Publish(events.New(events.EquipmentUpdated, e))
	return e, nil
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Equipment, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if e.IsDeleted {
		return nil, ErrNotFound
	}
	return e, nil
}

// validateHierarchy enforces parent.level == level-1 and level 1 == no
// parent. A missing parent is a hierarchy violation, not a bare not-found.
func (s *Service) validateHierarchy(ctx context.Context, level int, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	if level == 1 {
		return ErrHierarchyViolation
	}

	parent, err := s.repo.GetByID(ctx, *parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHierarchyViolation
		}
		return err
	}
	if parent.IsDeleted {
		return ErrHierarchyViolation
	}
	if parent.Level != level-1 {
		return ErrHierarchyViolation
	}
	return nil
}

func validType(t domain.EquipmentType) bool {
	switch t {
	case domain.EquipmentPlant, domain.EquipmentEquipment, domain.EquipmentAssembly,
		domain.EquipmentSubAssembly, domain.EquipmentComponent:
		return true
	}
	return false
}

func validCriticality(c domain.Criticality) bool {
	switch c {
	case domain.CriticalityA, domain.CriticalityB, domain.CriticalityC:
		return true
	}
	return false
}
