package repository

import (
	"context"
	"errors"
	"time"

	"mms/internal/domain"

	"gorm.io/gorm"
)

// ErrVersionConflict is returned when an optimistic update loses the race
// against a concurrent writer.
var ErrVersionConflict = errors.New("equipment version conflict")

type EquipmentFilter struct {
	Search      string
	Level       int
	Criticality domain.Criticality
	Status      domain.EquipmentStatus
	Type        domain.EquipmentType
	ParentID    *int64
	Page        int
	Limit       int
}

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	e.Version = 1
	return r.db.WithContext(ctx).Create(e).Error
}

// Save persists every field without a version check. Used for writes where
// last-writer-wins is acceptable (health score display, cost accumulation).
func (r *EquipmentRepository) Save(ctx context.Context, e *domain.Equipment) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// SaveVersioned persists e only if nobody else has written the row since it
// was read. Structural mutations (reparenting) must use this path.
func (r *EquipmentRepository) SaveVersioned(ctx context.Context, e *domain.Equipment) error {
	current := e.Version
	e.Version = current + 1
	tx := r.db.WithContext(ctx).
		Model(&domain.Equipment{}).
		Where("id = ? AND version = ?", e.ID, current).
		Select("*").
		Omit("created_at").
		Updates(e)
	if tx.Error != nil {
		e.Version = current
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		e.Version = current
		return ErrVersionConflict
	}
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	var e domain.Equipment
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) List(ctx context.Context, f EquipmentFilter) ([]domain.Equipment, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Equipment{}).Where("is_deleted = ?", false)

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR code LIKE ? OR location LIKE ?", like, like, like)
	}
	if f.Level > 0 {
		q = q.Where("level = ?", f.Level)
	}
	if f.Criticality != "" {
		q = q.Where("criticality = ?", f.Criticality)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.ParentID != nil {
		q = q.Where("parent_id = ?", *f.ParentID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var out []domain.Equipment
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

// FindByParent returns the derived children set: every non-deleted row whose
// parent_id matches. A nil parentID selects the roots.
func (r *EquipmentRepository) FindByParent(ctx context.Context, parentID *int64) ([]domain.Equipment, error) {
	q := r.db.WithContext(ctx).Where("is_deleted = ?", false)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}

	var out []domain.Equipment
	err := q.Order("name").Find(&out).Error
	return out, err
}

func (r *EquipmentRepository) HasActiveChildren(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Equipment{}).
		Where("parent_id = ? AND is_deleted = ?", id, false).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *EquipmentRepository) ListActiveByType(ctx context.Context, t domain.EquipmentType) ([]domain.Equipment, error) {
	var out []domain.Equipment
	err := r.db.WithContext(ctx).
		Where("type = ? AND status = ? AND is_deleted = ?", t, domain.EquipmentActive, false).
		Find(&out).Error
	return out, err
}

func (r *EquipmentRepository) UpdateHealth(ctx context.Context, id int64, score int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Equipment{}).
		Where("id = ?", id).
		Update("health_score", score).Error
}

// ApplyMaintenance records a completed maintenance touch: the running-hours
// baseline resets and the maintenance timestamp advances.
func (r *EquipmentRepository) ApplyMaintenance(ctx context.Context, id int64, lastMaintenanceHours float64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Equipment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_maintenance_hours": lastMaintenanceHours,
			"last_maintenance":       at,
		}).Error
}

// AddMaintenanceCost accumulates cost; it never overwrites the running total.
func (r *EquipmentRepository) AddMaintenanceCost(ctx context.Context, id int64, cost float64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Equipment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"maintenance_cost": gorm.Expr("maintenance_cost + ?", cost),
			"last_maintenance": at,
		}).Error
}
