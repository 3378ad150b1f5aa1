package repository

import (
	"context"

	"mms/internal/domain"

	"gorm.io/gorm"
)

type InspectionFilter struct {
	EquipmentID int64
	Status      domain.InspectionStatus
	Type        string
	AssignedTo  int64
	Search      string
	Page        int
	Limit       int
}

type InspectionRepository struct {
	db *gorm.DB
}

func NewInspectionRepository(db *gorm.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

func (r *InspectionRepository) Create(ctx context.Context, i *domain.Inspection) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *InspectionRepository) Save(ctx context.Context, i *domain.Inspection) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *InspectionRepository) GetByID(ctx context.Context, id int64) (*domain.Inspection, error) {
	var i domain.Inspection
	if err := r.db.WithContext(ctx).First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InspectionRepository) List(ctx context.Context, f InspectionFilter) ([]domain.Inspection, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Inspection{}).Where("is_deleted = ?", false)

	if f.EquipmentID > 0 {
		q = q.Where("equipment_id = ?", f.EquipmentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.AssignedTo > 0 {
		q = q.Where("assigned_to = ?", f.AssignedTo)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("code LIKE ? OR type LIKE ?", like, like)
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

	var out []domain.Inspection
	err := q.Order("scheduled_date DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, t *domain.InspectionTemplate) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TemplateRepository) Save(ctx context.Context, t *domain.InspectionTemplate) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TemplateRepository) GetByID(ctx context.Context, id int64) (*domain.InspectionTemplate, error) {
	var t domain.InspectionTemplate
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) List(ctx context.Context, activeOnly bool) ([]domain.InspectionTemplate, error) {
	q := r.db.WithContext(ctx).Where("is_deleted = ?", false)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var out []domain.InspectionTemplate
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}
