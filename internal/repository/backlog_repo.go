package repository

import (
	"context"

	"mms/internal/domain"

	"gorm.io/gorm"
)

type BacklogFilter struct {
	EquipmentID int64
	Status      domain.BacklogStatus
	Priority    domain.BacklogPriority
	Category    string
	AssignedTo  int64
	Search      string
	Page        int
	Limit       int
}

type BacklogRepository struct {
	db *gorm.DB
}

func NewBacklogRepository(db *gorm.DB) *BacklogRepository {
	return &BacklogRepository{db: db}
}

func (r *BacklogRepository) Create(ctx context.Context, b *domain.Backlog) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BacklogRepository) Save(ctx context.Context, b *domain.Backlog) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BacklogRepository) GetByID(ctx context.Context, id int64) (*domain.Backlog, error) {
	var b domain.Backlog
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BacklogRepository) List(ctx context.Context, f BacklogFilter) ([]domain.Backlog, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Backlog{}).Where("is_deleted = ?", false)

	if f.EquipmentID > 0 {
		q = q.Where("equipment_id = ?", f.EquipmentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.AssignedTo > 0 {
		q = q.Where("assigned_to = ?", f.AssignedTo)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("code LIKE ? OR issue LIKE ?", like, like)
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

	var out []domain.Backlog
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}
