package repository

import (
	"context"

	"mms/internal/domain"

	"gorm.io/gorm"
)

type WorkOrderFilter struct {
	EquipmentID int64
	Status      domain.WorkOrderStatus
	Priority    domain.BacklogPriority
	Type        domain.WorkOrderType
	Origin      domain.WorkOrderOrigin
	AssignedTo  int64
	Search      string
	Page        int
	Limit       int
}

type WorkOrderRepository struct {
	db *gorm.DB
}

func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

func (r *WorkOrderRepository) Create(ctx context.Context, w *domain.WorkOrder) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WorkOrderRepository) Save(ctx context.Context, w *domain.WorkOrder) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *WorkOrderRepository) GetByID(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	var w domain.WorkOrder
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkOrderRepository) List(ctx context.Context, f WorkOrderFilter) ([]domain.WorkOrder, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.WorkOrder{}).Where("is_deleted = ?", false)

	if f.EquipmentID > 0 {
		q = q.Where("equipment_id = ?", f.EquipmentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Origin != "" {
		q = q.Where("wo_type = ?", f.Origin)
	}
	if f.AssignedTo > 0 {
		q = q.Where("assigned_to = ?", f.AssignedTo)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("code LIKE ? OR title LIKE ?", like, like)
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

	var out []domain.WorkOrder
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}
