package repository

import (
	"context"
	"time"

	"mms/internal/domain"

	"gorm.io/gorm"
)

type PMFilter struct {
	EquipmentID int64
	Status      domain.PMStatus
	AssignedTo  int64
	Search      string
	Page        int
	Limit       int
}

type PMRepository struct {
	db *gorm.DB
}

func NewPMRepository(db *gorm.DB) *PMRepository {
	return &PMRepository{db: db}
}

func (r *PMRepository) Create(ctx context.Context, s *domain.PMSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *PMRepository) Save(ctx context.Context, s *domain.PMSchedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *PMRepository) GetByID(ctx context.Context, id int64) (*domain.PMSchedule, error) {
	var s domain.PMSchedule
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PMRepository) List(ctx context.Context, f PMFilter) ([]domain.PMSchedule, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.PMSchedule{}).Where("is_deleted = ?", false)

	if f.EquipmentID > 0 {
		q = q.Where("equipment_id = ?", f.EquipmentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
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

	var out []domain.PMSchedule
	err := q.Order("next_due DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

// FindDueBefore returns schedules whose next_due has passed and whose stored
// status has not caught up with that fact yet.
func (r *PMRepository) FindDueBefore(ctx context.Context, now time.Time) ([]domain.PMSchedule, error) {
	var out []domain.PMSchedule
	err := r.db.WithContext(ctx).
		Where("next_due < ? AND status NOT IN ? AND is_deleted = ?",
			now, []domain.PMStatus{domain.PMCompleted, domain.PMOverdue}, false).
		Find(&out).Error
	return out, err
}

func (r *PMRepository) ExistsForEquipment(ctx context.Context, equipmentID int64, freq domain.PMFrequency) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.PMSchedule{}).
		Where("equipment_id = ? AND frequency = ? AND is_deleted = ?", equipmentID, freq, false).
		Count(&cnt).Error
	return cnt > 0, err
}
