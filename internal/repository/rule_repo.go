package repository

import (
	"context"

	"mms/internal/domain"

	"gorm.io/gorm"
)

type RuleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) Create(ctx context.Context, rule *domain.AutoWorkOrderRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *RuleRepository) Save(ctx context.Context, rule *domain.AutoWorkOrderRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *RuleRepository) GetByID(ctx context.Context, id int64) (*domain.AutoWorkOrderRule, error) {
	var rule domain.AutoWorkOrderRule
	if err := r.db.WithContext(ctx).First(&rule, id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *RuleRepository) List(ctx context.Context) ([]domain.AutoWorkOrderRule, error) {
	var out []domain.AutoWorkOrderRule
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *RuleRepository) ListActive(ctx context.Context) ([]domain.AutoWorkOrderRule, error) {
	var out []domain.AutoWorkOrderRule
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_deleted = ?", true, false).
		Find(&out).Error
	return out, err
}
