package repository

import (
	"context"
	"errors"
	"fmt"

	"mms/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceRepository allocates monotonically increasing values from a
// dedicated counter row locked for the duration of the increment. Concurrent
// creates therefore never observe the same value, unlike the
// count-rows-plus-one scheme this replaces.
type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

func (r *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq domain.Sequence
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).
			First(&seq).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = domain.Sequence{Name: name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
				return err
			}
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("name = ?", name).
				First(&seq).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		seq.Value++
		if err := tx.Model(&domain.Sequence{}).
			Where("name = ?", name).
			Update("value", seq.Value).Error; err != nil {
			return err
		}
		value = seq.Value
		return nil
	})
	return value, err
}

// NextCode allocates the next value for name and formats it as a padded
// entity code, e.g. NextCode(ctx, "workorder", "WO", 6) -> "WO-000042".
func (r *SequenceRepository) NextCode(ctx context.Context, name, prefix string, width int) (string, error) {
	n, err := r.Next(ctx, name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%0*d", prefix, width, n), nil
}
