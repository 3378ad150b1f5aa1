package domain

// Sequence backs atomic, gap-free code allocation (BL-000001, WO-000001, ...).
// Codes are never derived from row counts; see the sequence repository.
type Sequence struct {
	Name  string `gorm:"primaryKey"`
	Value int64
}

func (Sequence) TableName() string { return "sequences" }
