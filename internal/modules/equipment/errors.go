package equipment

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("equipment not found")
	ErrHierarchyViolation = errors.New("invalid hierarchy level")
	ErrHasActiveChildren  = errors.New("equipment has active children")
	ErrConflict           = errors.New("concurrent modification conflict")
)
