package pm

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("pm schedule not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
)
