package workorder

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("work order not found")
	ErrAlreadyCompleted  = errors.New("work order already completed")
	ErrEquipmentNotFound = errors.New("equipment not found")
)
