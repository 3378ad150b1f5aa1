package rules

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("rule not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
)
