package backlog

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("backlog not found")
	ErrNotEligible = errors.New("backlog not eligible for work order generation")
	ErrEmptyBatch  = errors.New("no backlog ids provided")
)
