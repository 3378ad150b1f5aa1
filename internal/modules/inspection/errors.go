package inspection

import "errors"

var (
	ErrValidation                     = errors.New("validation error")
	ErrNotFound                       = errors.New("inspection not found")
	ErrEquipmentNotFound              = errors.New("equipment not found")
	ErrTemplateNotFound               = errors.New("inspection template not found")
	ErrAlreadyCompleted               = errors.New("inspection already completed")
	ErrCancelled                      = errors.New("inspection is cancelled")
	ErrIncompleteSafetyChecks         = errors.New("mandatory safety checks not acknowledged")
	ErrIncompleteMandatoryCheckpoints = errors.New("mandatory checkpoints not completed")
)
