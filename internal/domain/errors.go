package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrPremiumRequired = errors.New("premium subscription required")
	ErrStepIncomplete  = errors.New("current step is incomplete")
	ErrSessionNotFound = errors.New("wizard session not found")
	ErrInvalidDocument = errors.New("invalid document")
	ErrExportFailed    = errors.New("export failed")
	ErrPersistence     = errors.New("persistence unavailable")
	ErrUnknownTemplate = errors.New("unknown template")
)
