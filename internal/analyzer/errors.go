package analyzer

import "errors"

var (
	// ErrUnsupportedRiskType means no analyzer is registered for the requested type.
	ErrUnsupportedRiskType = errors.New("unsupported risk type")
	// ErrMissingTargetMessage means a keyword analysis was requested without a message.
	ErrMissingTargetMessage = errors.New("keyword analysis requires a target message")
)
