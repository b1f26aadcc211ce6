package service

import "github.com/okian/standings/internal/domain/types"

// Sentinel kinds for service errors.
var (
	ErrAccessDenied      = types.ErrAccessDenied
	ErrPublishDisabled   = types.ErrPublishDisabled
	ErrUnsupportedFormat = types.ErrUnsupportedFormat
	ErrParse             = types.ErrParse
)
