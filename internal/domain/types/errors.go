package types

import "errors"

// Sentinel kinds for publish errors, shared by the service and its callers.
var (
	ErrAccessDenied      = errors.New("access denied")
	ErrPublishDisabled   = errors.New("publishing is disabled")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrParse             = errors.New("upload could not be parsed")
)
