package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidMonth         ErrorCode = 101
	ErrCodeUnknownField         ErrorCode = 102
	ErrCodeInvalidWindow        ErrorCode = 103
	ErrCodeInvalidConfiguration ErrorCode = 104
	ErrCodeInvalidVersion       ErrorCode = 105
	ErrCodeMissingParameter     ErrorCode = 106

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeParseFailed           ErrorCode = 203

	// Report errors (300-399)
	ErrCodeReportFailed ErrorCode = 300

	// Output errors (400-499)
	ErrCodeWriteFailed    ErrorCode = 400
	ErrCodeRenderFailed   ErrorCode = 401
	ErrCodeFinalizeFailed ErrorCode = 402
)
