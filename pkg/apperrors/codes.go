package apperrors

// Error kinds grouped by where in the ingest pipeline they originate.
// The string values are the machine-readable errorKind returned to clients.
const (
	// Request validation (the ingest gate; no side effects happened yet)
	CodeMissingFile          ErrorCode = "MissingFile"
	CodeUnsupportedMediaType ErrorCode = "UnsupportedMediaType"
	CodePayloadTooLarge      ErrorCode = "PayloadTooLarge"
	CodeMissingCaption       ErrorCode = "MissingCaption"
	CodeValidationFailed     ErrorCode = "ValidationFailed"

	// External collaborators
	CodeUploadFailed      ErrorCode = "UploadFailed"
	CodePersistenceFailed ErrorCode = "PersistenceFailed"

	// Anything unanticipated
	CodeInternal ErrorCode = "Internal"
)
