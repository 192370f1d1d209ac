package logging

// Standard field names and values for structured logging
const (
	FieldService   = "service"
	FieldVersion   = "version"
	FieldComponent = "component"
	FieldError     = "error"
	FieldErrorKind = "error_kind"
	FieldRunID     = "run_id"

	FieldDriver     = "driver"
	FieldDatabase   = "database"
	FieldMigration  = "migration"
	FieldChecksum   = "checksum"
	FieldOperation  = "operation"
	FieldDurationMs = "duration_ms"
	FieldRows       = "rows"

	FieldChunkIndex = "chunk"
	FieldChunkSize  = "chunk_size"
	FieldChunkCount = "chunk_count"
	FieldTotal      = "total"
	FieldExisting   = "existing"

	// Log levels
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)
