package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Catalog errors
	ErrInvalidTemplate ErrorCode = "catalog_template_invalid"
	ErrDecodeCatalog   ErrorCode = "catalog_decode_failed"
	ErrEncodeCatalog   ErrorCode = "catalog_encode_failed"

	// Storage errors
	ErrStorageInit            ErrorCode = "storage_init_failed"
	ErrStorageAccess          ErrorCode = "storage_access_failed"
	ErrStorageClose           ErrorCode = "storage_close_failed"
	ErrSchemaInitFailed       ErrorCode = "schema_init_failed"
	ErrSchemaValidationFailed ErrorCode = "schema_validation_failed"
	ErrSchemaMigrationFailed  ErrorCode = "schema_migration_failed"
	ErrTransactionFailed      ErrorCode = "transaction_failed"

	// Metrics errors
	ErrInitMetrics ErrorCode = "init_metrics_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:               "Internal error occurred",
	ErrInvalidArgument:        "Invalid argument provided",
	ErrInvalidConfig:          "Invalid configuration",
	ErrBindFlags:              "Failed to bind flags",
	ErrReadConfig:             "Failed to read configuration",
	ErrInvalidLogLevel:        "Invalid log level",
	ErrInvalidTemplate:        "Invalid message template",
	ErrDecodeCatalog:          "Failed to decode rule catalog",
	ErrEncodeCatalog:          "Failed to encode rule catalog",
	ErrStorageInit:            "Failed to initialize storage",
	ErrStorageAccess:          "Failed to access storage",
	ErrStorageClose:           "Failed to close storage",
	ErrSchemaInitFailed:       "Failed to initialize schema",
	ErrSchemaValidationFailed: "Failed to validate schema",
	ErrSchemaMigrationFailed:  "Failed to migrate schema",
	ErrTransactionFailed:      "Transaction failed",
	ErrInitMetrics:            "Failed to initialize metrics",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
