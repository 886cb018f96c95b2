package main

import (
	"fmt"
	"time"

	"codeberg.org/mutker/erraruga/pkg/apperror"
	"codeberg.org/mutker/erraruga/pkg/resolver"
)

const (
	codeValidation    = "VALIDATION_ERROR"
	codeNotFound      = "NOT_FOUND"
	codePermission    = "PERMISSION_DENIED"
	codeNetwork       = "NETWORK_ERROR"
	codeCustom        = "CUSTOM_ERROR"
	codeUnknown       = "UNKNOWN_ERROR"
	codeDatabase      = "DATABASE_ERROR"
	codeConfiguration = "CONFIGURATION_ERROR"

	contextUser   = "UserContext"
	contextSystem = "SystemContext"
)

// Metadata keys used by the demo errors.
const (
	metaField      = "Field"
	metaTimestamp  = "Timestamp"
	metaOperation  = "Operation"
	metaRetryCount = "RetryCount"
	metaUserID     = "UserId"
	metaSessionID  = "SessionId"
	metaLevel      = "ErrorLevel"
	metaCategory   = "Category"
	metaSource     = "Source"
	metaTarget     = "Target"
	metaVersion    = "Version"
)

func messageOf(prefix string) resolver.Handler {
	return func(e *apperror.Error) string { return prefix + e.Message() }
}

// registerDemoRules installs the rules of the demo error service.
func registerDemoRules(r *resolver.Resolver) {
	r.WithDefaultRule(resolver.Must(resolver.NewRule(codeValidation, messageOf("Validation error: ")))).
		WithDefaultRule(resolver.Must(resolver.NewRule(codeNotFound, func(e *apperror.Error) string {
			return "Resource not found: " + e.Context()
		}))).
		WithDefaultRule(resolver.Must(resolver.NewRule(codePermission, func(*apperror.Error) string {
			return "Access denied"
		}))).
		WithDefaultRule(resolver.Must(resolver.NewRule(codeNetwork, messageOf("Network error: ")))).
		WithDefaultRule(resolver.Must(resolver.NewRule(codeDatabase, messageOf("Database error: ")))).
		WithDefaultRule(resolver.Must(resolver.NewRule(codeConfiguration, messageOf("Configuration error: ")))).
		WithRule(resolver.Must(resolver.NewContextRule(codeCustom, contextUser, messageOf("User error: ")))).
		WithRule(resolver.Must(resolver.NewContextRule(codeCustom, contextSystem, messageOf("System error: "))))
}

// demoService builds the demo errors, stamping each with the calling method
// as context.
type demoService struct {
	now func() time.Time
}

func newDemoService() *demoService {
	return &demoService{now: time.Now}
}

func (s *demoService) stamp(e *apperror.Error, level, category string) *apperror.Error {
	return e.AppendMetadata(metaTimestamp, s.now()).
		AppendMetadata(metaLevel, level).
		AppendMetadata(metaCategory, category)
}

func (s *demoService) validationError(field, message string) *apperror.Error {
	e := apperror.New(codeValidation, apperror.WithMessage(message), apperror.WithContext(apperror.RuntimeContext()))
	e.AppendMetadata(metaField, field)

	return s.stamp(e, "Warning", "Validation")
}

func (s *demoService) notFoundError(resource string) *apperror.Error {
	e := apperror.New(codeNotFound,
		apperror.WithMessage(fmt.Sprintf("Resource '%s' not found", resource)),
		apperror.WithContext(apperror.RuntimeContext()))
	e.AppendMetadata(metaTarget, resource)

	return s.stamp(e, "Info", "Resource")
}

func (s *demoService) permissionError(userID string) *apperror.Error {
	e := apperror.New(codePermission,
		apperror.WithMessage("Insufficient permissions for operation"),
		apperror.WithContext(apperror.RuntimeContext()))
	if userID != "" {
		e.AppendMetadata(metaUserID, userID)
	}

	return s.stamp(e, "Error", "Security")
}

func (s *demoService) networkError(operation string, retries int) *apperror.Error {
	e := apperror.New(codeNetwork,
		apperror.WithMessage("Error during operation: "+operation),
		apperror.WithContext(apperror.RuntimeContext()))
	e.AppendMetadata(metaOperation, operation).AppendMetadata(metaRetryCount, retries)

	return s.stamp(e, "Error", "Network")
}

func (s *demoService) databaseError(operation string) *apperror.Error {
	e := apperror.New(codeDatabase,
		apperror.WithMessage("Database operation failed: "+operation),
		apperror.WithContext(apperror.RuntimeContext()))
	e.AppendMetadata(metaOperation, operation).AppendMetadata(metaSource, "SQLite")

	return s.stamp(e, "Critical", "Database")
}

func (s *demoService) configurationError(setting, value string) *apperror.Error {
	e := apperror.New(codeConfiguration,
		apperror.WithMessage("Configuration error for setting: "+setting),
		apperror.WithContext(apperror.RuntimeContext()))
	e.AppendMetadata(metaField, setting).AppendMetadata(metaVersion, version)
	if value != "" {
		e.AppendMetadata(metaTarget, value)
	}

	return s.stamp(e, "Error", "Configuration")
}

func (s *demoService) customError(message, context, userID, sessionID string) *apperror.Error {
	e := apperror.New(codeCustom, apperror.WithMessage(message), apperror.WithContext(context))
	if userID != "" {
		e.AppendMetadata(metaUserID, userID)
	}
	if sessionID != "" {
		e.AppendMetadata(metaSessionID, sessionID)
	}

	return s.stamp(e, "Info", "Custom")
}

func (s *demoService) unknownError(cause error) *apperror.Error {
	var e *apperror.Error
	if cause != nil {
		e = apperror.FromError(cause, codeUnknown, apperror.RuntimeContext(), "")
	} else {
		e = apperror.New(codeUnknown,
			apperror.WithMessage("Unknown error occurred"),
			apperror.WithContext(apperror.RuntimeContext()))
	}

	return s.stamp(e, "Critical", "System")
}

// scenarios lists the demo errors in display order.
func (s *demoService) scenarios() []*apperror.Error {
	return []*apperror.Error{
		s.validationError("Email", "Invalid email format"),
		s.notFoundError("User"),
		s.permissionError("user123"),
		s.networkError("Data loading", 5),
		s.databaseError("SELECT * FROM users"),
		s.configurationError("ConnectionString", "invalid_connection"),
		s.customError("User not authorized", contextUser, "user123", "session456"),
		s.customError("Database connection failed", contextSystem, "system", "sys789"),
		s.unknownError(nil),
		s.unknownError(fmt.Errorf("simulated failure in %s", "demo")),
	}
}
