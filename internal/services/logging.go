package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// LogLevel represents different log levels for service operations
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

type requestIDKey struct{}

// WithRequestID stores the request id so that service logs can carry it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service     string
	Component   string
	EnableDebug bool
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// ===== OPERATION LOGGING =====

func (l *ServiceLogger) LogOperation(ctx context.Context, operation, resourceType, resourceID string, duration time.Duration, err error) {
	logLevel := LogLevelInfo
	status := "success"

	if err != nil {
		logLevel = LogLevelError
		status = "error"

		// Adjust log level based on error type
		if IsValidation(err) || IsBusinessRule(err) {
			logLevel = LogLevelWarn
			status = "validation_error"
		} else if IsNotFound(err) {
			logLevel = LogLevelInfo
			status = "not_found"
		} else if IsUnavailable(err) {
			logLevel = LogLevelWarn
			status = "unavailable"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("resource_type", resourceType),
		slog.String("resource_id", resourceID),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var validationErrs ValidationErrors
		var businessErr *BusinessRuleError
		if errors.As(err, &validationErrs) {
			attrs = append(attrs, slog.Int("validation_errors_count", len(validationErrs)))
		} else if errors.As(err, &businessErr) {
			attrs = append(attrs, slog.String("business_rule", businessErr.Rule))
		}
	}

	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok && requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	message := fmt.Sprintf("%s operation %s", operation, status)

	switch logLevel {
	case LogLevelDebug:
		if l.config.EnableDebug {
			l.logger.LogAttrs(ctx, slog.LevelDebug, message, attrs...)
		}
	case LogLevelInfo:
		l.logger.LogAttrs(ctx, slog.LevelInfo, message, attrs...)
	case LogLevelWarn:
		l.logger.LogAttrs(ctx, slog.LevelWarn, message, attrs...)
	case LogLevelError:
		l.logger.LogAttrs(ctx, slog.LevelError, message, attrs...)
	}
}

// LogValidationWarnings records non-blocking validation findings.
func (l *ServiceLogger) LogValidationWarnings(ctx context.Context, operation, resourceID string, warnings ValidationErrors) {
	if len(warnings) == 0 {
		return
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("resource_id", resourceID),
		slog.Int("warning_count", len(warnings)),
	}

	for i, w := range warnings {
		if i < 5 { // Limit to first 5 warnings to avoid log spam
			attrs = append(attrs, slog.Group(fmt.Sprintf("warning_%d", i+1),
				slog.String("field", w.Field),
				slog.String("message", w.Message),
				slog.Any("value", w.Value),
			))
		}
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Grade entries outside configured range", attrs...)
}

// LogCacheFailure records a cache error that did not fail the request.
func (l *ServiceLogger) LogCacheFailure(ctx context.Context, operation, key string, err error) {
	l.logger.LogAttrs(ctx, slog.LevelWarn, "Cache operation failed",
		slog.String("operation", operation),
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// LogEventFailure records an event that could not be published.
func (l *ServiceLogger) LogEventFailure(ctx context.Context, eventType, eventID string, err error) {
	l.logger.LogAttrs(ctx, slog.LevelWarn, "Event publish failed",
		slog.String("event_type", eventType),
		slog.String("event_id", eventID),
		slog.String("error", err.Error()),
	)
}
