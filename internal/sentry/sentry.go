package sentry

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/middleware"
)

// Init initializes Sentry. An empty DSN leaves Sentry disabled.
// Tracing stays with OpenTelemetry.
func Init(dsn, env, serviceName, serviceVersion string) error {
	if dsn == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		ServerName:       serviceName,
		Release:          serviceVersion,
		AttachStacktrace: true,
		TracesSampleRate: 0.0,
		BeforeSend:       dropValidation,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}
	return nil
}

// Flush waits for pending events. Call it during shutdown.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

// Recover captures a panic and forwards it to Sentry.
func Recover() {
	sentry.Recover()
}

// CaptureError reports err on the request's hub, or the global hub when the
// context has none. AppErrors are tagged with their type and code so model
// outages group apart from bugs. A no-op when Sentry is not initialized.
func CaptureError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tagsFor(err))
		if id, ok := middleware.GetRequestID(ctx); ok {
			scope.SetTag("request_id", id)
		}
		hub.CaptureException(err)
	})
}

func tagsFor(err error) map[string]string {
	appErr, ok := apperrors.As(err)
	if !ok {
		return map[string]string{"error.type": "unclassified"}
	}
	return map[string]string{
		"error.type":        string(appErr.Type),
		"error.code":        appErr.ErrorCode,
		"error.operational": fmt.Sprint(appErr.IsOperational),
	}
}

// dropValidation keeps validation failures out of Sentry even if a caller
// captures them.
func dropValidation(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	if hint == nil || hint.OriginalException == nil {
		return event
	}
	if apperrors.IsType(hint.OriginalException, apperrors.ErrorTypeValidation) {
		return nil
	}
	return event
}
