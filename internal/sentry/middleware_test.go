package sentry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getsentry/sentry-go"

	apperrors "github.com/socialchef/sous/internal/errors"
)

func TestHTTPMiddlewareRecoversPanic(t *testing.T) {
	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
}

func TestHTTPMiddlewarePassesThrough(t *testing.T) {
	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusTeapot {
		t.Errorf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}
}

func TestHTTPMiddlewareBreadcrumbVisibleToHandler(t *testing.T) {
	var crumbs []*sentry.Breadcrumb
	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub := sentry.GetHubFromContext(r.Context())
		if hub == nil {
			t.Fatal("expected a hub on the request context")
		}
		event := hub.Scope().ApplyToEvent(sentry.NewEvent(), nil, nil)
		crumbs = event.Breadcrumbs
		w.WriteHeader(http.StatusBadGateway)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/ingredients", nil))

	if len(crumbs) != 1 {
		t.Fatalf("expected 1 breadcrumb before capture, got %d", len(crumbs))
	}
	if crumbs[0].Message != "POST /api/ingredients" {
		t.Errorf("expected request breadcrumb, got %q", crumbs[0].Message)
	}
}

func TestInitWithoutDSN(t *testing.T) {
	if err := Init("", "test", "sous", "v0"); err != nil {
		t.Fatalf("expected no error without DSN, got %v", err)
	}
	// Without a client this must be a no-op.
	CaptureError(context.Background(), errors.New("model down"))
	CaptureError(context.Background(), nil)
}

func TestTagsFor(t *testing.T) {
	err := apperrors.NewModelUnavailableError("gemini model call failed (rate_limit)", "RATE_LIMIT", errors.New("429"))
	tags := tagsFor(fmt.Errorf("recipe stage: %w", err))

	if tags["error.type"] != "MODEL_UNAVAILABLE" {
		t.Errorf("expected MODEL_UNAVAILABLE, got %q", tags["error.type"])
	}
	if tags["error.code"] != "RATE_LIMIT" {
		t.Errorf("expected RATE_LIMIT, got %q", tags["error.code"])
	}
	if tags["error.operational"] != "true" {
		t.Errorf("expected operational tag, got %q", tags["error.operational"])
	}

	if got := tagsFor(errors.New("plain"))["error.type"]; got != "unclassified" {
		t.Errorf("expected unclassified, got %q", got)
	}
}

func TestDropValidation(t *testing.T) {
	event := sentry.NewEvent()

	validation := apperrors.NewValidationError("food is required", "FOOD_REQUIRED", "")
	if got := dropValidation(event, &sentry.EventHint{OriginalException: validation}); got != nil {
		t.Error("expected validation errors to be dropped")
	}

	internal := apperrors.NewInternalError("render failed", "TEMPLATE_RENDER_FAILED", errors.New("boom"))
	if got := dropValidation(event, &sentry.EventHint{OriginalException: internal}); got != event {
		t.Error("expected internal errors to be kept")
	}

	if got := dropValidation(event, nil); got != event {
		t.Error("expected events without a hint to be kept")
	}
}
