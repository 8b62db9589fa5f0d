package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/sentry"
)

// errorResponse is the JSON body of every API error.
type errorResponse struct {
	Error     string `json:"error"`
	Type      string `json:"type"`
	Code      string `json:"code"`
	Recovery  string `json:"recovery,omitempty"`
	Retryable bool   `json:"retryable"`
	RequestID string `json:"request_id,omitempty"`
}

// toAppError maps any error to an AppError. Unknown errors become INTERNAL_ERROR
// and their details stay in the logs.
func toAppError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	return apperrors.NewInternalError("internal error", "INTERNAL_ERROR", err)
}

func (s *Server) reportError(r *http.Request, appErr *apperrors.AppError) {
	if appErr.StatusCode >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed",
			"path", r.URL.Path,
			"type", appErr.Type,
			"code", appErr.ErrorCode,
			"error", appErr.Error())
		sentry.CaptureError(r.Context(), appErr)
		return
	}
	slog.WarnContext(r.Context(), "Request rejected",
		"path", r.URL.Path,
		"type", appErr.Type,
		"code", appErr.ErrorCode,
		"error", appErr.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := toAppError(err)
	s.reportError(r, appErr)

	message := appErr.Message
	if appErr.Type == apperrors.ErrorTypeInternal {
		message = "internal error"
	}
	requestID, _ := requestIDFrom(r)
	writeJSON(w, appErr.StatusCode, errorResponse{
		Error:     message,
		Type:      string(appErr.Type),
		Code:      appErr.ErrorCode,
		Recovery:  appErr.Recovery,
		Retryable: appErr.IsRetryable(),
		RequestID: requestID,
	})
}
