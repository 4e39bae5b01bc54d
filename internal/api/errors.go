package api

import (
	"log/slog"
	"net/http"
	"time"

	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
	"github.com/hubertmaka/culinary-agent/internal/logger"
	"github.com/hubertmaka/culinary-agent/internal/sentry"
)

const timestampLayout = "2006-01-02:15:04:05"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

func newErrorResponse(r *http.Request, appErr *apperrors.AppError) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().Format(timestampLayout),
		Status:    appErr.StatusCode,
		Error:     http.StatusText(appErr.StatusCode),
		Message:   appErr.PublicMessage(),
		Path:      r.URL.Path,
	}
}

// reportError logs err at the level its kind calls for and returns the
// classified error. Unclassified errors also go to Sentry.
func reportError(r *http.Request, err error) *apperrors.AppError {
	appErr := apperrors.Classify(err)
	log := logger.FromContext(r.Context())

	level := slog.LevelWarn
	if appErr.StatusCode == http.StatusUnprocessableEntity || appErr.StatusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.Log(r.Context(), level, "Request failed",
		"type", appErr.Type,
		"code", appErr.Code(),
		"status", appErr.StatusCode,
		"error", err,
	)

	if appErr.Type == apperrors.ErrorTypeInternal {
		sentry.CaptureError(r.Context(), err)
	}
	return appErr
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := reportError(r, err)
	writeJSON(w, appErr.StatusCode, newErrorResponse(r, appErr))
}

// WriteTooManyRequests is the rate limiter's reject handler.
func WriteTooManyRequests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
		Timestamp: time.Now().Format(timestampLayout),
		Status:    http.StatusTooManyRequests,
		Error:     http.StatusText(http.StatusTooManyRequests),
		Message:   "Too many requests. Please slow down.",
		Path:      r.URL.Path,
	})
}

// WritePanic answers a request whose handler panicked.
func WritePanic(w http.ResponseWriter, r *http.Request, recovered any) {
	logger.FromContext(r.Context()).Error("Handler panicked", "panic", recovered)
	writeJSON(w, http.StatusInternalServerError, newErrorResponse(r, apperrors.NewInternalError(nil)))
}
