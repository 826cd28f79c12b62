package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"office-asset-web/internal/logging"
	apperrors "office-asset-web/pkg/errors"
)

const (
	msgConflict    = "This record has been changed by someone else. Please reload the page and try again."
	msgTimeout     = "The request took too long. Please try again."
	msgUnavailable = "The asset management service is unavailable. Please try again later."
	msgNotFound    = "The record no longer exists."
	msgForbidden   = "You do not have permission to do this."
	msgUnexpected  = "Something went wrong. Please try again."
)

// ErrorHandler turns API and console errors into what the user sees.
// Nothing is fatal: every outcome leaves the page usable.
type ErrorHandler struct {
	Logger *logrus.Logger
}

func NewErrorHandler(logger *logrus.Logger) *ErrorHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ErrorHandler{Logger: logger}
}

// Message is the banner text for err.
func (e *ErrorHandler) Message(err error) string {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		if errors.Is(err, context.DeadlineExceeded) {
			return msgTimeout
		}
		return msgUnexpected
	}
	switch appErr.Code {
	case apperrors.ErrorCodeConflict:
		return msgConflict
	case apperrors.ErrorCodeTimeout:
		return msgTimeout
	case apperrors.ErrorCodeExternalService, apperrors.ErrorCodeRateLimit:
		return msgUnavailable
	case apperrors.ErrorCodeNotFound:
		return msgNotFound
	case apperrors.ErrorCodeForbidden:
		return msgForbidden
	case apperrors.ErrorCodeValidation, apperrors.ErrorCodeBadRequest,
		apperrors.ErrorCodeInvalidParameter, apperrors.ErrorCodeStateForbids:
		return appErr.Summary()
	}
	return msgUnexpected
}

// Status is the HTTP status a full page answers with for err.
func (e *ErrorHandler) Status(err error) int {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.GetHTTPStatus()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// FormOutcome splits a rejected submission into inline field messages and
// a form-level message. The API reports field problems as free text, which
// is shown above the form.
func (e *ErrorHandler) FormOutcome(err error) (map[string]string, string) {
	fields := map[string]string{}
	appErr, ok := apperrors.AsAppError(err)
	if ok && appErr.Code == apperrors.ErrorCodeValidation {
		if appErr.Message == "" {
			return fields, appErr.Summary()
		}
		return fields, appErr.Message
	}
	return fields, e.Message(err)
}

// Unauthorized reports whether the session's token was rejected.
func (e *ErrorHandler) Unauthorized(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrorCodeUnauthorized)
}

// Log records err against the request. Client-side failures are logged at
// warn, everything else at error.
func (e *ErrorHandler) Log(r *http.Request, err error, operation string) {
	entry := logging.FromContext(r.Context()).WithField("operation", operation).WithError(err)
	switch apperrors.CodeOf(err) {
	case apperrors.ErrorCodeValidation, apperrors.ErrorCodeConflict, apperrors.ErrorCodeNotFound,
		apperrors.ErrorCodeStateForbids, apperrors.ErrorCodeUnauthorized, apperrors.ErrorCodeForbidden:
		entry.Warn("request rejected")
	default:
		entry.Error("request failed")
	}
}
