package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-hockey/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-hockey/internal/platform/logging"
	"github.com/riskibarqy/fantasy-hockey/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "fantasy-hockey"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	ID         string           `json:"id,omitempty"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalError = mappedError{
	HTTPStatus: http.StatusInternalServerError,
	Reason:     "internalError",
	Status:     "INTERNAL",
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		ID:         logging.RequestIDFromContext(ctx),
		Data:       data,
	})
}

const internalErrorMessage = "internal server error"

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	if mapped.HTTPStatus == http.StatusInternalServerError {
		logging.Default().ErrorContext(ctx, "unmapped error", "error", err)
		writeErrorEnvelope(ctx, w, mapped, internalErrorMessage, internalErrorMessage)
		return
	}
	writeErrorEnvelope(ctx, w, mapped, errorMessage(err), err.Error())
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeErrorEnvelope(ctx, w, internalError, internalErrorMessage, internalErrorMessage)
}

func writeErrorEnvelope(ctx context.Context, w http.ResponseWriter, mapped mappedError, message, detail string) {
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		ID:         logging.RequestIDFromContext(ctx),
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{{
				Domain:  errorDomain,
				Reason:  mapped.Reason,
				Message: detail,
			}},
		},
	})
}

// errorMessage returns the backend rejection detail verbatim for refused
// saves and the full error text otherwise.
func errorMessage(err error) string {
	text := err.Error()
	if !errors.Is(err, usecase.ErrSaveRejected) {
		return text
	}
	marker := usecase.ErrSaveRejected.Error() + ": "
	if idx := strings.LastIndex(text, marker); idx >= 0 {
		return text[idx+len(marker):]
	}
	return text
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, lineup.ErrUnknownSlot),
		errors.Is(err, lineup.ErrPositionMismatch):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, lineup.ErrAlreadySelected):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "alreadySelected",
			Status:     "ALREADY_EXISTS",
		}
	case errors.Is(err, lineup.ErrSlotLocked):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "slotLocked",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, usecase.ErrDayLoading):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "dayLoading",
			Status:     "ABORTED",
		}
	case errors.Is(err, usecase.ErrNoActiveDay):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "noActiveDay",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, lineup.ErrEmptyLineup),
		errors.Is(err, usecase.ErrSaveRejected):
		return mappedError{
			HTTPStatus: http.StatusUnprocessableEntity,
			Reason:     "saveRejected",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	default:
		return internalError
	}
}
