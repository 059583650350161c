package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/arena-scrim/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "arena-scrim"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Details map[string]any    `json:"details,omitempty"`
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
		Data:       data,
	})
}

// writeError renders err with a Korean user-facing message. overrides replace
// the generic message for a sentinel in the context of one action.
func writeError(ctx context.Context, w http.ResponseWriter, err error, overrides ...errorMessages) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	if mapped.HTTPStatus == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: userMessage(err, overrides...),
			Status:  mapped.Status,
			Details: errorDetails(err),
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: messageInternal,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{HTTPStatus: http.StatusForbidden, Reason: "forbidden", Status: "PERMISSION_DENIED"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrInvalidState):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "invalidState", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "conflict", Status: "ALREADY_EXISTS"}
	case errors.Is(err, usecase.ErrEligibility):
		return mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "eligibilityNotMet", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrIconMismatch):
		return mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "iconMismatch", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrRateLimited):
		return mappedError{HTTPStatus: http.StatusTooManyRequests, Reason: "rateLimited", Status: "RESOURCE_EXHAUSTED"}
	case errors.Is(err, usecase.ErrProviderMisconfigured):
		return mappedError{HTTPStatus: http.StatusBadGateway, Reason: "providerMisconfigured", Status: "INTERNAL"}
	case errors.Is(err, usecase.ErrProviderFailure):
		return mappedError{HTTPStatus: http.StatusBadGateway, Reason: "providerFailure", Status: "UNAVAILABLE"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
	}
}

// errorDetails exposes the numeric payload of eligibility and icon failures.
func errorDetails(err error) map[string]any {
	var eligibility *usecase.EligibilityError
	if errors.As(err, &eligibility) {
		return map[string]any{
			"requirement": string(eligibility.Requirement),
			"observed":    eligibility.Observed,
			"required":    eligibility.Required,
		}
	}

	var mismatch *usecase.IconMismatchError
	if errors.As(err, &mismatch) {
		return map[string]any{
			"observed_icon_id": mismatch.Observed,
			"required_icon_id": mismatch.Required,
		}
	}
	return nil
}
