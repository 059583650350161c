package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/arena-scrim/internal/domain/match"
	"github.com/riskibarqy/arena-scrim/internal/usecase"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	return errorObj
}

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	errorObj := decodeErrorBody(t, rec)
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
	if got, _ := errorObj["message"].(string); got != messageInvalidInput {
		t.Fatalf("expected localized message, got %q", got)
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unauthorized", err: usecase.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "forbidden", err: usecase.ErrForbidden, want: http.StatusForbidden},
		{name: "not found", err: usecase.ErrNotFound, want: http.StatusNotFound},
		{name: "invalid state", err: fmt.Errorf("%w: %w", usecase.ErrInvalidState, match.ErrStale), want: http.StatusConflict},
		{name: "conflict", err: usecase.ErrConflict, want: http.StatusConflict},
		{name: "rate limited", err: usecase.ErrRateLimited, want: http.StatusTooManyRequests},
		{name: "provider key", err: usecase.ErrProviderMisconfigured, want: http.StatusBadGateway},
		{name: "provider failure", err: usecase.ErrProviderFailure, want: http.StatusBadGateway},
		{name: "dependency down", err: usecase.ErrDependencyUnavailable, want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tt.err)
			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: connection refused to 10.0.0.3"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if got := rec.Body.String(); strings.Contains(got, "pq:") || strings.Contains(got, "10.0.0.3") {
		t.Fatalf("internal detail leaked: %s", got)
	}
	errorObj := decodeErrorBody(t, rec)
	if got, _ := errorObj["message"].(string); got != messageInternal {
		t.Fatalf("expected generic message, got %q", got)
	}
}

func TestWriteError_EligibilityDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := fmt.Errorf("create match: %w", &usecase.EligibilityError{
		Requirement: usecase.RequirementRosterSize,
		Observed:    3,
		Required:    5,
	})
	writeError(context.Background(), rec, err)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	errorObj := decodeErrorBody(t, rec)
	details, ok := errorObj["details"].(map[string]any)
	if !ok {
		t.Fatalf("expected details object, got %v", errorObj)
	}
	if details["requirement"] != "roster_size" || details["observed"] != float64(3) || details["required"] != float64(5) {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestWriteError_IconMismatchDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, &usecase.IconMismatchError{Observed: 4, Required: 23})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	errorObj := decodeErrorBody(t, rec)
	details, _ := errorObj["details"].(map[string]any)
	if details["observed_icon_id"] != float64(4) || details["required_icon_id"] != float64(23) {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestUserMessage_Precedence(t *testing.T) {
	t.Parallel()

	overrides := errorMessages{usecase.ErrForbidden: messageCaptainOnlyMatch}

	// Domain sentinels win over per-action overrides.
	notHost := fmt.Errorf("%w: %w", usecase.ErrForbidden, match.ErrNotHost)
	if got := userMessage(notHost, overrides); got != messageHostOnly {
		t.Fatalf("expected host-only message, got %q", got)
	}
	if got := userMessage(fmt.Errorf("%w: user has no team", usecase.ErrForbidden), overrides); got != messageCaptainOnlyMatch {
		t.Fatalf("expected override message, got %q", got)
	}
	if got := userMessage(usecase.ErrForbidden); got != messageForbidden {
		t.Fatalf("expected generic message, got %q", got)
	}
	level := &usecase.EligibilityError{Requirement: usecase.RequirementSummonerLevel, Observed: 12, Required: 30}
	if got := userMessage(level); got != "소환사 레벨이 30 이상이어야 합니다. (현재: 12)" {
		t.Fatalf("unexpected level message %q", got)
	}
}
