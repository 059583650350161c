package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDocsRoutes(t *testing.T) {
	t.Parallel()

	h := &Handler{}

	rec := httptest.NewRecorder()
	h.OpenAPI(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "openapi: 3") {
		t.Fatalf("unexpected openapi response %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/v1/matches/{matchID}/confirm") {
		t.Fatalf("expected match confirm route in openapi document")
	}

	rec = httptest.NewRecorder()
	h.SwaggerUI(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "url: '/openapi.yaml'") {
		t.Fatalf("swagger page should load the embedded document")
	}
}
