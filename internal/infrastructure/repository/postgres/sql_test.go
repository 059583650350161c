package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches any unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "uq_teams_invite_code"})
		if !isUniqueViolation(err, "") {
			t.Fatalf("expected unique violation")
		}
	})

	t.Run("matches named constraint only", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Constraint: "uq_profiles_verified_puuid"}
		if !isUniqueViolation(err, profileVerifiedPUUIDConstraint) {
			t.Fatalf("expected puuid constraint match")
		}
		if isUniqueViolation(err, "uq_teams_invite_code") {
			t.Fatalf("expected other constraint to be ignored")
		}
	})

	t.Run("ignores other errors", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}, "") {
			t.Fatalf("foreign key violation is not a unique violation")
		}
		if isUniqueViolation(fmt.Errorf("boom"), "") {
			t.Fatalf("plain error is not a unique violation")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("other")) {
		t.Fatalf("unexpected not found")
	}
}

func TestNullHelpers(t *testing.T) {
	if got := nullStringValue(sql.NullString{}); got != "" {
		t.Fatalf("expected empty string for null, got %q", got)
	}
	if got := nullFloatPointer(sql.NullFloat64{Float64: 8.5, Valid: true}); got == nil || *got != 8.5 {
		t.Fatalf("expected 8.5, got %v", got)
	}
	if optionalString("") != nil {
		t.Fatalf("empty string should be stored as null")
	}
	if optionalInt(3, false) != nil {
		t.Fatalf("invalid int should be stored as null")
	}
}
