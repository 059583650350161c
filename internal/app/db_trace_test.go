package app

import (
	"strings"
	"testing"
)

func TestFormatDBQueryForTrace(t *testing.T) {
	t.Parallel()

	got := formatDBQueryForTrace(" UPDATE matches\n   SET status = $1 \t WHERE public_id = $2 AND version = $3 ")
	want := "UPDATE matches SET status = $1 WHERE public_id = $2 AND version = $3"
	if got != want {
		t.Fatalf("unexpected formatted query: %q", got)
	}
}

func TestFormatDBQueryForTrace_Truncates(t *testing.T) {
	t.Parallel()

	got := formatDBQueryForTrace("SELECT " + strings.Repeat("col, ", 200) + "id FROM teams")
	if len(got) != maxTracedQueryLength+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated query, got length %d", len(got))
	}
}
