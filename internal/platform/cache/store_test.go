package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(t.Context(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(t.Context(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(t.Context(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_InvalidateDropsOnlyKeyspace(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := t.Context()
	store.Set(ctx, KeyspaceRanking.Key("teams", "seoul", "gangnam"), 1)
	store.Set(ctx, KeyspaceRanking.Key("areas"), 2)
	store.Set(ctx, KeyspaceTeam.Key("t1"), 3)
	store.Set(ctx, "rankingish", 4)

	if removed := store.Invalidate(ctx, KeyspaceRanking); removed != 2 {
		t.Fatalf("expected 2 ranking keys removed, got %d", removed)
	}
	if _, ok := store.Get(ctx, KeyspaceTeam.Key("t1")); !ok {
		t.Fatalf("team key should survive ranking invalidation")
	}
	if _, ok := store.Get(ctx, "rankingish"); !ok {
		t.Fatalf("key sharing only a bare prefix should survive")
	}
}

func TestStore_GetExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Second)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(t.Context(), "k", "v")
	if _, ok := store.Get(t.Context(), "k"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Second)
	if _, ok := store.Get(t.Context(), "k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted")
	}
}

func TestLoad_Typed(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	store.Set(t.Context(), "k", "wrong type")

	got, err := Load(t.Context(), store, "k", func(context.Context) ([]int, error) {
		return []int{1, 2}, nil
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected value %v", got)
	}
	if _, ok := store.Get(t.Context(), "k"); !ok {
		t.Fatalf("expected typed value to be cached")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
