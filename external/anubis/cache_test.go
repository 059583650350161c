package anubis

import (
	"testing"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/user"
)

func TestPrincipalCache_SetGet(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(time.Minute, 10)
	cache.Set("k1", user.Principal{UserID: "u-1"})

	principal, ok := cache.Get("k1")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if principal.UserID != "u-1" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
}

func TestPrincipalCache_Expired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cache := newPrincipalCache(time.Minute, 10)
	cache.now = func() time.Time { return now }
	cache.Set("k1", user.Principal{UserID: "u-1"})

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get("k1"); ok {
		t.Fatalf("expected cache miss after expiry")
	}
	if cache.Len() != 0 {
		t.Fatalf("expired entry should be dropped on read")
	}
}

func TestPrincipalCache_EvictsSoonestExpiringWhenFull(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cache := newPrincipalCache(time.Minute, 2)
	cache.now = func() time.Time { return now }

	cache.Set("first", user.Principal{UserID: "u-1"})
	now = now.Add(time.Second)
	cache.Set("second", user.Principal{UserID: "u-2"})
	now = now.Add(time.Second)
	cache.Set("third", user.Principal{UserID: "u-3"})

	if _, ok := cache.Get("first"); ok {
		t.Fatalf("oldest entry should have been evicted")
	}
	if _, ok := cache.Get("third"); !ok {
		t.Fatalf("newest entry should be cached")
	}
	if cache.Len() != 2 {
		t.Fatalf("expected cache bounded at 2, got %d", cache.Len())
	}
}

func TestPrincipalCache_DisabledWithoutTTL(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(0, 10)
	cache.Set("k1", user.Principal{UserID: "u-1"})
	if _, ok := cache.Get("k1"); ok {
		t.Fatalf("zero ttl should disable caching")
	}
}
