package riot

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
	"github.com/riskibarqy/arena-scrim/internal/platform/resilience"
	"github.com/riskibarqy/arena-scrim/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		RegionalBaseURL: server.URL,
		PlatformBaseURL: server.URL + "/",
		APIKey:          "RGAPI-test",
		Timeout:         2 * time.Second,
		Logger:          logging.NewNop(),
		CircuitBreaker:  breaker,
	})
}

func TestClient_ResolveAccount(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/riot/account/v1/accounts/by-riot-id/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(tokenHeader); got != "RGAPI-test" {
			t.Errorf("unexpected token header %q", got)
		}
		if r.URL.Path != "/riot/account/v1/accounts/by-riot-id/Hide on bush/KR1" {
			t.Errorf("unexpected account path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"puuid":"puuid-faker","gameName":"Hide on bush","tagLine":"KR1"}`))
	})
	mux.HandleFunc("/lol/summoner/v4/summoners/by-puuid/puuid-faker", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"puuid":"puuid-faker","profileIconId":23,"summonerLevel":812}`))
	})
	client := newTestClient(t, mux, resilience.CircuitBreakerConfig{Enabled: false})

	got, err := client.ResolveAccount(t.Context(), profile.RiotID{GameName: "Hide on bush", TagLine: "KR1"})
	if err != nil {
		t.Fatalf("resolve account: %v", err)
	}
	want := usecase.ExternalAccount{PUUID: "puuid-faker", GameName: "Hide on bush", TagLine: "KR1", Level: 812, ProfileIconID: 23}
	if got != want {
		t.Fatalf("unexpected account: got=%+v want=%+v", got, want)
	}
}

func TestClient_MapsStatusCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		want   error
	}{
		{name: "not found", status: http.StatusNotFound, want: usecase.ErrNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, want: usecase.ErrRateLimited},
		{name: "unauthorized", status: http.StatusUnauthorized, want: usecase.ErrProviderMisconfigured},
		{name: "forbidden", status: http.StatusForbidden, want: usecase.ErrProviderMisconfigured},
		{name: "server error", status: http.StatusBadGateway, want: usecase.ErrProviderFailure},
		{name: "bad request", status: http.StatusBadRequest, want: usecase.ErrProviderFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"status":{"message":"nope"}}`))
			}), resilience.CircuitBreakerConfig{Enabled: false})

			_, err := client.ResolveAccount(t.Context(), profile.RiotID{GameName: "x", TagLine: "KR1"})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestClient_MissingKeyIsMisconfigured(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { calls.Add(1) }))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{RegionalBaseURL: server.URL, PlatformBaseURL: server.URL, Logger: logging.NewNop()})
	_, err := client.ResolveAccount(t.Context(), profile.RiotID{GameName: "x", TagLine: "KR1"})
	if !errors.Is(err, usecase.ErrProviderMisconfigured) {
		t.Fatalf("expected misconfigured, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("no request should be sent without a key")
	}
}

func TestClient_CircuitOpensOnServerErrorsOnly(t *testing.T) {
	t.Parallel()

	var status atomic.Int32
	status.Store(http.StatusTooManyRequests)
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(int(status.Load()))
	}), resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})

	ctx := t.Context()
	for i := 0; i < 3; i++ {
		if _, err := client.GetRankedStanding(ctx, "puuid-1"); !errors.Is(err, usecase.ErrRateLimited) {
			t.Fatalf("expected rate limited, got %v", err)
		}
	}
	if client.guard.State() != resilience.CircuitStateClosed {
		t.Fatalf("rate limits must not open the circuit")
	}

	status.Store(http.StatusInternalServerError)
	for i := 0; i < 2; i++ {
		if _, err := client.GetRankedStanding(ctx, "puuid-1"); !errors.Is(err, usecase.ErrProviderFailure) {
			t.Fatalf("expected provider failure, got %v", err)
		}
	}

	before := calls.Load()
	if _, err := client.GetRankedStanding(ctx, "puuid-1"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if calls.Load() != before {
		t.Fatalf("open circuit must short-circuit requests")
	}
}

func TestClient_GetRankedStanding(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/lol/league/v4/entries/by-puuid/solo", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"queueType":"RANKED_FLEX_SR","tier":"DIAMOND","rank":"I","leaguePoints":10},
			{"queueType":"RANKED_SOLO_5x5","tier":"GOLD","rank":"II","leaguePoints":57}
		]`))
	})
	mux.HandleFunc("/lol/league/v4/entries/by-puuid/apex", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"queueType":"RANKED_SOLO_5x5","tier":"CHALLENGER","rank":"","leaguePoints":1502}]`))
	})
	mux.HandleFunc("/lol/league/v4/entries/by-puuid/flex-only", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"queueType":"RANKED_FLEX_SR","tier":"SILVER","rank":"IV","leaguePoints":0}]`))
	})
	mux.HandleFunc("/lol/league/v4/entries/by-puuid/weird", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"queueType":"RANKED_SOLO_5x5","tier":"WOOD","rank":"V","leaguePoints":0}]`))
	})
	client := newTestClient(t, mux, resilience.CircuitBreakerConfig{Enabled: false})
	ctx := t.Context()

	solo, err := client.GetRankedStanding(ctx, "solo")
	if err != nil {
		t.Fatalf("solo standing: %v", err)
	}
	if solo == nil || solo.Tier != profile.TierGold || solo.Division != profile.DivisionII || solo.LeaguePoints != 57 {
		t.Fatalf("unexpected solo standing: %+v", solo)
	}

	apex, err := client.GetRankedStanding(ctx, "apex")
	if err != nil {
		t.Fatalf("apex standing: %v", err)
	}
	if apex == nil || apex.Division != profile.DivisionI || apex.Score() != 40 {
		t.Fatalf("unexpected apex standing: %+v", apex)
	}

	unranked, err := client.GetRankedStanding(ctx, "flex-only")
	if err != nil {
		t.Fatalf("flex-only standing: %v", err)
	}
	if unranked != nil {
		t.Fatalf("expected nil standing without solo queue entry, got %+v", unranked)
	}

	if _, err := client.GetRankedStanding(ctx, "weird"); !errors.Is(err, usecase.ErrProviderFailure) {
		t.Fatalf("unknown tier should be provider failure, got %v", err)
	}
}
