package anubis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/arena-scrim/internal/domain/user"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
	"github.com/riskibarqy/arena-scrim/internal/platform/resilience"
	"github.com/riskibarqy/arena-scrim/internal/usecase"
)

const (
	adminKeyHeader         = "x-admin-key"
	defaultCacheTTL        = 30 * time.Second
	defaultCacheMaxEntries = 10000
)

type ClientConfig struct {
	HTTPClient      *http.Client
	BaseURL         string
	IntrospectPath  string
	AdminKey        string
	CacheTTL        time.Duration
	CacheMaxEntries int
	CircuitBreaker  resilience.CircuitBreakerConfig
	Logger          *logging.Logger
}

// Client verifies bearer tokens against the Anubis introspection endpoint.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	cache         *principalCache
	guard         *resilience.Guard
	flight        resilience.SingleFlight[user.Principal]
	logger        *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	maxEntries := cfg.CacheMaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultCacheMaxEntries
	}

	client := &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		adminKey:      strings.TrimSpace(cfg.AdminKey),
		cache:         newPrincipalCache(ttl, maxEntries),
		guard:         resilience.NewGuard(cfg.CircuitBreaker, isCircuitFailure),
		logger:        logger,
	}
	client.guard.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("anubis circuit breaker state changed", "from", from, "to", to)
	})
	return client
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := hashToken(token)
	if principal, ok := c.cache.Get(key); ok {
		return principal, nil
	}

	if err := c.guard.Allow(); err != nil {
		c.logger.WarnContext(ctx, "anubis circuit breaker rejected request", "state", c.guard.State())
		return user.Principal{}, fmt.Errorf("%w: identity provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	principal, err, _ := c.flight.Do(key, func() (user.Principal, error) {
		principal, err := c.introspect(ctx, token)
		c.guard.Record(err)
		return principal, err
	})
	if err != nil {
		return user.Principal{}, err
	}

	c.cache.Set(key, principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set(adminKeyHeader, c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return user.Principal{}, ctxErr
		}
		return user.Principal{}, crerr.Mark(fmt.Errorf("%w: request introspection to anubis: %v", usecase.ErrDependencyUnavailable, err), errAnubisTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, crerr.Mark(fmt.Errorf("read introspect response: %w", err), errAnubisTransient)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "anubis introspection non-200", "status_code", resp.StatusCode)
		statusErr := fmt.Errorf("%w: anubis introspection failed with status %d", usecase.ErrDependencyUnavailable, resp.StatusCode)
		if resp.StatusCode >= http.StatusInternalServerError {
			return user.Principal{}, crerr.Mark(statusErr, errAnubisTransient)
		}
		return user.Principal{}, statusErr
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}
	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	return user.Principal{UserID: decoded.UserID, Email: decoded.Email}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
