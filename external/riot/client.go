package riot

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
	"github.com/riskibarqy/arena-scrim/internal/platform/resilience"
	"github.com/riskibarqy/arena-scrim/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	defaultRegionalBaseURL = "https://asia.api.riotgames.com"
	defaultPlatformBaseURL = "https://kr.api.riotgames.com"
	defaultTimeout         = 10 * time.Second
	maxResponseBodySize    = 1 << 20

	rankedSoloQueue = "RANKED_SOLO_5x5"
	tokenHeader     = "X-Riot-Token"
)

var errRiotTransient = crerr.New("riot transient failure")

type ClientConfig struct {
	HTTPClient      *fasthttp.Client
	RegionalBaseURL string
	PlatformBaseURL string
	APIKey          string
	Timeout         time.Duration
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
}

// Client talks to the account-v1, summoner-v4 and league-v4 Riot APIs.
type Client struct {
	httpClient      *fasthttp.Client
	regionalBaseURL string
	platformBaseURL string
	apiKey          string
	timeout         time.Duration
	logger          *logging.Logger
	guard           *resilience.Guard
	flight          resilience.SingleFlight[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "arena-scrim",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBodySize,
		}
	}

	client := &Client{
		httpClient:      httpClient,
		regionalBaseURL: normalizeBaseURL(cfg.RegionalBaseURL, defaultRegionalBaseURL),
		platformBaseURL: normalizeBaseURL(cfg.PlatformBaseURL, defaultPlatformBaseURL),
		apiKey:          strings.TrimSpace(cfg.APIKey),
		timeout:         timeout,
		logger:          logger,
		guard:           resilience.NewGuard(cfg.CircuitBreaker, isRiotCircuitFailure),
	}
	client.guard.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("riot circuit breaker state changed", "from", from, "to", to)
	})
	return client
}

type accountDTO struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type summonerDTO struct {
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int    `json:"summonerLevel"`
}

type leagueEntryDTO struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
}

// ResolveAccount looks up the account by Riot ID and reads its current
// summoner level and profile icon.
func (c *Client) ResolveAccount(ctx context.Context, id profile.RiotID) (usecase.ExternalAccount, error) {
	var account accountDTO
	path := "/riot/account/v1/accounts/by-riot-id/" + url.PathEscape(id.GameName) + "/" + url.PathEscape(id.TagLine)
	if err := c.getJSON(ctx, c.regionalBaseURL, path, &account); err != nil {
		return usecase.ExternalAccount{}, fmt.Errorf("fetch account riot_id=%s: %w", id, err)
	}
	if account.PUUID == "" {
		return usecase.ExternalAccount{}, fmt.Errorf("%w: account response without puuid", usecase.ErrProviderFailure)
	}

	var summoner summonerDTO
	if err := c.getJSON(ctx, c.platformBaseURL, "/lol/summoner/v4/summoners/by-puuid/"+url.PathEscape(account.PUUID), &summoner); err != nil {
		return usecase.ExternalAccount{}, fmt.Errorf("fetch summoner puuid=%s: %w", account.PUUID, err)
	}

	return usecase.ExternalAccount{
		PUUID:         account.PUUID,
		GameName:      firstNonEmpty(account.GameName, id.GameName),
		TagLine:       firstNonEmpty(account.TagLine, id.TagLine),
		Level:         summoner.SummonerLevel,
		ProfileIconID: summoner.ProfileIconID,
	}, nil
}

// GetRankedStanding returns the solo-queue entry, or nil when the account is
// unranked there.
func (c *Client) GetRankedStanding(ctx context.Context, puuid string) (*profile.RankedStanding, error) {
	puuid = strings.TrimSpace(puuid)
	if puuid == "" {
		return nil, fmt.Errorf("%w: puuid is required", usecase.ErrInvalidInput)
	}

	var entries []leagueEntryDTO
	if err := c.getJSON(ctx, c.platformBaseURL, "/lol/league/v4/entries/by-puuid/"+url.PathEscape(puuid), &entries); err != nil {
		return nil, fmt.Errorf("fetch league entries puuid=%s: %w", puuid, err)
	}

	for _, entry := range entries {
		if entry.QueueType != rankedSoloQueue {
			continue
		}
		return mapLeagueEntry(entry)
	}
	return nil, nil
}

func mapLeagueEntry(entry leagueEntryDTO) (*profile.RankedStanding, error) {
	tier, ok := profile.ParseTier(entry.Tier)
	if !ok {
		return nil, fmt.Errorf("%w: unknown tier %q", usecase.ErrProviderFailure, entry.Tier)
	}
	division := profile.Division(strings.ToUpper(strings.TrimSpace(entry.Rank)))
	if !tier.HasDivisions() {
		division = profile.DivisionI
	}
	if !division.Valid() {
		return nil, fmt.Errorf("%w: unknown division %q", usecase.ErrProviderFailure, entry.Rank)
	}
	return &profile.RankedStanding{Tier: tier, Division: division, LeaguePoints: entry.LeaguePoints}, nil
}

func (c *Client) getJSON(ctx context.Context, baseURL, path string, target any) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: riot api key is not configured", usecase.ErrProviderMisconfigured)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.guard.Allow(); err != nil {
		c.logger.WarnContext(ctx, "riot circuit breaker rejected request", "state", c.guard.State(), "path", path)
		return fmt.Errorf("%w: riot api is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	fullURL := buildURL(baseURL, path)
	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		raw, reqErr := c.execute(ctx, fullURL)
		c.guard.Record(reqErr)
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode riot payload: %v", usecase.ErrProviderFailure, err)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, fullURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(tokenHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	start := time.Now()
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, crerr.Mark(fmt.Errorf("%w: send request: %v", usecase.ErrProviderFailure, err), errRiotTransient)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	if status >= 200 && status < 300 {
		return body, nil
	}

	c.logger.WarnContext(ctx, "riot api returned non-success status",
		"status", status,
		"path", string(req.URI().Path()),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil, mapStatus(status, body)
}

func mapStatus(status int, body []byte) error {
	switch {
	case status == fasthttp.StatusNotFound:
		return fmt.Errorf("%w: riot account not found", usecase.ErrNotFound)
	case status == fasthttp.StatusTooManyRequests:
		return fmt.Errorf("%w: riot api rate limit exceeded", usecase.ErrRateLimited)
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		return fmt.Errorf("%w: riot api rejected key status=%d", usecase.ErrProviderMisconfigured, status)
	case status >= 500:
		return crerr.Mark(fmt.Errorf("%w: riot status=%d body=%s", usecase.ErrProviderFailure, status, abbreviateBody(body)), errRiotTransient)
	default:
		return fmt.Errorf("%w: riot status=%d body=%s", usecase.ErrProviderFailure, status, abbreviateBody(body))
	}
}

// Only transport failures and 5xx count against the breaker. Quota and key
// problems are not outages.
func isRiotCircuitFailure(err error) bool {
	return crerr.Is(err, errRiotTransient)
}

func buildURL(baseURL, path string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(baseURL)
	_, _ = buf.WriteString(path)
	return buf.String()
}

func normalizeBaseURL(raw, fallback string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return fallback
	}
	return raw
}

func abbreviateBody(body []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
