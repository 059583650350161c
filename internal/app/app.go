package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/arena-scrim/external/anubis"
	"github.com/riskibarqy/arena-scrim/external/riot"
	"github.com/riskibarqy/arena-scrim/internal/config"
	"github.com/riskibarqy/arena-scrim/internal/domain/match"
	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	"github.com/riskibarqy/arena-scrim/internal/domain/team"
	cacherepo "github.com/riskibarqy/arena-scrim/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/arena-scrim/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/arena-scrim/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/arena-scrim/internal/interfaces/httpapi"
	"github.com/riskibarqy/arena-scrim/internal/platform/cache"
	idgen "github.com/riskibarqy/arena-scrim/internal/platform/id"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
	"github.com/riskibarqy/arena-scrim/internal/usecase"
)

type repositories struct {
	teams    team.Repository
	profiles profile.Repository
	matches  match.Repository
	close    func() error
}

// NewHTTPServer wires storage, providers and services into the HTTP router.
// The returned cleanup releases the database pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	// Team reads and ranking read models share one store so a single
	// invalidation after a confirmed result drops both.
	var store *cache.Store
	teamRepo := repos.teams
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
		teamRepo = cacherepo.NewTeamRepository(repos.teams, store)
	}

	riotClient := riot.NewClient(riot.ClientConfig{
		RegionalBaseURL: cfg.RiotRegionalBaseURL,
		PlatformBaseURL: cfg.RiotPlatformBaseURL,
		APIKey:          cfg.RiotAPIKey,
		Timeout:         cfg.RiotTimeout,
		Logger:          logger.Named("riot"),
		CircuitBreaker:  cfg.RiotCircuit,
	})
	anubisClient := anubis.NewClient(anubis.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.AnubisTimeout},
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectPath,
		AdminKey:       cfg.AnubisAdminKey,
		CacheTTL:       cfg.AnubisCacheTTL,
		CircuitBreaker: cfg.AnubisCircuit,
		Logger:         logger.Named("anubis"),
	})

	ids := idgen.NewRandomGenerator()
	rankingSvc := usecase.NewRankingService(teamRepo, store, logger)
	verificationSvc := usecase.NewVerificationService(repos.profiles, riotClient, usecase.VerificationConfig{
		MinLevel: cfg.VerificationMinLevel,
		Icons:    cfg.VerificationIcons,
	}, logger)
	teamSvc := usecase.NewTeamService(teamRepo, repos.profiles, riotClient, ids, ids, cfg.RosterRefreshWorkers, logger)
	matchSvc := usecase.NewMatchService(repos.matches, teamRepo, repos.profiles, ids, rankingSvc, cfg.MinRosterSize, logger)
	dashboardSvc := usecase.NewDashboardService(repos.profiles, teamRepo, matchSvc, rankingSvc)

	handler := httpapi.NewHandler(verificationSvc, teamSvc, matchSvc, rankingSvc, dashboardSvc, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("application wired",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"min_roster_size", cfg.MinRosterSize,
	)
	return server, repos.close, nil
}

func newRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		teams := memory.NewTeamRepository()
		logger.Warn("using in-memory storage; data is lost on restart")
		return repositories{
			teams:    teams,
			profiles: memory.NewProfileRepository(),
			matches:  memory.NewMatchRepository(teams),
			close:    func() error { return nil },
		}, nil
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			teams:    postgres.NewTeamRepository(db),
			profiles: postgres.NewProfileRepository(db),
			matches:  postgres.NewMatchRepository(db),
			close:    db.Close,
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
