package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/arena-scrim/internal/domain/ranking"
	"github.com/riskibarqy/arena-scrim/internal/domain/team"
	"github.com/riskibarqy/arena-scrim/internal/platform/cache"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
)

// RankingService serves team and area leaderboards from a TTL cache.
type RankingService struct {
	teamRepo team.Repository
	cache    *cache.Store
	logger   *logging.Logger
}

func NewRankingService(teamRepo team.Repository, store *cache.Store, logger *logging.Logger) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RankingService{teamRepo: teamRepo, cache: store, logger: logger}
}

func (s *RankingService) TeamRankings(ctx context.Context, filter team.Filter) ([]ranking.TeamRanking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.TeamRankings")
	defer span.End()

	filter.RegionDepth1 = strings.TrimSpace(filter.RegionDepth1)
	filter.RegionDepth2 = strings.TrimSpace(filter.RegionDepth2)
	key := cache.KeyspaceRanking.Key("teams", filter.RegionDepth1, filter.RegionDepth2)

	return cache.Load(ctx, s.cache, key, func(ctx context.Context) ([]ranking.TeamRanking, error) {
		teams, err := s.teamRepo.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list teams for ranking: %w", err)
		}
		return ranking.RankTeams(teams), nil
	})
}

func (s *RankingService) AreaRankings(ctx context.Context) ([]ranking.AreaRanking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.AreaRankings")
	defer span.End()

	return cache.Load(ctx, s.cache, cache.KeyspaceRanking.Key("areas"), func(ctx context.Context) ([]ranking.AreaRanking, error) {
		teams, err := s.teamRepo.List(ctx, team.Filter{})
		if err != nil {
			return nil, fmt.Errorf("list teams for area ranking: %w", err)
		}
		return ranking.RankAreas(teams), nil
	})
}

// TeamPosition returns the team's overall rank, or 0 when it is unknown.
func (s *RankingService) TeamPosition(ctx context.Context, teamID string) (int, error) {
	rankings, err := s.TeamRankings(ctx, team.Filter{})
	if err != nil {
		return 0, err
	}
	return ranking.PositionOf(rankings, teamID), nil
}

// Invalidate drops cached leaderboards and cached team rows, whose counters
// change when a match completes.
func (s *RankingService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	removed := s.cache.Invalidate(ctx, cache.KeyspaceRanking, cache.KeyspaceTeam)
	s.logger.DebugContext(ctx, "read models invalidated", "removed", removed)
}
