package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/match"
	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	"github.com/riskibarqy/arena-scrim/internal/domain/team"
	"github.com/sourcegraph/conc/pool"
)

const dashboardRecentMatches = 5

type Dashboard struct {
	Profile       profile.Profile
	Team          *team.Team
	MemberCount   int
	TeamRank      int
	RecentMatches []MatchView
	// AwaitingResponse counts claims the caller's team must confirm or dispute.
	AwaitingResponse int
}

type DashboardService struct {
	profileRepo profile.Repository
	teamRepo    team.Repository
	matches     dashboardMatchLister
	rankings    dashboardRankingProvider
	now         func() time.Time
}

type dashboardMatchLister interface {
	ListMine(ctx context.Context, userID string) ([]MatchView, error)
}

type dashboardRankingProvider interface {
	TeamPosition(ctx context.Context, teamID string) (int, error)
}

func NewDashboardService(
	profileRepo profile.Repository,
	teamRepo team.Repository,
	matches dashboardMatchLister,
	rankings dashboardRankingProvider,
) *DashboardService {
	return &DashboardService{
		profileRepo: profileRepo,
		teamRepo:    teamRepo,
		matches:     matches,
		rankings:    rankings,
		now:         time.Now,
	}
}

func (s *DashboardService) Get(ctx context.Context, userID string) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return Dashboard{}, err
	}
	me, err := ensureProfile(ctx, s.profileRepo, userID, s.now().UTC())
	if err != nil {
		return Dashboard{}, err
	}

	out := Dashboard{Profile: me}
	if !me.HasTeam() {
		out.RecentMatches = []MatchView{}
		return out, nil
	}

	var (
		myTeam  team.Team
		found   bool
		members []profile.Profile
		mine    []MatchView
		rank    int
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		t, exists, err := s.teamRepo.GetByID(ctx, me.TeamID)
		if err != nil {
			return fmt.Errorf("get team for dashboard: %w", err)
		}
		myTeam, found = t, exists
		return nil
	})
	p.Go(func(ctx context.Context) error {
		list, err := s.profileRepo.ListByTeam(ctx, me.TeamID)
		if err != nil {
			return fmt.Errorf("list members for dashboard: %w", err)
		}
		members = list
		return nil
	})
	p.Go(func(ctx context.Context) error {
		list, err := s.matches.ListMine(ctx, userID)
		if err != nil {
			return fmt.Errorf("list matches for dashboard: %w", err)
		}
		mine = list
		return nil
	})
	p.Go(func(ctx context.Context) error {
		pos, err := s.rankings.TeamPosition(ctx, me.TeamID)
		if err != nil {
			return fmt.Errorf("get team rank for dashboard: %w", err)
		}
		rank = pos
		return nil
	})
	if err := p.Wait(); err != nil {
		return Dashboard{}, err
	}

	if found {
		out.Team = &myTeam
	}
	out.MemberCount = len(members)
	out.TeamRank = rank
	for _, view := range mine {
		if view.Match.Status == match.StatusPendingResult && view.Match.WinnerTeamID != me.TeamID {
			out.AwaitingResponse++
		}
	}
	if len(mine) > dashboardRecentMatches {
		mine = mine[:dashboardRecentMatches]
	}
	out.RecentMatches = mine
	return out, nil
}
