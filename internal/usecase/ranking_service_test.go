package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/team"
	"github.com/riskibarqy/arena-scrim/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/arena-scrim/internal/platform/cache"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
)

type countingListRepository struct {
	team.Repository
	lists int
}

func (r *countingListRepository) List(ctx context.Context, filter team.Filter) ([]team.Team, error) {
	r.lists++
	return r.Repository.List(ctx, filter)
}

func rankedTeam(id string, region team.Region, wins, losses int) team.Team {
	t := fixtureTeam(id, id+"-captain", "", region)
	t.WinCount = wins
	t.LossCount = losses
	return t
}

func TestRankingService_TeamRankingsAreCachedUntilInvalidated(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	teams := memory.NewTeamRepository(
		rankedTeam("alpha", seoulGangnam, 3, 1),
		rankedTeam("bravo", busanHaeundae, 5, 5),
		rankedTeam("charlie", seoulGangnam, 3, 0),
	)
	counting := &countingListRepository{Repository: teams}
	service := NewRankingService(counting, cache.NewStore(time.Minute), logging.NewNop())

	rankings, err := service.TeamRankings(ctx, team.Filter{})
	if err != nil {
		t.Fatalf("team rankings: %v", err)
	}
	order := []string{rankings[0].Team.ID, rankings[1].Team.ID, rankings[2].Team.ID}
	if order[0] != "bravo" || order[1] != "charlie" || order[2] != "alpha" {
		t.Fatalf("unexpected ranking order %v", order)
	}
	if rankings[1].WinRate != 100 || rankings[1].Rank != 2 {
		t.Fatalf("unexpected charlie ranking: %+v", rankings[1])
	}

	if _, err := service.TeamRankings(ctx, team.Filter{}); err != nil {
		t.Fatalf("team rankings again: %v", err)
	}
	if counting.lists != 1 {
		t.Fatalf("expected cached rankings, got %d list calls", counting.lists)
	}

	pos, err := service.TeamPosition(ctx, "alpha")
	if err != nil || pos != 3 {
		t.Fatalf("expected alpha at 3, got %d err=%v", pos, err)
	}

	service.Invalidate(ctx)
	if _, err := service.TeamRankings(ctx, team.Filter{}); err != nil {
		t.Fatalf("team rankings after invalidate: %v", err)
	}
	if counting.lists != 2 {
		t.Fatalf("expected reload after invalidate, got %d list calls", counting.lists)
	}
}

func TestRankingService_RegionFilterAndAreas(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	teams := memory.NewTeamRepository(
		rankedTeam("alpha", seoulGangnam, 3, 1),
		rankedTeam("bravo", busanHaeundae, 5, 5),
		rankedTeam("charlie", seoulGangnam, 3, 0),
	)
	service := NewRankingService(teams, cache.NewStore(time.Minute), logging.NewNop())

	seoul, err := service.TeamRankings(ctx, team.Filter{RegionDepth1: " 서울특별시 "})
	if err != nil {
		t.Fatalf("seoul rankings: %v", err)
	}
	if len(seoul) != 2 || seoul[0].Team.ID != "charlie" {
		t.Fatalf("unexpected seoul rankings: %+v", seoul)
	}

	areas, err := service.AreaRankings(ctx)
	if err != nil {
		t.Fatalf("area rankings: %v", err)
	}
	if len(areas) != 2 {
		t.Fatalf("expected two areas, got %d", len(areas))
	}
	if areas[0].RegionDepth1 != "서울특별시" || areas[0].TotalWins != 6 || areas[0].TeamCount != 2 {
		t.Fatalf("unexpected top area: %+v", areas[0])
	}
}

func TestRankingService_ReflectsCompletedMatch(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	f := newScrimFixture(t)
	rankings := NewRankingService(f.teams, cache.NewStore(time.Minute), logging.NewNop())
	matches := newTestMatchService(f, rankings)

	before, err := rankings.TeamRankings(ctx, team.Filter{})
	if err != nil {
		t.Fatalf("rankings before: %v", err)
	}
	if before[0].Team.WinCount != 0 {
		t.Fatalf("expected no wins before match")
	}

	created, err := matches.Create(ctx, CreateMatchInput{UserID: "alpha-u1", ScheduledAt: fixtureNow})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if _, err := matches.Accept(ctx, "bravo-u1", created.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := matches.ReportResult(ctx, "bravo-u1", created.ID, "win"); err != nil {
		t.Fatalf("report: %v", err)
	}
	if _, err := matches.Confirm(ctx, "alpha-u1", created.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	after, err := rankings.TeamRankings(ctx, team.Filter{})
	if err != nil {
		t.Fatalf("rankings after: %v", err)
	}
	if after[0].Team.ID != "bravo" || after[0].Team.WinCount != 1 {
		t.Fatalf("expected bravo on top after completed match, got %+v", after[0])
	}
}
