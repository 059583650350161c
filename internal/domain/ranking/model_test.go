package ranking

import (
	"testing"

	"github.com/riskibarqy/arena-scrim/internal/domain/team"
)

func mkTeam(id, d1, d2 string, wins, losses int) team.Team {
	return team.Team{ID: id, Region: team.Region{Depth1: d1, Depth2: d2}, WinCount: wins, LossCount: losses}
}

func TestRankTeams(t *testing.T) {
	t.Parallel()

	got := RankTeams([]team.Team{
		mkTeam("a", "서울", "강남구", 3, 3),
		mkTeam("b", "서울", "강남구", 5, 0),
		mkTeam("c", "부산", "해운대구", 3, 1),
		mkTeam("d", "부산", "해운대구", 0, 0),
	})

	wantOrder := []string{"b", "c", "a", "d"}
	for i, id := range wantOrder {
		if got[i].Team.ID != id {
			t.Fatalf("position %d: want %s got %s", i, id, got[i].Team.ID)
		}
		if got[i].Rank != i+1 {
			t.Fatalf("position %d: rank=%d", i, got[i].Rank)
		}
	}
	if got[1].WinRate != 75 {
		t.Fatalf("expected 75%% win rate, got %v", got[1].WinRate)
	}
	if PositionOf(got, "a") != 3 || PositionOf(got, "zzz") != 0 {
		t.Fatalf("unexpected PositionOf results")
	}
}

func TestRankAreas(t *testing.T) {
	t.Parallel()

	got := RankAreas([]team.Team{
		mkTeam("a", "서울", "강남구", 3, 3),
		mkTeam("b", "서울", "강남구", 5, 0),
		mkTeam("c", "부산", "해운대구", 3, 1),
		mkTeam("d", "서울", "마포구", 8, 8),
	})

	if len(got) != 3 {
		t.Fatalf("expected 3 areas, got %d", len(got))
	}
	first := got[0]
	if first.RegionDepth2 != "강남구" || first.TeamCount != 2 || first.TotalWins != 8 || first.TotalLosses != 3 {
		t.Fatalf("unexpected first area %+v", first)
	}
	// 마포구 ties 강남구 on wins and loses on win rate.
	if got[1].RegionDepth2 != "마포구" || got[1].Rank != 2 {
		t.Fatalf("expected 마포구 second, got %+v", got[1])
	}
	if got[2].RegionDepth2 != "해운대구" || got[2].Rank != 3 {
		t.Fatalf("expected 해운대구 third, got %+v", got[2])
	}
}
