package ranking

import (
	"sort"

	"github.com/riskibarqy/arena-scrim/internal/domain/team"
)

// TeamRanking is one row of the team leaderboard. WinRate is a percentage.
type TeamRanking struct {
	Team    team.Team
	WinRate float64
	Rank    int
}

// AreaRanking aggregates every team registered in one depth1/depth2 area.
type AreaRanking struct {
	RegionDepth1 string
	RegionDepth2 string
	TeamCount    int
	TotalWins    int
	TotalLosses  int
	AvgWinRate   float64
	Rank         int
}

func winRatePercent(wins, losses int) float64 {
	played := wins + losses
	if played == 0 {
		return 0
	}
	return float64(wins) / float64(played) * 100
}

// RankTeams orders by wins, then win rate. Ties keep input order.
func RankTeams(teams []team.Team) []TeamRanking {
	out := make([]TeamRanking, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamRanking{Team: t, WinRate: winRatePercent(t.WinCount, t.LossCount)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Team.WinCount != out[j].Team.WinCount {
			return out[i].Team.WinCount > out[j].Team.WinCount
		}
		return out[i].WinRate > out[j].WinRate
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func RankAreas(teams []team.Team) []AreaRanking {
	type areaKey struct{ depth1, depth2 string }

	index := make(map[areaKey]int)
	areas := make([]AreaRanking, 0)
	for _, t := range teams {
		key := areaKey{depth1: t.Region.Depth1, depth2: t.Region.Depth2}
		idx, ok := index[key]
		if !ok {
			idx = len(areas)
			index[key] = idx
			areas = append(areas, AreaRanking{RegionDepth1: key.depth1, RegionDepth2: key.depth2})
		}
		areas[idx].TeamCount++
		areas[idx].TotalWins += t.WinCount
		areas[idx].TotalLosses += t.LossCount
	}

	for i := range areas {
		areas[i].AvgWinRate = winRatePercent(areas[i].TotalWins, areas[i].TotalLosses)
	}
	sort.SliceStable(areas, func(i, j int) bool {
		if areas[i].TotalWins != areas[j].TotalWins {
			return areas[i].TotalWins > areas[j].TotalWins
		}
		return areas[i].AvgWinRate > areas[j].AvgWinRate
	})
	for i := range areas {
		areas[i].Rank = i + 1
	}
	return areas
}

// PositionOf returns the 1-based rank of teamID, or 0 when absent.
func PositionOf(rankings []TeamRanking, teamID string) int {
	for _, r := range rankings {
		if r.Team.ID == teamID {
			return r.Rank
		}
	}
	return 0
}
