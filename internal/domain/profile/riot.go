package profile

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRiotID = errors.New("riot id must look like name#tag")

// RiotID is the user-facing "game name + tag line" pair.
type RiotID struct {
	GameName string
	TagLine  string
}

func ParseRiotID(raw string) (RiotID, error) {
	parts := strings.Split(raw, "#")
	if len(parts) != 2 {
		return RiotID{}, fmt.Errorf("%w: %q", ErrInvalidRiotID, raw)
	}
	id := RiotID{GameName: strings.TrimSpace(parts[0]), TagLine: strings.TrimSpace(parts[1])}
	if id.GameName == "" || id.TagLine == "" {
		return RiotID{}, fmt.Errorf("%w: %q", ErrInvalidRiotID, raw)
	}
	return id, nil
}

func (id RiotID) String() string {
	return id.GameName + "#" + id.TagLine
}

// RankedStanding is a solo-queue placement.
type RankedStanding struct {
	Tier         Tier
	Division     Division
	LeaguePoints int
}

// Score maps a placement onto a linear scale: IRON IV is 1, each division
// adds 1 and apex tiers count as division I.
func (r RankedStanding) Score() float64 {
	rank := r.Tier.Rank()
	if rank < 0 {
		return 0
	}
	step := r.Division.Step()
	if !r.Tier.HasDivisions() || step == 0 {
		step = DivisionI.Step()
	}
	return float64(rank*len(AllDivisions) + step)
}

func (r RankedStanding) String() string {
	if !r.Tier.HasDivisions() {
		return fmt.Sprintf("%s %dLP", r.Tier, r.LeaguePoints)
	}
	return fmt.Sprintf("%s %s %dLP", r.Tier, r.Division, r.LeaguePoints)
}

const DefaultRiotRegion = "kr"

// RiotAccount is the verified link between a profile and a Riot account.
type RiotAccount struct {
	PUUID    string
	GameName string
	TagLine  string
	Region   string
	Level    int
	Ranked   *RankedStanding
}

func (a RiotAccount) RiotID() RiotID {
	return RiotID{GameName: a.GameName, TagLine: a.TagLine}
}

// TierScore averages the ranked scores of the given standings, skipping
// unranked entries. It returns nil when nobody is ranked.
func TierScore(standings []*RankedStanding) *float64 {
	var sum float64
	count := 0
	for _, s := range standings {
		if s == nil || !s.Tier.Valid() {
			continue
		}
		sum += s.Score()
		count++
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}
