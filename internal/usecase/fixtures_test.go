package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	"github.com/riskibarqy/arena-scrim/internal/domain/team"
	"github.com/riskibarqy/arena-scrim/internal/infrastructure/repository/memory"
)

var fixtureNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type sequenceIDGenerator struct {
	prefix string
	next   atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%03d", g.prefix, g.next.Add(1)), nil
}

// scriptedCodeGenerator hands out codes in order and repeats the last one.
type scriptedCodeGenerator struct {
	mu    sync.Mutex
	codes []string
}

func (g *scriptedCodeGenerator) NewCode(_ string, _ int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	code := g.codes[0]
	if len(g.codes) > 1 {
		g.codes = g.codes[1:]
	}
	return code, nil
}

// fakeAccountProvider serves accounts keyed by "name#tag" and standings keyed
// by puuid.
type fakeAccountProvider struct {
	mu          sync.Mutex
	accounts    map[string]ExternalAccount
	standings   map[string]*profile.RankedStanding
	resolveErr  error
	standingErr map[string]error
	calls       int
}

func newFakeAccountProvider() *fakeAccountProvider {
	return &fakeAccountProvider{
		accounts:    make(map[string]ExternalAccount),
		standings:   make(map[string]*profile.RankedStanding),
		standingErr: make(map[string]error),
	}
}

func (p *fakeAccountProvider) addAccount(account ExternalAccount, standing *profile.RankedStanding) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := strings.ToLower(account.GameName + "#" + account.TagLine)
	p.accounts[key] = account
	p.standings[account.PUUID] = standing
}

func (p *fakeAccountProvider) setIcon(puuid string, icon int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, account := range p.accounts {
		if account.PUUID == puuid {
			account.ProfileIconID = icon
			p.accounts[key] = account
		}
	}
}

func (p *fakeAccountProvider) ResolveAccount(_ context.Context, id profile.RiotID) (ExternalAccount, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	if p.resolveErr != nil {
		return ExternalAccount{}, p.resolveErr
	}
	account, ok := p.accounts[strings.ToLower(id.String())]
	if !ok {
		return ExternalAccount{}, fmt.Errorf("%w: riot account %s", ErrNotFound, id)
	}
	return account, nil
}

func (p *fakeAccountProvider) GetRankedStanding(_ context.Context, puuid string) (*profile.RankedStanding, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	if err := p.standingErr[puuid]; err != nil {
		return nil, err
	}
	return p.standings[puuid], nil
}

type countingInvalidator struct {
	calls atomic.Int32
}

func (i *countingInvalidator) Invalidate(context.Context) {
	i.calls.Add(1)
}

func verifiedProfile(userID, teamID string, standing *profile.RankedStanding) profile.Profile {
	verifiedAt := fixtureNow.Add(-time.Hour)
	return profile.Profile{
		UserID: userID,
		TeamID: teamID,
		Account: &profile.RiotAccount{
			PUUID:    "puuid-" + userID,
			GameName: "player " + userID,
			TagLine:  "KR1",
			Region:   profile.DefaultRiotRegion,
			Level:    120,
			Ranked:   standing,
		},
		Verification: profile.Verification{Stage: profile.StageVerified, VerifiedAt: &verifiedAt},
		CreatedAt:    fixtureNow.Add(-48 * time.Hour),
		UpdatedAt:    fixtureNow.Add(-time.Hour),
	}
}

func unverifiedProfile(userID, teamID string) profile.Profile {
	return profile.Profile{
		UserID:       userID,
		TeamID:       teamID,
		Verification: profile.Verification{Stage: profile.StageUnverified},
		CreatedAt:    fixtureNow.Add(-48 * time.Hour),
		UpdatedAt:    fixtureNow.Add(-48 * time.Hour),
	}
}

func fixtureTeam(id, captainID, code string, region team.Region) team.Team {
	return team.Team{
		ID:          id,
		Name:        "Team " + id,
		Region:      region,
		CaptainID:   captainID,
		ContactLink: "https://open.kakao.com/o/" + id,
		InviteCode:  code,
		CreatedAt:   fixtureNow.Add(-24 * time.Hour),
		UpdatedAt:   fixtureNow.Add(-24 * time.Hour),
	}
}

// rosterProfiles builds a full verified roster whose first member captains
// the team.
func rosterProfiles(teamID string, size int) []profile.Profile {
	out := make([]profile.Profile, 0, size)
	for i := 1; i <= size; i++ {
		standing := &profile.RankedStanding{Tier: profile.TierGold, Division: profile.DivisionII, LeaguePoints: 40}
		out = append(out, verifiedProfile(fmt.Sprintf("%s-u%d", teamID, i), teamID, standing))
	}
	return out
}

type scrimFixture struct {
	teams    *memory.TeamRepository
	profiles *memory.ProfileRepository
	matches  *memory.MatchRepository
}

var (
	seoulGangnam  = team.Region{Depth1: "서울특별시", Depth2: "강남구", Depth3: "역삼동"}
	busanHaeundae = team.Region{Depth1: "부산광역시", Depth2: "해운대구"}
)

// newScrimFixture seeds two eligible teams: "alpha" captained by alpha-u1 and
// "bravo" captained by bravo-u1.
func newScrimFixture(t *testing.T) scrimFixture {
	t.Helper()

	teams := memory.NewTeamRepository(
		fixtureTeam("alpha", "alpha-u1", "ALPHA234", seoulGangnam),
		fixtureTeam("bravo", "bravo-u1", "BRAVE234", busanHaeundae),
	)
	seed := append(rosterProfiles("alpha", 5), rosterProfiles("bravo", 5)...)
	profiles := memory.NewProfileRepository(seed...)
	return scrimFixture{
		teams:    teams,
		profiles: profiles,
		matches:  memory.NewMatchRepository(teams),
	}
}
