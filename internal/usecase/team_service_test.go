package usecase

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	"github.com/riskibarqy/arena-scrim/internal/domain/team"
	"github.com/riskibarqy/arena-scrim/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
)

func newTestTeamService(teams team.Repository, profiles profile.Repository, provider AccountProvider, codes ...string) *TeamService {
	if len(codes) == 0 {
		codes = []string{"ABCD2345"}
	}
	service := NewTeamService(
		teams,
		profiles,
		provider,
		staticIDGenerator{id: "team-001"},
		&scriptedCodeGenerator{codes: codes},
		2,
		logging.NewNop(),
	)
	service.now = func() time.Time { return fixtureNow }
	return service
}

func TestTeamService_CreateMakesCallerCaptain(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	gold := &profile.RankedStanding{Tier: profile.TierGold, Division: profile.DivisionI}
	teams := memory.NewTeamRepository()
	profiles := memory.NewProfileRepository(verifiedProfile("user-1", "", gold))
	service := newTestTeamService(teams, profiles, newFakeAccountProvider())

	created, err := service.Create(ctx, CreateTeamInput{
		UserID:      "user-1",
		Name:        "  Gangnam Five ",
		Region:      seoulGangnam,
		ContactLink: "https://open.kakao.com/o/gangnam",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if created.ID != "team-001" || created.Name != "Gangnam Five" || created.CaptainID != "user-1" {
		t.Fatalf("unexpected team: %+v", created)
	}
	if created.InviteCode != "ABCD2345" {
		t.Fatalf("expected scripted invite code, got %q", created.InviteCode)
	}
	if created.AvgTierScore == nil || *created.AvgTierScore != gold.Score() {
		t.Fatalf("expected avg tier score %v, got %v", gold.Score(), created.AvgTierScore)
	}

	captain, _, _ := profiles.GetByUserID(ctx, "user-1")
	if captain.TeamID != "team-001" {
		t.Fatalf("captain should belong to the new team, got %q", captain.TeamID)
	}

	service.idGen = staticIDGenerator{id: "team-002"}
	if _, err := service.Create(ctx, CreateTeamInput{UserID: "user-1", Name: "Again", Region: seoulGangnam, ContactLink: "x"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("second team should conflict, got %v", err)
	}
}

func TestTeamService_CreateRejectsUnverifiedAndBadInput(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	teams := memory.NewTeamRepository()
	profiles := memory.NewProfileRepository(unverifiedProfile("user-1", ""), verifiedProfile("user-2", "", nil))
	service := newTestTeamService(teams, profiles, newFakeAccountProvider())

	input := CreateTeamInput{UserID: "user-1", Name: "Team", Region: seoulGangnam, ContactLink: "https://open.kakao.com/o/x"}
	if _, err := service.Create(ctx, input); !errors.Is(err, ErrForbidden) {
		t.Fatalf("unverified user should be forbidden, got %v", err)
	}

	input.UserID = "user-2"
	input.Region = team.Region{Depth1: "서울특별시"}
	if _, err := service.Create(ctx, input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("partial region should be invalid input, got %v", err)
	}

	input.Region = seoulGangnam
	input.ContactLink = ""
	if _, err := service.Create(ctx, input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing contact link should be invalid input, got %v", err)
	}
	if _, exists, _ := teams.GetByID(ctx, "team-001"); exists {
		t.Fatalf("rejected create must not persist a team")
	}
}

func TestTeamService_CreateRetriesTakenInviteCode(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	teams := memory.NewTeamRepository(fixtureTeam("existing", "someone", "ABCD2345", seoulGangnam))
	profiles := memory.NewProfileRepository(verifiedProfile("user-1", "", nil))
	service := newTestTeamService(teams, profiles, newFakeAccountProvider(), "ABCD2345", "WXYZ6789")

	created, err := service.Create(ctx, CreateTeamInput{UserID: "user-1", Name: "Fresh", Region: seoulGangnam, ContactLink: "https://open.kakao.com/o/f"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if created.InviteCode != "WXYZ6789" {
		t.Fatalf("expected retried invite code, got %q", created.InviteCode)
	}
}

func TestTeamService_ConcurrentJoinsAllSucceed(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	teams := memory.NewTeamRepository(fixtureTeam("team-1", "captain", "ABCD2345", seoulGangnam))
	seed := []profile.Profile{verifiedProfile("captain", "team-1", nil)}
	for i := 1; i <= 6; i++ {
		seed = append(seed, verifiedProfile(fmt.Sprintf("joiner-%d", i), "", nil))
	}
	profiles := memory.NewProfileRepository(seed...)
	service := newTestTeamService(teams, profiles, newFakeAccountProvider())

	var wg sync.WaitGroup
	errs := make(chan error, 6)
	for i := 1; i <= 6; i++ {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			if _, err := service.JoinByInviteCode(ctx, userID, "abcd2345"); err != nil {
				errs <- fmt.Errorf("%s: %w", userID, err)
			}
		}(fmt.Sprintf("joiner-%d", i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("join failed: %v", err)
	}

	members, err := profiles.ListByTeam(ctx, "team-1")
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 7 {
		t.Fatalf("expected 7 members, got %d", len(members))
	}
}

func TestTeamService_JoinRules(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	teams := memory.NewTeamRepository(
		fixtureTeam("team-1", "captain-1", "ABCD2345", seoulGangnam),
		fixtureTeam("team-2", "captain-2", "WXYZ6789", busanHaeundae),
	)
	profiles := memory.NewProfileRepository(
		verifiedProfile("captain-1", "team-1", nil),
		verifiedProfile("captain-2", "team-2", nil),
		verifiedProfile("free", "", nil),
		unverifiedProfile("newbie", ""),
	)
	service := newTestTeamService(teams, profiles, newFakeAccountProvider())

	if _, err := service.JoinByInviteCode(ctx, "free", "bad"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("malformed code should be invalid input, got %v", err)
	}
	if _, err := service.JoinByInviteCode(ctx, "free", "ZZZZ2345"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown code should be not found, got %v", err)
	}
	if _, err := service.JoinByInviteCode(ctx, "newbie", "ABCD2345"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("unverified join should be forbidden, got %v", err)
	}
	if _, err := service.JoinByInviteCode(ctx, "captain-2", "ABCD2345"); !errors.Is(err, ErrConflict) {
		t.Fatalf("member of another team should conflict, got %v", err)
	}

	joined, err := service.JoinByInviteCode(ctx, "free", "ABCD2345")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined.ID != "team-1" {
		t.Fatalf("joined wrong team %q", joined.ID)
	}
	if _, err := service.JoinByInviteCode(ctx, "free", "WXYZ6789"); !errors.Is(err, ErrConflict) {
		t.Fatalf("second join should conflict, got %v", err)
	}
}

func TestTeamService_LeaveAndCaptainRules(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	teams := memory.NewTeamRepository(fixtureTeam("team-1", "captain", "ABCD2345", seoulGangnam))
	profiles := memory.NewProfileRepository(
		verifiedProfile("captain", "team-1", nil),
		verifiedProfile("member", "team-1", nil),
		verifiedProfile("loner", "", nil),
	)
	service := newTestTeamService(teams, profiles, newFakeAccountProvider())

	if err := service.Leave(ctx, "captain"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("captain leave should be forbidden, got %v", err)
	}
	if err := service.Leave(ctx, "loner"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("leave without team should be invalid state, got %v", err)
	}
	if _, err := service.UpdateContactLink(ctx, "member", "https://open.kakao.com/o/new"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-captain edit should be forbidden, got %v", err)
	}

	updated, err := service.UpdateContactLink(ctx, "captain", "https://open.kakao.com/o/new")
	if err != nil {
		t.Fatalf("update contact link: %v", err)
	}
	if updated.ContactLink != "https://open.kakao.com/o/new" {
		t.Fatalf("unexpected contact link %q", updated.ContactLink)
	}

	if err := service.Leave(ctx, "member"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	roster, err := service.GetMyTeam(ctx, "captain")
	if err != nil {
		t.Fatalf("get my team: %v", err)
	}
	if len(roster.Members) != 1 || roster.Team.ContactLink != "https://open.kakao.com/o/new" {
		t.Fatalf("unexpected roster: %+v", roster)
	}
	if _, err := service.GetMyTeam(ctx, "member"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get team after leaving should be not found, got %v", err)
	}
}

func TestTeamService_SetPosition(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	profiles := memory.NewProfileRepository(verifiedProfile("user-1", "", nil))
	service := newTestTeamService(memory.NewTeamRepository(), profiles, newFakeAccountProvider())

	updated, err := service.SetPosition(ctx, "user-1", "jungle")
	if err != nil {
		t.Fatalf("set position: %v", err)
	}
	if updated.Position != profile.PositionJungle {
		t.Fatalf("expected jungle, got %q", updated.Position)
	}
	if _, err := service.SetPosition(ctx, "user-1", "support-ish"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown position should be invalid input, got %v", err)
	}
}

func TestTeamService_RefreshRosterCountsFailures(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	teams := memory.NewTeamRepository(fixtureTeam("team-1", "captain", "ABCD2345", seoulGangnam))
	profiles := memory.NewProfileRepository(
		verifiedProfile("captain", "team-1", nil),
		verifiedProfile("member", "team-1", nil),
		verifiedProfile("broken", "team-1", nil),
		unverifiedProfile("newbie", "team-1"),
	)
	provider := newFakeAccountProvider()
	provider.standings["puuid-captain"] = &profile.RankedStanding{Tier: profile.TierIron, Division: profile.DivisionIV}
	provider.standings["puuid-member"] = &profile.RankedStanding{Tier: profile.TierGold, Division: profile.DivisionI}
	provider.standingErr["puuid-broken"] = fmt.Errorf("%w: upstream 500", ErrProviderFailure)
	service := newTestTeamService(teams, profiles, provider)

	if _, err := service.RefreshRoster(ctx, "member"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-captain refresh should be forbidden, got %v", err)
	}

	result, err := service.RefreshRoster(ctx, "captain")
	if err != nil {
		t.Fatalf("refresh roster: %v", err)
	}
	if result.Refreshed != 2 || result.Failed != 1 || result.Skipped != 1 {
		t.Fatalf("unexpected refresh counts: %+v", result)
	}
	if result.AvgTierScore == nil || *result.AvgTierScore != 8.5 {
		t.Fatalf("expected avg tier score 8.5, got %v", result.AvgTierScore)
	}
	stored, _, _ := teams.GetByID(ctx, "team-1")
	if stored.AvgTierScore == nil || *stored.AvgTierScore != 8.5 {
		t.Fatalf("avg tier score was not persisted: %v", stored.AvgTierScore)
	}
}
