package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	"github.com/riskibarqy/arena-scrim/internal/domain/team"
	idgen "github.com/riskibarqy/arena-scrim/internal/platform/id"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	inviteCodeAttempts          = 5
	defaultRosterRefreshWorkers = 4
	maxContactLinkLength        = 300
)

type CreateTeamInput struct {
	UserID      string
	Name        string
	Region      team.Region
	ContactLink string
}

type TeamRoster struct {
	Team    team.Team
	Members []profile.Profile
}

type RosterRefreshResult struct {
	Refreshed    int
	Failed       int
	Skipped      int
	AvgTierScore *float64
}

// TeamService manages team membership: founding, invites, leaving and roster
// upkeep.
type TeamService struct {
	teamRepo       team.Repository
	profileRepo    profile.Repository
	provider       AccountProvider
	idGen          idgen.Generator
	codeGen        idgen.CodeGenerator
	refreshWorkers int
	logger         *logging.Logger
	now            func() time.Time
}

func NewTeamService(
	teamRepo team.Repository,
	profileRepo profile.Repository,
	provider AccountProvider,
	idGen idgen.Generator,
	codeGen idgen.CodeGenerator,
	refreshWorkers int,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	if refreshWorkers <= 0 {
		refreshWorkers = defaultRosterRefreshWorkers
	}

	return &TeamService{
		teamRepo:       teamRepo,
		profileRepo:    profileRepo,
		provider:       provider,
		idGen:          idGen,
		codeGen:        codeGen,
		refreshWorkers: refreshWorkers,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	userID, err := requireUser(input.UserID)
	if err != nil {
		return team.Team{}, err
	}
	input.Name = strings.TrimSpace(input.Name)
	input.ContactLink = strings.TrimSpace(input.ContactLink)
	input.Region = team.Region{
		Depth1: strings.TrimSpace(input.Region.Depth1),
		Depth2: strings.TrimSpace(input.Region.Depth2),
		Depth3: strings.TrimSpace(input.Region.Depth3),
	}
	if input.Name == "" || input.ContactLink == "" {
		return team.Team{}, fmt.Errorf("%w: name and contact link are required", ErrInvalidInput)
	}
	if err := validateContactLink(input.ContactLink); err != nil {
		return team.Team{}, err
	}

	now := s.now().UTC()
	founder, err := ensureProfile(ctx, s.profileRepo, userID, now)
	if err != nil {
		return team.Team{}, err
	}
	if err := requireJoinable(founder); err != nil {
		return team.Team{}, err
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	code, err := s.newInviteCode(ctx)
	if err != nil {
		return team.Team{}, err
	}

	created := team.Team{
		ID:          teamID,
		Name:        input.Name,
		Region:      input.Region,
		CaptainID:   userID,
		ContactLink: input.ContactLink,
		InviteCode:  code,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := created.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Create(ctx, created); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	assigned, err := s.profileRepo.AssignTeam(ctx, userID, teamID)
	if err != nil || !assigned {
		if delErr := s.teamRepo.Delete(ctx, teamID); delErr != nil {
			s.logger.ErrorContext(ctx, "rollback team creation failed", "team_id", teamID, "error", delErr)
		}
		if err != nil {
			return team.Team{}, fmt.Errorf("assign captain to team: %w", err)
		}
		return team.Team{}, fmt.Errorf("%w: user already joined a team", ErrConflict)
	}
	if score, err := recomputeAvgTierScore(ctx, s.profileRepo, s.teamRepo, teamID); err == nil {
		created.AvgTierScore = score
	} else {
		s.logger.WarnContext(ctx, "compute avg tier score failed", "team_id", teamID, "error", err)
	}

	span.SetAttributes(attribute.String("team.id", teamID))
	s.logger.InfoContext(ctx, "team created", "team_id", teamID, "captain_id", userID, "region", input.Region.AreaKey())
	return created, nil
}

func (s *TeamService) newInviteCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code, err := s.codeGen.NewCode(team.InviteCodeAlphabet, team.InviteCodeLength)
		if err != nil {
			return "", fmt.Errorf("generate invite code: %w", err)
		}
		_, taken, err := s.teamRepo.GetByInviteCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check invite code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: could not allocate a unique invite code", ErrConflict)
}

func (s *TeamService) UpdateContactLink(ctx context.Context, userID, link string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpdateContactLink")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return team.Team{}, err
	}
	link = strings.TrimSpace(link)
	if link == "" {
		return team.Team{}, fmt.Errorf("%w: contact link is required", ErrInvalidInput)
	}
	if err := validateContactLink(link); err != nil {
		return team.Team{}, err
	}

	member, err := loadMembership(ctx, s.profileRepo, s.teamRepo, userID)
	if err != nil {
		return team.Team{}, err
	}
	if err := member.requireCaptain(); err != nil {
		return team.Team{}, err
	}

	updated, err := s.teamRepo.UpdateContactLink(ctx, member.team.ID, userID, link)
	if err != nil {
		return team.Team{}, fmt.Errorf("update contact link: %w", err)
	}
	if !updated {
		return team.Team{}, fmt.Errorf("%w: captaincy changed", ErrForbidden)
	}

	member.team.ContactLink = link
	member.team.UpdatedAt = s.now().UTC()
	return member.team, nil
}

// JoinByInviteCode adds the caller to the team owning code. Concurrent joins
// by different users all succeed; one user can never hold two teams.
func (s *TeamService) JoinByInviteCode(ctx context.Context, userID, code string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.JoinByInviteCode")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return team.Team{}, err
	}
	code = team.NormalizeInviteCode(code)
	if !team.ValidInviteCode(code) {
		return team.Team{}, fmt.Errorf("%w: malformed invite code", ErrInvalidInput)
	}

	joiner, err := ensureProfile(ctx, s.profileRepo, userID, s.now().UTC())
	if err != nil {
		return team.Team{}, err
	}
	if err := requireJoinable(joiner); err != nil {
		return team.Team{}, err
	}

	target, exists, err := s.teamRepo.GetByInviteCode(ctx, code)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by invite code: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: invite code %s", ErrNotFound, code)
	}

	assigned, err := s.profileRepo.AssignTeam(ctx, userID, target.ID)
	if err != nil {
		return team.Team{}, fmt.Errorf("join team: %w", err)
	}
	if !assigned {
		return team.Team{}, fmt.Errorf("%w: user already joined a team", ErrConflict)
	}
	if score, err := recomputeAvgTierScore(ctx, s.profileRepo, s.teamRepo, target.ID); err == nil {
		target.AvgTierScore = score
	} else {
		s.logger.WarnContext(ctx, "compute avg tier score failed", "team_id", target.ID, "error", err)
	}

	s.logger.InfoContext(ctx, "team joined", "team_id", target.ID, "user_id", userID)
	return target, nil
}

func (s *TeamService) Leave(ctx context.Context, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Leave")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return err
	}
	member, err := loadMembership(ctx, s.profileRepo, s.teamRepo, userID)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			return fmt.Errorf("%w: user is not in a team", ErrInvalidState)
		}
		return err
	}
	if member.team.IsCaptain(userID) {
		return fmt.Errorf("%w: captain cannot leave the team", ErrForbidden)
	}

	cleared, err := s.profileRepo.ClearTeam(ctx, userID, member.team.ID)
	if err != nil {
		return fmt.Errorf("leave team: %w", err)
	}
	if !cleared {
		return fmt.Errorf("%w: membership changed", ErrInvalidState)
	}
	if _, err := recomputeAvgTierScore(ctx, s.profileRepo, s.teamRepo, member.team.ID); err != nil {
		s.logger.WarnContext(ctx, "compute avg tier score failed", "team_id", member.team.ID, "error", err)
	}

	s.logger.InfoContext(ctx, "team left", "team_id", member.team.ID, "user_id", userID)
	return nil
}

func (s *TeamService) GetMyTeam(ctx context.Context, userID string) (TeamRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetMyTeam")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return TeamRoster{}, err
	}
	member, err := loadMembership(ctx, s.profileRepo, s.teamRepo, userID)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			return TeamRoster{}, fmt.Errorf("%w: user is not in a team", ErrNotFound)
		}
		return TeamRoster{}, err
	}

	members, err := s.profileRepo.ListByTeam(ctx, member.team.ID)
	if err != nil {
		return TeamRoster{}, fmt.Errorf("list team members: %w", err)
	}
	return TeamRoster{Team: member.team, Members: members}, nil
}

func (s *TeamService) SetPosition(ctx context.Context, userID, position string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SetPosition")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return profile.Profile{}, err
	}
	pos, ok := profile.ParsePosition(position)
	if !ok {
		return profile.Profile{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, position)
	}

	current, err := ensureProfile(ctx, s.profileRepo, userID, s.now().UTC())
	if err != nil {
		return profile.Profile{}, err
	}
	if err := s.profileRepo.UpdatePosition(ctx, userID, pos); err != nil {
		return profile.Profile{}, fmt.Errorf("update position: %w", err)
	}
	current.Position = pos
	return current, nil
}

// RefreshRoster re-reads every verified member's solo-queue standing and
// recomputes the team's average tier. Individual lookup failures are counted,
// not fatal.
func (s *TeamService) RefreshRoster(ctx context.Context, userID string) (RosterRefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RefreshRoster")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return RosterRefreshResult{}, err
	}
	member, err := loadMembership(ctx, s.profileRepo, s.teamRepo, userID)
	if err != nil {
		return RosterRefreshResult{}, err
	}
	if err := member.requireCaptain(); err != nil {
		return RosterRefreshResult{}, err
	}

	members, err := s.profileRepo.ListByTeam(ctx, member.team.ID)
	if err != nil {
		return RosterRefreshResult{}, fmt.Errorf("list team members: %w", err)
	}

	pool, err := ants.NewPool(s.refreshWorkers)
	if err != nil {
		return RosterRefreshResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		refreshed atomic.Int32
		failed    atomic.Int32
		skipped   atomic.Int32
		workers   sync.WaitGroup
	)
	for _, m := range members {
		if !m.IsVerified() {
			skipped.Add(1)
			continue
		}
		m := m
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			ranked, err := s.provider.GetRankedStanding(ctx, m.Account.PUUID)
			if err == nil {
				err = s.profileRepo.UpdateRanked(ctx, m.UserID, m.Account.Level, ranked)
			}
			if err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "refresh member ranked standing failed",
					"team_id", member.team.ID,
					"user_id", m.UserID,
					"error", err,
				)
				return
			}
			refreshed.Add(1)
		}); err != nil {
			workers.Done()
			return RosterRefreshResult{}, fmt.Errorf("submit refresh task: %w", err)
		}
	}
	workers.Wait()

	score, err := recomputeAvgTierScore(ctx, s.profileRepo, s.teamRepo, member.team.ID)
	if err != nil {
		return RosterRefreshResult{}, err
	}

	result := RosterRefreshResult{
		Refreshed:    int(refreshed.Load()),
		Failed:       int(failed.Load()),
		Skipped:      int(skipped.Load()),
		AvgTierScore: score,
	}
	s.logger.InfoContext(ctx, "team roster refreshed",
		"team_id", member.team.ID,
		"refreshed", result.Refreshed,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}

// requireJoinable gates team creation and joining on a verified, team-less
// profile.
func requireJoinable(p profile.Profile) error {
	if !p.IsVerified() {
		return fmt.Errorf("%w: riot account verification required", ErrForbidden)
	}
	if p.HasTeam() {
		return fmt.Errorf("%w: user already belongs to a team", ErrConflict)
	}
	return nil
}

func validateContactLink(link string) error {
	if len(link) > maxContactLinkLength {
		return fmt.Errorf("%w: contact link must be at most %d characters", ErrInvalidInput, maxContactLinkLength)
	}
	return nil
}
