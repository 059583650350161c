package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/match"
	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	"github.com/riskibarqy/arena-scrim/internal/domain/team"
	idgen "github.com/riskibarqy/arena-scrim/internal/platform/id"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultMinRosterSize = 5
	targetTierAll        = "ALL"
)

type CreateMatchInput struct {
	UserID      string
	ScheduledAt time.Time
	// TargetTier is a tier name, "ALL" or empty.
	TargetTier string
}

type OpenMatchQuery struct {
	RegionDepth1 string
	RegionDepth2 string
	TargetTier   string
}

// MatchView is a match with its teams attached. Contact links are only kept
// for the viewer's opponent once the match is paired.
type MatchView struct {
	Match      match.Match
	Host       team.Team
	Challenger *team.Team
}

type AcceptMatchResult struct {
	Match           match.Match
	HostContactLink string
}

// MatchService drives the scrim lifecycle: posting, pairing, reporting and
// settling results.
type MatchService struct {
	matchRepo     match.Repository
	teamRepo      team.Repository
	profileRepo   profile.Repository
	idGen         idgen.Generator
	invalidator   ReadModelInvalidator
	minRosterSize int
	logger        *logging.Logger
	now           func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	profileRepo profile.Repository,
	idGen idgen.Generator,
	invalidator ReadModelInvalidator,
	minRosterSize int,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if minRosterSize <= 0 {
		minRosterSize = DefaultMinRosterSize
	}

	return &MatchService{
		matchRepo:     matchRepo,
		teamRepo:      teamRepo,
		profileRepo:   profileRepo,
		idGen:         idGen,
		invalidator:   invalidator,
		minRosterSize: minRosterSize,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	userID, err := requireUser(input.UserID)
	if err != nil {
		return match.Match{}, err
	}
	if input.ScheduledAt.IsZero() {
		return match.Match{}, fmt.Errorf("%w: scheduled_at is required", ErrInvalidInput)
	}
	targetTier, err := parseTargetTier(input.TargetTier)
	if err != nil {
		return match.Match{}, err
	}

	member, err := loadMembership(ctx, s.profileRepo, s.teamRepo, userID)
	if err != nil {
		return match.Match{}, err
	}
	if err := member.requireCaptain(); err != nil {
		return match.Match{}, err
	}
	if err := s.ensureRosterEligible(ctx, member.team.ID); err != nil {
		return match.Match{}, err
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	m, err := match.New(matchID, member.team.ID, input.ScheduledAt, targetTier, s.now())
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	span.SetAttributes(attribute.String("match.id", m.ID), attribute.String("team.id", member.team.ID))
	s.logger.InfoContext(ctx, "match posted", "match_id", m.ID, "host_team_id", m.HostTeamID, "target_tier", string(m.TargetTier))
	return m, nil
}

func (s *MatchService) ensureRosterEligible(ctx context.Context, teamID string) error {
	members, err := s.profileRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("list team members: %w", err)
	}
	if len(members) < s.minRosterSize {
		return &EligibilityError{Requirement: RequirementRosterSize, Observed: len(members), Required: s.minRosterSize}
	}
	verified := 0
	for _, m := range members {
		if m.IsVerified() {
			verified++
		}
	}
	if verified < len(members) {
		return &EligibilityError{Requirement: RequirementRosterVerified, Observed: verified, Required: len(members)}
	}
	return nil
}

// Accept pairs the caller's team with an open match and reveals the host's
// contact link.
func (s *MatchService) Accept(ctx context.Context, userID, matchID string) (AcceptMatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Accept", attribute.String("match.id", matchID))
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return AcceptMatchResult{}, err
	}
	member, err := loadMembership(ctx, s.profileRepo, s.teamRepo, userID)
	if err != nil {
		return AcceptMatchResult{}, err
	}
	if err := member.requireCaptain(); err != nil {
		return AcceptMatchResult{}, err
	}

	current, err := s.getMatch(ctx, matchID)
	if err != nil {
		return AcceptMatchResult{}, err
	}
	next, err := current.Accept(member.team.ID, s.now())
	if err != nil {
		return AcceptMatchResult{}, mapMatchError(err)
	}
	if err := s.matchRepo.Transition(ctx, next, current.Status, current.Version); err != nil {
		return AcceptMatchResult{}, s.transitionFailed(ctx, "accept", current, userID, err)
	}

	host, exists, err := s.teamRepo.GetByID(ctx, next.HostTeamID)
	if err != nil {
		return AcceptMatchResult{}, fmt.Errorf("get host team: %w", err)
	}
	if !exists {
		return AcceptMatchResult{}, fmt.Errorf("%w: host team=%s", ErrNotFound, next.HostTeamID)
	}

	s.logger.InfoContext(ctx, "match accepted", "match_id", next.ID, "challenger_team_id", next.ChallengerTeamID)
	return AcceptMatchResult{Match: next, HostContactLink: host.ContactLink}, nil
}

func (s *MatchService) Cancel(ctx context.Context, userID, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Cancel", attribute.String("match.id", matchID))
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return err
	}
	member, err := loadMembership(ctx, s.profileRepo, s.teamRepo, userID)
	if err != nil {
		return err
	}
	if err := member.requireCaptain(); err != nil {
		return err
	}

	current, err := s.getMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if err := current.EnsureCancellable(member.team.ID); err != nil {
		return mapMatchError(err)
	}
	if err := s.matchRepo.DeleteOpen(ctx, current.ID, member.team.ID); err != nil {
		return s.transitionFailed(ctx, "cancel", current, userID, err)
	}

	s.logger.InfoContext(ctx, "match cancelled", "match_id", current.ID, "host_team_id", current.HostTeamID)
	return nil
}

func (s *MatchService) ReportResult(ctx context.Context, userID, matchID, outcome string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ReportResult", attribute.String("match.id", matchID))
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return match.Match{}, err
	}
	parsed, ok := match.ParseOutcome(outcome)
	if !ok {
		return match.Match{}, fmt.Errorf("%w: outcome must be win or loss", ErrInvalidInput)
	}
	member, err := loadMembership(ctx, s.profileRepo, s.teamRepo, userID)
	if err != nil {
		return match.Match{}, err
	}

	current, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	next, err := current.ReportResult(member.team.ID, parsed, s.now())
	if err != nil {
		return match.Match{}, mapMatchError(err)
	}
	if err := s.matchRepo.Transition(ctx, next, current.Status, current.Version); err != nil {
		return match.Match{}, s.transitionFailed(ctx, "report", current, userID, err)
	}

	s.logger.InfoContext(ctx, "match result reported", "match_id", next.ID, "reporter_team_id", member.team.ID, "winner_team_id", next.WinnerTeamID)
	return next, nil
}

// Confirm settles the claimed result and updates both teams' records in one
// write.
func (s *MatchService) Confirm(ctx context.Context, userID, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Confirm", attribute.String("match.id", matchID))
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return match.Match{}, err
	}
	member, err := loadMembership(ctx, s.profileRepo, s.teamRepo, userID)
	if err != nil {
		return match.Match{}, err
	}

	current, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	next, err := current.Confirm(member.team.ID, s.now())
	if err != nil {
		return match.Match{}, mapMatchError(err)
	}
	winner, loser := next.WinnerTeamID, next.LoserTeamID()
	if err := s.matchRepo.Complete(ctx, next, current.Version, winner, loser); err != nil {
		return match.Match{}, s.transitionFailed(ctx, "confirm", current, userID, err)
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
	s.logger.InfoContext(ctx, "match completed", "match_id", next.ID, "winner_team_id", winner, "loser_team_id", loser)
	return next, nil
}

// Dispute parks the match in DISPUTED; nothing moves it further.
func (s *MatchService) Dispute(ctx context.Context, userID, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Dispute", attribute.String("match.id", matchID))
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return match.Match{}, err
	}
	member, err := loadMembership(ctx, s.profileRepo, s.teamRepo, userID)
	if err != nil {
		return match.Match{}, err
	}

	current, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	next, err := current.Dispute(member.team.ID, s.now())
	if err != nil {
		return match.Match{}, mapMatchError(err)
	}
	if err := s.matchRepo.Transition(ctx, next, current.Status, current.Version); err != nil {
		return match.Match{}, s.transitionFailed(ctx, "dispute", current, userID, err)
	}

	s.logger.WarnContext(ctx, "match disputed", "match_id", next.ID, "disputing_team_id", member.team.ID)
	return next, nil
}

// Get returns a match. viewerUserID may be empty for anonymous callers.
func (s *MatchService) Get(ctx context.Context, viewerUserID, matchID string) (MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get", attribute.String("match.id", matchID))
	defer span.End()

	m, err := s.getMatch(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}

	viewerTeamID := ""
	if viewerUserID = strings.TrimSpace(viewerUserID); viewerUserID != "" {
		p, exists, err := s.profileRepo.GetByUserID(ctx, viewerUserID)
		if err != nil {
			return MatchView{}, fmt.Errorf("get viewer profile: %w", err)
		}
		if exists {
			viewerTeamID = p.TeamID
		}
	}

	views, err := s.attachTeams(ctx, []match.Match{m}, viewerTeamID, nil)
	if err != nil {
		return MatchView{}, err
	}
	return views[0], nil
}

// ListOpen returns the open board ordered by scheduled time.
func (s *MatchService) ListOpen(ctx context.Context, query OpenMatchQuery) ([]MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListOpen")
	defer span.End()

	targetTier, err := parseTargetTier(query.TargetTier)
	if err != nil {
		return nil, err
	}
	filter := match.OpenFilter{TargetTier: targetTier}

	var known map[string]team.Team
	regionFilter := team.Filter{
		RegionDepth1: strings.TrimSpace(query.RegionDepth1),
		RegionDepth2: strings.TrimSpace(query.RegionDepth2),
	}
	if !regionFilter.IsZero() {
		teams, err := s.teamRepo.List(ctx, regionFilter)
		if err != nil {
			return nil, fmt.Errorf("list teams in region: %w", err)
		}
		if len(teams) == 0 {
			return []MatchView{}, nil
		}
		known = make(map[string]team.Team, len(teams))
		filter.RestrictHosts = true
		for _, t := range teams {
			filter.HostTeamIDs = append(filter.HostTeamIDs, t.ID)
			known[t.ID] = t
		}
	}

	matches, err := s.matchRepo.ListOpen(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list open matches: %w", err)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].ScheduledAt.Before(matches[j].ScheduledAt)
	})
	return s.attachTeams(ctx, matches, "", known)
}

// ListMine returns the caller's team matches, newest schedule first. Callers
// without a team get an empty list.
func (s *MatchService) ListMine(ctx context.Context, userID string) ([]MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMine")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	p, exists, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !exists || !p.HasTeam() {
		return []MatchView{}, nil
	}

	matches, err := s.matchRepo.ListByTeam(ctx, p.TeamID)
	if err != nil {
		return nil, fmt.Errorf("list team matches: %w", err)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].ScheduledAt.After(matches[j].ScheduledAt)
	})
	return s.attachTeams(ctx, matches, p.TeamID, nil)
}

func (s *MatchService) getMatch(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return m, nil
}

func (s *MatchService) attachTeams(ctx context.Context, matches []match.Match, viewerTeamID string, known map[string]team.Team) ([]MatchView, error) {
	if known == nil {
		known = make(map[string]team.Team)
	}
	lookup := func(teamID string) (team.Team, error) {
		if t, ok := known[teamID]; ok {
			return t, nil
		}
		t, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return team.Team{}, fmt.Errorf("get team %s: %w", teamID, err)
		}
		if !exists {
			t = team.Team{ID: teamID}
		}
		known[teamID] = t
		return t, nil
	}

	out := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		host, err := lookup(m.HostTeamID)
		if err != nil {
			return nil, err
		}
		view := MatchView{Match: m, Host: host}
		if m.ChallengerTeamID != "" {
			challenger, err := lookup(m.ChallengerTeamID)
			if err != nil {
				return nil, err
			}
			view.Challenger = &challenger
		}
		out = append(out, redactContacts(view, viewerTeamID))
	}
	return out, nil
}

// redactContacts hides contact links from everyone except the paired
// opponent. A team always sees its own link.
func redactContacts(view MatchView, viewerTeamID string) MatchView {
	paired := view.Match.Status.Paired() && view.Match.IsParticipant(viewerTeamID)
	if !paired && view.Host.ID != viewerTeamID {
		view.Host.ContactLink = ""
	}
	if view.Challenger != nil && !paired && view.Challenger.ID != viewerTeamID {
		challenger := *view.Challenger
		challenger.ContactLink = ""
		view.Challenger = &challenger
	}
	return view
}

func (s *MatchService) transitionFailed(ctx context.Context, action string, current match.Match, userID string, err error) error {
	if errors.Is(err, match.ErrStale) {
		s.logger.WarnContext(ctx, "match transition lost race",
			"action", action,
			"match_id", current.ID,
			"user_id", userID,
			"expected_status", string(current.Status),
			"expected_version", current.Version,
		)
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return fmt.Errorf("%s match: %w", action, err)
}

func mapMatchError(err error) error {
	switch {
	case isAny(err, match.ErrInvalidTransition, match.ErrStale):
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	case errors.Is(err, match.ErrSelfChallenge):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case isAny(err, match.ErrNotParticipant, match.ErrClaimantCannotRespond, match.ErrNotHost):
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	}
	return err
}

func parseTargetTier(raw string) (profile.Tier, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, targetTierAll) {
		return "", nil
	}
	tier, ok := profile.ParseTier(raw)
	if !ok {
		return "", fmt.Errorf("%w: unknown target tier %q", ErrInvalidInput, raw)
	}
	return tier, nil
}
