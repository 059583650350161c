package match

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
)

var (
	ErrInvalidTransition     = errors.New("match is not in the required state")
	ErrNotParticipant        = errors.New("team is not a participant of this match")
	ErrSelfChallenge         = errors.New("team cannot accept its own match")
	ErrClaimantCannotRespond = errors.New("claimed winner cannot confirm or dispute")
	ErrNotHost               = errors.New("only the host team can cancel")
	// ErrStale is returned by repositories when a guarded write matched no row.
	ErrStale = errors.New("match changed concurrently")
)

type Status string

const (
	StatusOpen          Status = "OPEN"
	StatusMatched       Status = "MATCHED"
	StatusPendingResult Status = "PENDING_RESULT"
	StatusCompleted     Status = "COMPLETED"
	StatusDisputed      Status = "DISPUTED"
)

var AllStatuses = []Status{StatusOpen, StatusMatched, StatusPendingResult, StatusCompleted, StatusDisputed}

func (s Status) Label() string {
	switch s {
	case StatusOpen:
		return "대기중"
	case StatusMatched:
		return "매칭됨"
	case StatusPendingResult:
		return "결과 대기"
	case StatusCompleted:
		return "완료"
	case StatusDisputed:
		return "분쟁중"
	}
	return ""
}

func (s Status) Valid() bool {
	return s.Label() != ""
}

// Paired reports whether a challenger is attached in this status.
func (s Status) Paired() bool {
	switch s {
	case StatusMatched, StatusPendingResult, StatusCompleted, StatusDisputed:
		return true
	}
	return false
}

// Claimed reports whether a winner is recorded in this status.
func (s Status) Claimed() bool {
	switch s {
	case StatusPendingResult, StatusCompleted:
		return true
	}
	return false
}

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

func ParseOutcome(raw string) (Outcome, bool) {
	o := Outcome(strings.ToLower(strings.TrimSpace(raw)))
	switch o {
	case OutcomeWin, OutcomeLoss:
		return o, true
	}
	return "", false
}

// Match is a scrim posted by a host team and optionally taken by a challenger.
type Match struct {
	ID               string
	HostTeamID       string
	ChallengerTeamID string
	Status           Status
	ScheduledAt      time.Time
	// TargetTier is empty when the host accepts any tier.
	TargetTier   profile.Tier
	WinnerTeamID string
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func New(id, hostTeamID string, scheduledAt time.Time, targetTier profile.Tier, now time.Time) (Match, error) {
	m := Match{
		ID:          id,
		HostTeamID:  hostTeamID,
		Status:      StatusOpen,
		ScheduledAt: scheduledAt.UTC(),
		TargetTier:  targetTier,
		Version:     1,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := m.Validate(); err != nil {
		return Match{}, err
	}
	return m, nil
}

// Validate checks the structural invariants tying challenger and winner to
// the status.
func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.HostTeamID == "" {
		return fmt.Errorf("match host team is required")
	}
	if !m.Status.Valid() {
		return fmt.Errorf("unknown match status %q", m.Status)
	}
	if m.ScheduledAt.IsZero() {
		return fmt.Errorf("match scheduled time is required")
	}
	if m.TargetTier != "" && !m.TargetTier.Valid() {
		return fmt.Errorf("unknown target tier %q", m.TargetTier)
	}
	if (m.ChallengerTeamID != "") != m.Status.Paired() {
		return fmt.Errorf("challenger presence does not match status %s", m.Status)
	}
	if (m.WinnerTeamID != "") != m.Status.Claimed() {
		return fmt.Errorf("winner presence does not match status %s", m.Status)
	}
	if m.ChallengerTeamID != "" && m.ChallengerTeamID == m.HostTeamID {
		return ErrSelfChallenge
	}
	if m.WinnerTeamID != "" && !m.IsParticipant(m.WinnerTeamID) {
		return fmt.Errorf("winner must be a participant")
	}
	return nil
}

func (m Match) IsParticipant(teamID string) bool {
	if teamID == "" {
		return false
	}
	return teamID == m.HostTeamID || teamID == m.ChallengerTeamID
}

// Opponent returns the other participant, or "" when teamID is not one.
func (m Match) Opponent(teamID string) string {
	switch {
	case teamID == "":
		return ""
	case teamID == m.HostTeamID:
		return m.ChallengerTeamID
	case teamID == m.ChallengerTeamID:
		return m.HostTeamID
	}
	return ""
}

// LoserTeamID is the participant that is not the claimed winner.
func (m Match) LoserTeamID() string {
	if m.WinnerTeamID == "" {
		return ""
	}
	return m.Opponent(m.WinnerTeamID)
}

func (m Match) advance(to Status, now time.Time) Match {
	m.Status = to
	m.UpdatedAt = now.UTC()
	m.Version++
	return m
}

func (m Match) Accept(teamID string, now time.Time) (Match, error) {
	if m.Status != StatusOpen {
		return m, fmt.Errorf("%w: accept requires %s, match is %s", ErrInvalidTransition, StatusOpen, m.Status)
	}
	if teamID == m.HostTeamID {
		return m, ErrSelfChallenge
	}
	next := m.advance(StatusMatched, now)
	next.ChallengerTeamID = teamID
	return next, nil
}

// ReportResult records a claim from either participant. A win names the
// reporter as winner, a loss names the opponent.
func (m Match) ReportResult(teamID string, outcome Outcome, now time.Time) (Match, error) {
	if !m.IsParticipant(teamID) {
		return m, ErrNotParticipant
	}
	if m.Status != StatusMatched {
		return m, fmt.Errorf("%w: report requires %s, match is %s", ErrInvalidTransition, StatusMatched, m.Status)
	}

	winner := teamID
	switch outcome {
	case OutcomeWin:
	case OutcomeLoss:
		winner = m.Opponent(teamID)
	default:
		return m, fmt.Errorf("unknown outcome %q", outcome)
	}

	next := m.advance(StatusPendingResult, now)
	next.WinnerTeamID = winner
	return next, nil
}

func (m Match) respond(teamID string, to Status, now time.Time) (Match, error) {
	if m.Status != StatusPendingResult {
		return m, fmt.Errorf("%w: %s requires %s, match is %s", ErrInvalidTransition, to, StatusPendingResult, m.Status)
	}
	if !m.IsParticipant(teamID) {
		return m, ErrNotParticipant
	}
	if teamID == m.WinnerTeamID {
		return m, ErrClaimantCannotRespond
	}
	next := m.advance(to, now)
	if to == StatusDisputed {
		next.WinnerTeamID = ""
	}
	return next, nil
}

func (m Match) Confirm(teamID string, now time.Time) (Match, error) {
	return m.respond(teamID, StatusCompleted, now)
}

// Dispute clears the claimed winner; DISPUTED has no automated way out.
func (m Match) Dispute(teamID string, now time.Time) (Match, error) {
	return m.respond(teamID, StatusDisputed, now)
}

func (m Match) EnsureCancellable(teamID string) error {
	if teamID != m.HostTeamID {
		return ErrNotHost
	}
	if m.Status != StatusOpen {
		return fmt.Errorf("%w: cancel requires %s, match is %s", ErrInvalidTransition, StatusOpen, m.Status)
	}
	return nil
}

// OpenFilter narrows the open-match board. Empty HostTeamIDs means all
// hosts unless RestrictHosts is set, in which case nothing matches.
type OpenFilter struct {
	HostTeamIDs   []string
	RestrictHosts bool
	TargetTier    profile.Tier
}

func (f OpenFilter) Matches(m Match) bool {
	if m.Status != StatusOpen {
		return false
	}
	if f.RestrictHosts {
		found := false
		for _, id := range f.HostTeamIDs {
			if id == m.HostTeamID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.TargetTier != "" && m.TargetTier != f.TargetTier {
		return false
	}
	return true
}
