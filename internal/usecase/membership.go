package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	"github.com/riskibarqy/arena-scrim/internal/domain/team"
)

// membership is the caller's profile together with the team it belongs to.
type membership struct {
	profile profile.Profile
	team    team.Team
}

func requireUser(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	return userID, nil
}

// ensureProfile returns the caller's profile, creating an empty one on first
// access.
func ensureProfile(ctx context.Context, repo profile.Repository, userID string, now time.Time) (profile.Profile, error) {
	p, exists, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if exists {
		return p, nil
	}

	p = profile.Profile{
		UserID:       userID,
		Verification: profile.Verification{Stage: profile.StageUnverified},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, p); err != nil {
		// Lost a first-access race; the row exists now.
		existing, exists, getErr := repo.GetByUserID(ctx, userID)
		if getErr == nil && exists {
			return existing, nil
		}
		return profile.Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// loadMembership resolves the caller's team. Callers without a team get
// ErrForbidden.
func loadMembership(ctx context.Context, profiles profile.Repository, teams team.Repository, userID string) (membership, error) {
	p, exists, err := profiles.GetByUserID(ctx, userID)
	if err != nil {
		return membership{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists || !p.HasTeam() {
		return membership{}, fmt.Errorf("%w: user=%s has no team", ErrForbidden, userID)
	}

	t, exists, err := teams.GetByID(ctx, p.TeamID)
	if err != nil {
		return membership{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return membership{}, fmt.Errorf("%w: team=%s", ErrNotFound, p.TeamID)
	}
	return membership{profile: p, team: t}, nil
}

func (m membership) requireCaptain() error {
	if !m.team.IsCaptain(m.profile.UserID) {
		return fmt.Errorf("%w: user=%s is not captain of team=%s", ErrForbidden, m.profile.UserID, m.team.ID)
	}
	return nil
}

// recomputeAvgTierScore derives a team's average tier from the stored
// standings of its verified members.
func recomputeAvgTierScore(ctx context.Context, profiles profile.Repository, teams team.Repository, teamID string) (*float64, error) {
	members, err := profiles.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	standings := make([]*profile.RankedStanding, 0, len(members))
	for _, m := range members {
		if m.IsVerified() {
			standings = append(standings, m.Ranked())
		}
	}
	score := profile.TierScore(standings)
	if err := teams.UpdateAvgTierScore(ctx, teamID, score); err != nil {
		return nil, fmt.Errorf("update avg tier score: %w", err)
	}
	return score, nil
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
