package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]profile.Profile
	now   func() time.Time
}

func NewProfileRepository(seed ...profile.Profile) *ProfileRepository {
	items := make(map[string]profile.Profile, len(seed))
	for _, p := range seed {
		items[p.UserID] = cloneProfile(p)
	}
	return &ProfileRepository{items: items, now: time.Now}
}

func (r *ProfileRepository) Create(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.UserID]; exists {
		return fmt.Errorf("profile %s already exists", p.UserID)
	}
	r.items[p.UserID] = cloneProfile(p)
	return nil
}

func (r *ProfileRepository) GetByUserID(_ context.Context, userID string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[userID]
	if !ok {
		return profile.Profile{}, false, nil
	}
	return cloneProfile(p), true, nil
}

// GetByPUUID only considers verified links.
func (r *ProfileRepository) GetByPUUID(_ context.Context, puuid string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if p.IsVerified() && p.Account.PUUID == puuid {
			return cloneProfile(p), true, nil
		}
	}
	return profile.Profile{}, false, nil
}

func (r *ProfileRepository) ListByTeam(_ context.Context, teamID string) ([]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profile.Profile, 0)
	for _, p := range r.items {
		if teamID != "" && p.TeamID == teamID {
			out = append(out, cloneProfile(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *ProfileRepository) SaveVerification(_ context.Context, userID string, state profile.Verification) error {
	return r.update(userID, func(p *profile.Profile) error {
		p.Verification = cloneVerification(state)
		return nil
	})
}

func (r *ProfileRepository) CompleteVerification(_ context.Context, userID string, account profile.RiotAccount, state profile.Verification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, other := range r.items {
		if id != userID && other.IsVerified() && other.Account.PUUID == account.PUUID {
			return profile.ErrPUUIDTaken
		}
	}
	return r.updateLocked(userID, func(p *profile.Profile) error {
		p.Account = cloneAccount(&account)
		p.Verification = cloneVerification(state)
		return nil
	})
}

func (r *ProfileRepository) UpdateRanked(_ context.Context, userID string, level int, ranked *profile.RankedStanding) error {
	return r.update(userID, func(p *profile.Profile) error {
		if p.Account == nil {
			return fmt.Errorf("profile %s has no linked account", userID)
		}
		p.Account.Level = level
		p.Account.Ranked = cloneRanked(ranked)
		return nil
	})
}

func (r *ProfileRepository) AssignTeam(_ context.Context, userID, teamID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[userID]
	if !ok || p.TeamID != "" {
		return false, nil
	}
	p.TeamID = teamID
	p.UpdatedAt = r.now().UTC()
	r.items[userID] = p
	return true, nil
}

func (r *ProfileRepository) ClearTeam(_ context.Context, userID, teamID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[userID]
	if !ok || p.TeamID != teamID {
		return false, nil
	}
	p.TeamID = ""
	p.UpdatedAt = r.now().UTC()
	r.items[userID] = p
	return true, nil
}

func (r *ProfileRepository) UpdatePosition(_ context.Context, userID string, position profile.Position) error {
	return r.update(userID, func(p *profile.Profile) error {
		p.Position = position
		return nil
	})
}

func (r *ProfileRepository) update(userID string, fn func(p *profile.Profile) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(userID, fn)
}

func (r *ProfileRepository) updateLocked(userID string, fn func(p *profile.Profile) error) error {
	p, ok := r.items[userID]
	if !ok {
		return fmt.Errorf("profile %s not found", userID)
	}
	if err := fn(&p); err != nil {
		return err
	}
	p.UpdatedAt = r.now().UTC()
	r.items[userID] = p
	return nil
}

func cloneProfile(p profile.Profile) profile.Profile {
	copied := p
	copied.Account = cloneAccount(p.Account)
	copied.Verification = cloneVerification(p.Verification)
	return copied
}

func cloneAccount(a *profile.RiotAccount) *profile.RiotAccount {
	if a == nil {
		return nil
	}
	copied := *a
	copied.Ranked = cloneRanked(a.Ranked)
	return &copied
}

func cloneRanked(r *profile.RankedStanding) *profile.RankedStanding {
	if r == nil {
		return nil
	}
	copied := *r
	return &copied
}

func cloneVerification(v profile.Verification) profile.Verification {
	copied := v
	copied.StartedAt = cloneTime(v.StartedAt)
	copied.VerifiedAt = cloneTime(v.VerifiedAt)
	return copied
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}
