package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]team.Team
	now   func() time.Time
}

func NewTeamRepository(seed ...team.Team) *TeamRepository {
	items := make(map[string]team.Team, len(seed))
	for _, t := range seed {
		items[t.ID] = cloneTeam(t)
	}
	return &TeamRepository{items: items, now: time.Now}
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[t.ID]; exists {
		return fmt.Errorf("team %s already exists", t.ID)
	}
	for _, existing := range r.items {
		if existing.InviteCode == t.InviteCode {
			return fmt.Errorf("invite code %s already in use", t.InviteCode)
		}
	}
	r.items[t.ID] = cloneTeam(t)
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[teamID]
	if !ok {
		return team.Team{}, false, nil
	}
	return cloneTeam(t), true, nil
}

func (r *TeamRepository) GetByInviteCode(_ context.Context, inviteCode string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.items {
		if t.InviteCode == inviteCode {
			return cloneTeam(t), true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) List(_ context.Context, filter team.Filter) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	for _, t := range r.items {
		if filter.Matches(t) {
			out = append(out, cloneTeam(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TeamRepository) UpdateContactLink(_ context.Context, teamID, captainID, link string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[teamID]
	if !ok || t.CaptainID != captainID {
		return false, nil
	}
	t.ContactLink = link
	t.UpdatedAt = r.now().UTC()
	r.items[teamID] = t
	return true, nil
}

func (r *TeamRepository) UpdateAvgTierScore(_ context.Context, teamID string, score *float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[teamID]
	if !ok {
		return nil
	}
	t.AvgTierScore = cloneFloat(score)
	t.UpdatedAt = r.now().UTC()
	r.items[teamID] = t
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, teamID)
	return nil
}

// recordResult bumps both counters or neither.
func (r *TeamRepository) recordResult(winnerID, loserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	winner, ok := r.items[winnerID]
	if !ok {
		return fmt.Errorf("winner team %s not found", winnerID)
	}
	loser, ok := r.items[loserID]
	if !ok {
		return fmt.Errorf("loser team %s not found", loserID)
	}

	now := r.now().UTC()
	winner.WinCount++
	winner.UpdatedAt = now
	loser.LossCount++
	loser.UpdatedAt = now
	r.items[winnerID] = winner
	r.items[loserID] = loser
	return nil
}

func cloneTeam(t team.Team) team.Team {
	copied := t
	copied.AvgTierScore = cloneFloat(t.AvgTierScore)
	return copied
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
