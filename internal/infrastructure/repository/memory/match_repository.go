package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/arena-scrim/internal/domain/match"
)

// MatchRepository keeps matches in memory. It shares the team repository so
// completion can update both teams under the same critical section.
type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
	teams *TeamRepository
}

func NewMatchRepository(teams *TeamRepository, seed ...match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(seed))
	for _, m := range seed {
		items[m.ID] = m
	}
	return &MatchRepository{items: items, teams: teams}
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[m.ID]; exists {
		return fmt.Errorf("match %s already exists", m.ID)
	}
	r.items[m.ID] = m
	return nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	return m, ok, nil
}

func (r *MatchRepository) ListOpen(_ context.Context, filter match.OpenFilter) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.items {
		if filter.Matches(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (r *MatchRepository) ListByTeam(_ context.Context, teamID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.items {
		if m.IsParticipant(teamID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.After(out[j].ScheduledAt) })
	return out, nil
}

func (r *MatchRepository) Transition(_ context.Context, next match.Match, expectedStatus match.Status, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkLocked(next.ID, expectedStatus, expectedVersion); err != nil {
		return err
	}
	r.items[next.ID] = next
	return nil
}

func (r *MatchRepository) Complete(_ context.Context, next match.Match, expectedVersion int64, winnerTeamID, loserTeamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkLocked(next.ID, match.StatusPendingResult, expectedVersion); err != nil {
		return err
	}
	if r.teams != nil {
		if err := r.teams.recordResult(winnerTeamID, loserTeamID); err != nil {
			return err
		}
	}
	r.items[next.ID] = next
	return nil
}

func (r *MatchRepository) DeleteOpen(_ context.Context, matchID, hostTeamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[matchID]
	if !ok || m.Status != match.StatusOpen || m.HostTeamID != hostTeamID {
		return match.ErrStale
	}
	delete(r.items, matchID)
	return nil
}

func (r *MatchRepository) checkLocked(matchID string, expectedStatus match.Status, expectedVersion int64) error {
	current, ok := r.items[matchID]
	if !ok || current.Status != expectedStatus || current.Version != expectedVersion {
		return match.ErrStale
	}
	return nil
}
