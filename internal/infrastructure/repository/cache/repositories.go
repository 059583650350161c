package cache

import (
	"context"

	"github.com/riskibarqy/arena-scrim/internal/domain/team"
	basecache "github.com/riskibarqy/arena-scrim/internal/platform/cache"
)

// TeamRepository serves team reads from the shared store. Writes go straight
// to the wrapped repository and drop the whole team keyspace, since a single
// team shows up under its id, its invite code and every list filter.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := basecache.KeyspaceTeam.Key("id", teamID)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedTeam, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return cachedTeam{}, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cloneTeam(cached.value), cached.exists, nil
}

// GetByInviteCode is not cached; a stale miss here would let a join race a
// freshly created team.
func (r *TeamRepository) GetByInviteCode(ctx context.Context, inviteCode string) (team.Team, bool, error) {
	return r.next.GetByInviteCode(ctx, inviteCode)
}

func (r *TeamRepository) List(ctx context.Context, filter team.Filter) ([]team.Team, error) {
	key := basecache.KeyspaceTeam.Key("list", filter.RegionDepth1, filter.RegionDepth2)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return cloneTeams(items), nil
	})
	if err != nil {
		return nil, err
	}
	return cloneTeams(items), nil
}

func (r *TeamRepository) UpdateContactLink(ctx context.Context, teamID, captainID, link string) (bool, error) {
	updated, err := r.next.UpdateContactLink(ctx, teamID, captainID, link)
	if err != nil {
		return false, err
	}
	if updated {
		r.invalidate(ctx)
	}
	return updated, nil
}

func (r *TeamRepository) UpdateAvgTierScore(ctx context.Context, teamID string, score *float64) error {
	if err := r.next.UpdateAvgTierScore(ctx, teamID, score); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	if err := r.next.Delete(ctx, teamID); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *TeamRepository) invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	r.cache.Invalidate(ctx, basecache.KeyspaceTeam, basecache.KeyspaceRanking)
}

type cachedTeam struct {
	value  team.Team
	exists bool
}

func cloneTeams(items []team.Team) []team.Team {
	out := make([]team.Team, len(items))
	for i, item := range items {
		out[i] = cloneTeam(item)
	}
	return out
}

func cloneTeam(item team.Team) team.Team {
	if item.AvgTierScore != nil {
		score := *item.AvgTierScore
		item.AvgTierScore = &score
	}
	return item
}
