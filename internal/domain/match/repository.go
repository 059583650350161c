package match

import "context"

// Repository describes match persistence needs from use cases. Guarded writes
// return ErrStale when the stored row no longer has the expected status and
// version.
type Repository interface {
	Create(ctx context.Context, m Match) error
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListOpen(ctx context.Context, filter OpenFilter) ([]Match, error)
	ListByTeam(ctx context.Context, teamID string) ([]Match, error)
	Transition(ctx context.Context, next Match, expectedStatus Status, expectedVersion int64) error
	// Complete applies the transition and both team counters atomically.
	Complete(ctx context.Context, next Match, expectedVersion int64, winnerTeamID, loserTeamID string) error
	DeleteOpen(ctx context.Context, matchID, hostTeamID string) error
}
