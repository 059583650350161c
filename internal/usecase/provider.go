package usecase

import (
	"context"

	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
)

// ExternalAccount is what the account provider knows about a Riot ID.
type ExternalAccount struct {
	PUUID         string
	GameName      string
	TagLine       string
	Level         int
	ProfileIconID int
}

// AccountProvider resolves Riot accounts and ranked standings. Implementations
// return errors wrapping ErrNotFound, ErrRateLimited, ErrProviderMisconfigured,
// ErrProviderFailure or ErrDependencyUnavailable.
type AccountProvider interface {
	ResolveAccount(ctx context.Context, id profile.RiotID) (ExternalAccount, error)
	// GetRankedStanding returns nil when the account has no solo-queue placement.
	GetRankedStanding(ctx context.Context, puuid string) (*profile.RankedStanding, error)
}

// ReadModelInvalidator drops cached read models after a state change that
// affects them.
type ReadModelInvalidator interface {
	Invalidate(ctx context.Context)
}
