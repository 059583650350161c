package profile

import "context"

// Repository describes profile persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, profile Profile) error
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)
	GetByPUUID(ctx context.Context, puuid string) (Profile, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Profile, error)
	SaveVerification(ctx context.Context, userID string, state Verification) error
	// CompleteVerification returns ErrPUUIDTaken when another verified
	// profile already holds the account.
	CompleteVerification(ctx context.Context, userID string, account RiotAccount, state Verification) error
	UpdateRanked(ctx context.Context, userID string, level int, ranked *RankedStanding) error
	// AssignTeam only succeeds for a profile without a team.
	AssignTeam(ctx context.Context, userID, teamID string) (bool, error)
	ClearTeam(ctx context.Context, userID, teamID string) (bool, error)
	UpdatePosition(ctx context.Context, userID string, position Position) error
}
