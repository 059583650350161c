package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, team Team) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (Team, bool, error)
	List(ctx context.Context, filter Filter) ([]Team, error)
	// UpdateContactLink only touches the row when captainID still captains it.
	UpdateContactLink(ctx context.Context, teamID, captainID, link string) (bool, error)
	UpdateAvgTierScore(ctx context.Context, teamID string, score *float64) error
	Delete(ctx context.Context, teamID string) error
}
