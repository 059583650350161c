package profile

import (
	"errors"
	"fmt"
	"time"
)

var ErrPUUIDTaken = errors.New("riot account is linked to another profile")

// Profile is the per-user record: team membership, position and the linked
// Riot account once verification completes.
type Profile struct {
	UserID       string
	TeamID       string
	Position     Position
	Account      *RiotAccount
	Verification Verification
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p Profile) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("profile user id is required")
	}
	if p.Position != "" && !p.Position.Valid() {
		return fmt.Errorf("unknown position %q", p.Position)
	}
	if p.Verification.IsVerified() && (p.Account == nil || p.Account.PUUID == "") {
		return fmt.Errorf("verified profile must carry a riot account")
	}
	return nil
}

func (p Profile) IsVerified() bool {
	return p.Verification.IsVerified() && p.Account != nil && p.Account.PUUID != ""
}

func (p Profile) HasTeam() bool {
	return p.TeamID != ""
}

func (p Profile) Ranked() *RankedStanding {
	if p.Account == nil {
		return nil
	}
	return p.Account.Ranked
}
