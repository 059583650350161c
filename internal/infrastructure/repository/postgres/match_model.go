package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID                     int64          `db:"id"`
	PublicID               string         `db:"public_id"`
	HostTeamPublicID       string         `db:"host_team_public_id"`
	ChallengerTeamPublicID sql.NullString `db:"challenger_team_public_id"`
	Status                 string         `db:"status"`
	ScheduledAt            time.Time      `db:"scheduled_at"`
	TargetTier             sql.NullString `db:"target_tier"`
	WinnerTeamPublicID     sql.NullString `db:"winner_team_public_id"`
	Version                int64          `db:"version"`
	CreatedAt              time.Time      `db:"created_at"`
	UpdatedAt              time.Time      `db:"updated_at"`
}

type matchInsertModel struct {
	PublicID         string    `db:"public_id"`
	HostTeamPublicID string    `db:"host_team_public_id"`
	Status           string    `db:"status"`
	ScheduledAt      time.Time `db:"scheduled_at"`
	TargetTier       *string   `db:"target_tier"`
	Version          int64     `db:"version"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
