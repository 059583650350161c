package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID            int64           `db:"id"`
	PublicID      string          `db:"public_id"`
	Name          string          `db:"name"`
	RegionDepth1  string          `db:"region_depth1"`
	RegionDepth2  string          `db:"region_depth2"`
	RegionDepth3  sql.NullString  `db:"region_depth3"`
	CaptainUserID string          `db:"captain_user_id"`
	ContactLink   string          `db:"contact_link"`
	InviteCode    string          `db:"invite_code"`
	AvgTierScore  sql.NullFloat64 `db:"avg_tier_score"`
	WinCount      int             `db:"win_count"`
	LossCount     int             `db:"loss_count"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
	DeletedAt     *time.Time      `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID      string    `db:"public_id"`
	Name          string    `db:"name"`
	RegionDepth1  string    `db:"region_depth1"`
	RegionDepth2  string    `db:"region_depth2"`
	RegionDepth3  *string   `db:"region_depth3"`
	CaptainUserID string    `db:"captain_user_id"`
	ContactLink   string    `db:"contact_link"`
	InviteCode    string    `db:"invite_code"`
	AvgTierScore  *float64  `db:"avg_tier_score"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
