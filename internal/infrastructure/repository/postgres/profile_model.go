package postgres

import (
	"database/sql"
	"time"
)

type profileTableModel struct {
	ID                int64          `db:"id"`
	UserID            string         `db:"user_id"`
	TeamPublicID      sql.NullString `db:"team_public_id"`
	MainPosition      sql.NullString `db:"main_position"`
	RiotPUUID         sql.NullString `db:"riot_puuid"`
	RiotGameName      sql.NullString `db:"riot_game_name"`
	RiotTagLine       sql.NullString `db:"riot_tag_line"`
	RiotRegion        sql.NullString `db:"riot_region"`
	SummonerLevel     sql.NullInt64  `db:"summoner_level"`
	SoloTier          sql.NullString `db:"solo_tier"`
	SoloDivision      sql.NullString `db:"solo_division"`
	SoloLeaguePoints  sql.NullInt64  `db:"solo_league_points"`
	VerificationState []byte         `db:"verification_state"`
	IsVerified        bool           `db:"is_verified"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

type profileInsertModel struct {
	UserID            string    `db:"user_id"`
	TeamPublicID      *string   `db:"team_public_id"`
	MainPosition      *string   `db:"main_position"`
	VerificationState []byte    `db:"verification_state"`
	IsVerified        bool      `db:"is_verified"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}
