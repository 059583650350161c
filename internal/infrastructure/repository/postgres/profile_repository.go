package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	qb "github.com/riskibarqy/arena-scrim/internal/platform/querybuilder"
)

const profileVerifiedPUUIDConstraint = "uq_profiles_verified_puuid"

var verificationJSON = jsoniter.ConfigCompatibleWithStandardLibrary

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, item profile.Profile) error {
	state, err := encodeVerification(item.Verification)
	if err != nil {
		return err
	}
	insertModel := profileInsertModel{
		UserID:            item.UserID,
		TeamPublicID:      optionalString(item.TeamID),
		MainPosition:      optionalString(string(item.Position)),
		VerificationState: state,
		IsVerified:        item.Verification.IsVerified(),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
	query, args, err := qb.InsertModel("profiles", insertModel)
	if err != nil {
		return fmt.Errorf("build insert profile query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	return r.getOne(ctx, "get profile by user id", qb.Eq("user_id", userID))
}

func (r *ProfileRepository) GetByPUUID(ctx context.Context, puuid string) (profile.Profile, bool, error) {
	return r.getOne(ctx, "get profile by puuid", qb.Eq("riot_puuid", puuid), qb.Eq("is_verified", true))
}

func (r *ProfileRepository) getOne(ctx context.Context, op string, conds ...qb.Condition) (profile.Profile, bool, error) {
	query, args, err := qb.Select("*").From("profiles").Where(conds...).Limit(1).ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("%s: %w", op, err)
	}

	item, err := profileFromRow(row)
	if err != nil {
		return profile.Profile{}, false, err
	}
	return item, true, nil
}

func (r *ProfileRepository) ListByTeam(ctx context.Context, teamID string) ([]profile.Profile, error) {
	query, args, err := qb.Select("*").From("profiles").
		Where(qb.Eq("team_public_id", teamID)).
		OrderBy("created_at", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list profiles by team query: %w", err)
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list profiles by team: %w", err)
	}

	out := make([]profile.Profile, 0, len(rows))
	for _, row := range rows {
		item, err := profileFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *ProfileRepository) SaveVerification(ctx context.Context, userID string, state profile.Verification) error {
	raw, err := encodeVerification(state)
	if err != nil {
		return err
	}
	query, args, err := qb.Update("profiles").
		Set("verification_state", raw).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build save verification query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save verification: %w", err)
	}
	return nil
}

func (r *ProfileRepository) CompleteVerification(ctx context.Context, userID string, account profile.RiotAccount, state profile.Verification) error {
	raw, err := encodeVerification(state)
	if err != nil {
		return err
	}

	update := qb.Update("profiles").
		Set("riot_puuid", account.PUUID).
		Set("riot_game_name", account.GameName).
		Set("riot_tag_line", account.TagLine).
		Set("riot_region", account.Region).
		Set("summoner_level", optionalInt(account.Level, account.Level > 0)).
		Set("verification_state", raw).
		Set("is_verified", state.IsVerified()).
		Set("updated_at", time.Now().UTC())
	update = setRanked(update, account.Ranked)

	query, args, err := update.Where(qb.Eq("user_id", userID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build complete verification query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, profileVerifiedPUUIDConstraint) {
			return profile.ErrPUUIDTaken
		}
		return fmt.Errorf("complete verification: %w", err)
	}
	return nil
}

func (r *ProfileRepository) UpdateRanked(ctx context.Context, userID string, level int, ranked *profile.RankedStanding) error {
	update := qb.Update("profiles").
		Set("summoner_level", optionalInt(level, level > 0)).
		Set("updated_at", time.Now().UTC())
	update = setRanked(update, ranked)

	query, args, err := update.Where(qb.Eq("user_id", userID), qb.NotNull("riot_puuid")).ToSQL()
	if err != nil {
		return fmt.Errorf("build update ranked query: %w", err)
	}
	affected, err := execAffected(ctx, r.db, query, args...)
	if err != nil {
		return fmt.Errorf("update ranked: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update ranked: profile %s has no riot account", userID)
	}
	return nil
}

func (r *ProfileRepository) AssignTeam(ctx context.Context, userID, teamID string) (bool, error) {
	query, args, err := qb.Update("profiles").
		Set("team_public_id", teamID).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("user_id", userID), qb.IsNull("team_public_id")).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build assign team query: %w", err)
	}
	affected, err := execAffected(ctx, r.db, query, args...)
	if err != nil {
		return false, fmt.Errorf("assign team: %w", err)
	}
	return affected > 0, nil
}

func (r *ProfileRepository) ClearTeam(ctx context.Context, userID, teamID string) (bool, error) {
	query, args, err := qb.Update("profiles").
		SetNull("team_public_id").
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("user_id", userID), qb.Eq("team_public_id", teamID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build clear team query: %w", err)
	}
	affected, err := execAffected(ctx, r.db, query, args...)
	if err != nil {
		return false, fmt.Errorf("clear team: %w", err)
	}
	return affected > 0, nil
}

func (r *ProfileRepository) UpdatePosition(ctx context.Context, userID string, position profile.Position) error {
	query, args, err := qb.Update("profiles").
		Set("main_position", optionalString(string(position))).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update position query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	return nil
}

func setRanked(update *qb.UpdateBuilder, ranked *profile.RankedStanding) *qb.UpdateBuilder {
	if ranked == nil {
		return update.SetNull("solo_tier", "solo_division", "solo_league_points")
	}
	return update.
		Set("solo_tier", string(ranked.Tier)).
		Set("solo_division", optionalString(string(ranked.Division))).
		Set("solo_league_points", ranked.LeaguePoints)
}

func encodeVerification(state profile.Verification) ([]byte, error) {
	raw, err := verificationJSON.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode verification state: %w", err)
	}
	return raw, nil
}

func profileFromRow(row profileTableModel) (profile.Profile, error) {
	var state profile.Verification
	if len(row.VerificationState) > 0 {
		if err := verificationJSON.Unmarshal(row.VerificationState, &state); err != nil {
			return profile.Profile{}, fmt.Errorf("decode verification state for %s: %w", row.UserID, err)
		}
	}

	item := profile.Profile{
		UserID:       row.UserID,
		TeamID:       nullStringValue(row.TeamPublicID),
		Position:     profile.Position(nullStringValue(row.MainPosition)),
		Verification: state,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.RiotPUUID.Valid {
		account := &profile.RiotAccount{
			PUUID:    row.RiotPUUID.String,
			GameName: nullStringValue(row.RiotGameName),
			TagLine:  nullStringValue(row.RiotTagLine),
			Region:   nullStringValue(row.RiotRegion),
			Level:    int(row.SummonerLevel.Int64),
		}
		if row.SoloTier.Valid {
			account.Ranked = &profile.RankedStanding{
				Tier:         profile.Tier(row.SoloTier.String),
				Division:     profile.Division(nullStringValue(row.SoloDivision)),
				LeaguePoints: int(row.SoloLeaguePoints.Int64),
			}
		}
		item.Account = account
	}
	return item, nil
}
