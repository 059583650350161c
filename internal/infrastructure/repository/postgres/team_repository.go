package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/arena-scrim/internal/domain/team"
	qb "github.com/riskibarqy/arena-scrim/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	insertModel := teamInsertModel{
		PublicID:      item.ID,
		Name:          item.Name,
		RegionDepth1:  item.Region.Depth1,
		RegionDepth2:  item.Region.Depth2,
		RegionDepth3:  optionalString(item.Region.Depth3),
		CaptainUserID: item.CaptainID,
		ContactLink:   item.ContactLink,
		InviteCode:    item.InviteCode,
		AvgTierScore:  item.AvgTierScore,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
	query, args, err := qb.InsertModel("teams", insertModel)
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return r.getOne(ctx, "get team by id", qb.Eq("public_id", teamID))
}

func (r *TeamRepository) GetByInviteCode(ctx context.Context, inviteCode string) (team.Team, bool, error) {
	return r.getOne(ctx, "get team by invite code", qb.Eq("invite_code", inviteCode))
}

func (r *TeamRepository) getOne(ctx context.Context, op string, cond qb.Condition) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(cond, qb.IsNull("deleted_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) List(ctx context.Context, filter team.Filter) ([]team.Team, error) {
	conds := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.RegionDepth1 != "" {
		conds = append(conds, qb.Eq("region_depth1", filter.RegionDepth1))
	}
	if filter.RegionDepth2 != "" {
		conds = append(conds, qb.Eq("region_depth2", filter.RegionDepth2))
	}

	query, args, err := qb.Select("*").From("teams").
		Where(conds...).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) UpdateContactLink(ctx context.Context, teamID, captainID, link string) (bool, error) {
	query, args, err := qb.Update("teams").
		Set("contact_link", link).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("public_id", teamID),
			qb.Eq("captain_user_id", captainID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update contact link query: %w", err)
	}

	affected, err := execAffected(ctx, r.db, query, args...)
	if err != nil {
		return false, fmt.Errorf("update contact link: %w", err)
	}
	return affected > 0, nil
}

func (r *TeamRepository) UpdateAvgTierScore(ctx context.Context, teamID string, score *float64) error {
	query, args, err := qb.Update("teams").
		Set("avg_tier_score", score).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("public_id", teamID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update avg tier score query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update avg tier score: %w", err)
	}
	return nil
}

// Delete soft-deletes the team so its invite code becomes reusable.
func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	query, args, err := qb.Update("teams").
		SetNow("deleted_at").
		Where(qb.Eq("public_id", teamID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:   row.PublicID,
		Name: row.Name,
		Region: team.Region{
			Depth1: row.RegionDepth1,
			Depth2: row.RegionDepth2,
			Depth3: nullStringValue(row.RegionDepth3),
		},
		CaptainID:    row.CaptainUserID,
		ContactLink:  row.ContactLink,
		InviteCode:   row.InviteCode,
		AvgTierScore: nullFloatPointer(row.AvgTierScore),
		WinCount:     row.WinCount,
		LossCount:    row.LossCount,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
