package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/arena-scrim/internal/domain/match"
	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	qb "github.com/riskibarqy/arena-scrim/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	insertModel := matchInsertModel{
		PublicID:         m.ID,
		HostTeamPublicID: m.HostTeamID,
		Status:           string(m.Status),
		ScheduledAt:      m.ScheduledAt,
		TargetTier:       optionalString(string(m.TargetTier)),
		Version:          m.Version,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	query, args, err := qb.InsertModel("matches", insertModel)
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("public_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListOpen(ctx context.Context, filter match.OpenFilter) ([]match.Match, error) {
	conds := []qb.Condition{qb.Eq("status", string(match.StatusOpen))}
	if filter.RestrictHosts {
		conds = append(conds, qb.InStrings("host_team_public_id", filter.HostTeamIDs))
	}
	if filter.TargetTier != "" {
		conds = append(conds, qb.Eq("target_tier", string(filter.TargetTier)))
	}

	query, args, err := qb.Select("*").From("matches").
		Where(conds...).
		OrderBy("scheduled_at ASC", "public_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list open matches query: %w", err)
	}
	return r.selectMatches(ctx, "list open matches", query, args)
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.EqAny(teamID, "host_team_public_id", "challenger_team_public_id")).
		OrderBy("scheduled_at DESC", "public_id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by team query: %w", err)
	}
	return r.selectMatches(ctx, "list matches by team", query, args)
}

func (r *MatchRepository) selectMatches(ctx context.Context, op, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) Transition(ctx context.Context, next match.Match, expectedStatus match.Status, expectedVersion int64) error {
	return transitionMatch(ctx, r.db, next, expectedStatus, expectedVersion)
}

// Complete moves the match to COMPLETED and bumps both team counters in one
// transaction.
func (r *MatchRepository) Complete(ctx context.Context, next match.Match, expectedVersion int64, winnerTeamID, loserTeamID string) error {
	return withTx(ctx, r.db, "complete match", func(tx *sqlx.Tx) error {
		if err := transitionMatch(ctx, tx, next, match.StatusPendingResult, expectedVersion); err != nil {
			return err
		}
		if err := bumpTeamCounter(ctx, tx, winnerTeamID, "win_count"); err != nil {
			return err
		}
		return bumpTeamCounter(ctx, tx, loserTeamID, "loss_count")
	})
}

func (r *MatchRepository) DeleteOpen(ctx context.Context, matchID, hostTeamID string) error {
	query, args, err := qb.DeleteFrom("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.Eq("host_team_public_id", hostTeamID),
			qb.Eq("status", string(match.StatusOpen)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete open match query: %w", err)
	}
	affected, err := execAffected(ctx, r.db, query, args...)
	if err != nil {
		return fmt.Errorf("delete open match: %w", err)
	}
	if affected == 0 {
		return match.ErrStale
	}
	return nil
}

func transitionMatch(ctx context.Context, exec sqlx.ExecerContext, next match.Match, expectedStatus match.Status, expectedVersion int64) error {
	query, args, err := qb.Update("matches").
		Set("status", string(next.Status)).
		Set("challenger_team_public_id", optionalString(next.ChallengerTeamID)).
		Set("winner_team_public_id", optionalString(next.WinnerTeamID)).
		Set("version", next.Version).
		Set("updated_at", next.UpdatedAt).
		Where(
			qb.Eq("public_id", next.ID),
			qb.Eq("status", string(expectedStatus)),
			qb.Eq("version", expectedVersion),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build transition match query: %w", err)
	}

	affected, err := execAffected(ctx, exec, query, args...)
	if err != nil {
		return fmt.Errorf("transition match: %w", err)
	}
	if affected == 0 {
		return match.ErrStale
	}
	return nil
}

func bumpTeamCounter(ctx context.Context, exec sqlx.ExecerContext, teamID, column string) error {
	query, args, err := qb.Update("teams").
		Increment(column).
		SetNow("updated_at").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build bump %s query: %w", column, err)
	}
	affected, err := execAffected(ctx, exec, query, args...)
	if err != nil {
		return fmt.Errorf("bump %s: %w", column, err)
	}
	if affected == 0 {
		return fmt.Errorf("bump %s: team %s not found", column, teamID)
	}
	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:               row.PublicID,
		HostTeamID:       row.HostTeamPublicID,
		ChallengerTeamID: nullStringValue(row.ChallengerTeamPublicID),
		Status:           match.Status(row.Status),
		ScheduledAt:      row.ScheduledAt,
		TargetTier:       profile.Tier(nullStringValue(row.TargetTier)),
		WinnerTeamID:     nullStringValue(row.WinnerTeamPublicID),
		Version:          row.Version,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
