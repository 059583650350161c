package httpapi

import (
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/match"
	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	"github.com/riskibarqy/arena-scrim/internal/domain/ranking"
	"github.com/riskibarqy/arena-scrim/internal/domain/team"
	"github.com/riskibarqy/arena-scrim/internal/usecase"
)

type setPositionRequest struct {
	Position string `json:"position" validate:"required,oneof=TOP JUNGLE MID ADC SUP"`
}

type initiateVerificationRequest struct {
	RiotID string `json:"riot_id" validate:"required,max=64"`
}

type createTeamRequest struct {
	Name         string `json:"name" validate:"required,max=50"`
	RegionDepth1 string `json:"region_depth1" validate:"required,max=30"`
	RegionDepth2 string `json:"region_depth2" validate:"required,max=30"`
	RegionDepth3 string `json:"region_depth3" validate:"omitempty,max=30"`
	ContactLink  string `json:"contact_link" validate:"required,url,max=300"`
}

type updateContactLinkRequest struct {
	ContactLink string `json:"contact_link" validate:"required,url,max=300"`
}

type joinTeamRequest struct {
	InviteCode string `json:"invite_code" validate:"required,max=32"`
}

type createMatchRequest struct {
	ScheduledAt string `json:"scheduled_at" validate:"required"`
	TargetTier  string `json:"target_tier" validate:"omitempty,max=20"`
}

type reportResultRequest struct {
	Outcome string `json:"outcome" validate:"required,max=10"`
}

type rankedDTO struct {
	Tier         string  `json:"tier"`
	TierLabel    string  `json:"tier_label"`
	Division     string  `json:"division,omitempty"`
	LeaguePoints int     `json:"league_points"`
	Display      string  `json:"display"`
	Score        float64 `json:"score"`
}

type riotAccountDTO struct {
	RiotID   string     `json:"riot_id"`
	GameName string     `json:"game_name"`
	TagLine  string     `json:"tag_line"`
	Region   string     `json:"region"`
	Level    int        `json:"level"`
	Ranked   *rankedDTO `json:"ranked"`
}

type verificationDTO struct {
	Stage          string `json:"stage"`
	PendingRiotID  string `json:"pending_riot_id,omitempty"`
	RequiredIconID int    `json:"required_icon_id,omitempty"`
	StartedAtUTC   string `json:"started_at_utc,omitempty"`
	VerifiedAtUTC  string `json:"verified_at_utc,omitempty"`
}

type profileDTO struct {
	UserID        string          `json:"user_id"`
	TeamID        string          `json:"team_id,omitempty"`
	Position      string          `json:"position,omitempty"`
	PositionLabel string          `json:"position_label,omitempty"`
	Verified      bool            `json:"verified"`
	Verification  verificationDTO `json:"verification"`
	RiotAccount   *riotAccountDTO `json:"riot_account"`
}

type initiateVerificationDTO struct {
	RiotID         string `json:"riot_id"`
	RequiredIconID int    `json:"required_icon_id"`
}

type regionDTO struct {
	Depth1 string `json:"depth1"`
	Depth2 string `json:"depth2"`
	Depth3 string `json:"depth3,omitempty"`
}

type teamDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Region        regionDTO `json:"region"`
	CaptainUserID string    `json:"captain_user_id"`
	ContactLink   string    `json:"contact_link,omitempty"`
	InviteCode    string    `json:"invite_code,omitempty"`
	AvgTierScore  *float64  `json:"avg_tier_score"`
	WinCount      int       `json:"win_count"`
	LossCount     int       `json:"loss_count"`
	WinRate       float64   `json:"win_rate"` // percent
	CreatedAtUTC  string    `json:"created_at_utc"`
}

type memberDTO struct {
	UserID        string          `json:"user_id"`
	IsCaptain     bool            `json:"is_captain"`
	Position      string          `json:"position,omitempty"`
	PositionLabel string          `json:"position_label,omitempty"`
	Verified      bool            `json:"verified"`
	RiotAccount   *riotAccountDTO `json:"riot_account"`
}

type teamRosterDTO struct {
	Team    teamDTO     `json:"team"`
	Members []memberDTO `json:"members"`
}

type rosterRefreshDTO struct {
	Refreshed    int      `json:"refreshed"`
	Failed       int      `json:"failed"`
	Skipped      int      `json:"skipped"`
	AvgTierScore *float64 `json:"avg_tier_score"`
}

type matchDTO struct {
	ID             string   `json:"id"`
	Status         string   `json:"status"`
	StatusLabel    string   `json:"status_label"`
	ScheduledAtUTC string   `json:"scheduled_at_utc"`
	TargetTier     string   `json:"target_tier"`
	Host           *teamDTO `json:"host,omitempty"`
	HostTeamID     string   `json:"host_team_id"`
	Challenger     *teamDTO `json:"challenger,omitempty"`
	ChallengerID   string   `json:"challenger_team_id,omitempty"`
	WinnerTeamID   string   `json:"winner_team_id,omitempty"`
	Version        int64    `json:"version"`
	CreatedAtUTC   string   `json:"created_at_utc"`
	UpdatedAtUTC   string   `json:"updated_at_utc"`
}

type acceptMatchDTO struct {
	Match           matchDTO `json:"match"`
	HostContactLink string   `json:"host_contact_link"`
}

type teamRankingDTO struct {
	Rank    int     `json:"rank"`
	Team    teamDTO `json:"team"`
	WinRate float64 `json:"win_rate"`
}

type areaRankingDTO struct {
	Rank         int     `json:"rank"`
	RegionDepth1 string  `json:"region_depth1"`
	RegionDepth2 string  `json:"region_depth2"`
	TeamCount    int     `json:"team_count"`
	TotalWins    int     `json:"total_wins"`
	TotalLosses  int     `json:"total_losses"`
	AvgWinRate   float64 `json:"avg_win_rate"`
}

type dashboardDTO struct {
	Profile          profileDTO `json:"profile"`
	Team             *teamDTO   `json:"team"`
	MemberCount      int        `json:"member_count"`
	TeamRank         int        `json:"team_rank"`
	RecentMatches    []matchDTO `json:"recent_matches"`
	AwaitingResponse int        `json:"awaiting_response"`
}

func formatUTC(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatUTCPointer(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatUTC(*t)
}

func rankedToDTO(r *profile.RankedStanding) *rankedDTO {
	if r == nil {
		return nil
	}
	return &rankedDTO{
		Tier:         string(r.Tier),
		TierLabel:    r.Tier.Label(),
		Division:     string(r.Division),
		LeaguePoints: r.LeaguePoints,
		Display:      r.String(),
		Score:        r.Score(),
	}
}

func riotAccountToDTO(a *profile.RiotAccount) *riotAccountDTO {
	if a == nil {
		return nil
	}
	return &riotAccountDTO{
		RiotID:   a.RiotID().String(),
		GameName: a.GameName,
		TagLine:  a.TagLine,
		Region:   a.Region,
		Level:    a.Level,
		Ranked:   rankedToDTO(a.Ranked),
	}
}

func profileToDTO(p profile.Profile) profileDTO {
	v := p.Verification
	return profileDTO{
		UserID:        p.UserID,
		TeamID:        p.TeamID,
		Position:      string(p.Position),
		PositionLabel: p.Position.Label(),
		Verified:      p.IsVerified(),
		Verification: verificationDTO{
			Stage:          string(v.CurrentStage()),
			PendingRiotID:  v.PendingRiotID,
			RequiredIconID: v.RequiredIconID,
			StartedAtUTC:   formatUTCPointer(v.StartedAt),
			VerifiedAtUTC:  formatUTCPointer(v.VerifiedAt),
		},
		RiotAccount: riotAccountToDTO(p.Account),
	}
}

// teamToDTO hides the invite code unless the caller belongs to the team.
func teamToDTO(t team.Team, includeInviteCode bool) teamDTO {
	out := teamDTO{
		ID:   t.ID,
		Name: t.Name,
		Region: regionDTO{
			Depth1: t.Region.Depth1,
			Depth2: t.Region.Depth2,
			Depth3: t.Region.Depth3,
		},
		CaptainUserID: t.CaptainID,
		ContactLink:   t.ContactLink,
		AvgTierScore:  t.AvgTierScore,
		WinCount:      t.WinCount,
		LossCount:     t.LossCount,
		WinRate:       t.WinRate() * 100,
		CreatedAtUTC:  formatUTC(t.CreatedAt),
	}
	if includeInviteCode {
		out.InviteCode = t.InviteCode
	}
	return out
}

func rosterToDTO(roster usecase.TeamRoster) teamRosterDTO {
	members := make([]memberDTO, 0, len(roster.Members))
	for _, p := range roster.Members {
		members = append(members, memberDTO{
			UserID:        p.UserID,
			IsCaptain:     roster.Team.IsCaptain(p.UserID),
			Position:      string(p.Position),
			PositionLabel: p.Position.Label(),
			Verified:      p.IsVerified(),
			RiotAccount:   riotAccountToDTO(p.Account),
		})
	}
	return teamRosterDTO{
		Team:    teamToDTO(roster.Team, true),
		Members: members,
	}
}

func matchToDTO(m match.Match) matchDTO {
	target := string(m.TargetTier)
	if target == "" {
		target = "ALL"
	}
	return matchDTO{
		ID:             m.ID,
		Status:         string(m.Status),
		StatusLabel:    m.Status.Label(),
		ScheduledAtUTC: formatUTC(m.ScheduledAt),
		TargetTier:     target,
		HostTeamID:     m.HostTeamID,
		ChallengerID:   m.ChallengerTeamID,
		WinnerTeamID:   m.WinnerTeamID,
		Version:        m.Version,
		CreatedAtUTC:   formatUTC(m.CreatedAt),
		UpdatedAtUTC:   formatUTC(m.UpdatedAt),
	}
}

func matchViewToDTO(view usecase.MatchView) matchDTO {
	out := matchToDTO(view.Match)
	host := teamToDTO(view.Host, false)
	out.Host = &host
	if view.Challenger != nil {
		challenger := teamToDTO(*view.Challenger, false)
		out.Challenger = &challenger
	}
	return out
}

func matchViewsToDTO(views []usecase.MatchView) []matchDTO {
	items := make([]matchDTO, 0, len(views))
	for _, view := range views {
		items = append(items, matchViewToDTO(view))
	}
	return items
}

func teamRankingsToDTO(rows []ranking.TeamRanking) []teamRankingDTO {
	items := make([]teamRankingDTO, 0, len(rows))
	for _, row := range rows {
		// Contact links are only exchanged through matches.
		t := teamToDTO(row.Team, false)
		t.ContactLink = ""
		items = append(items, teamRankingDTO{Rank: row.Rank, Team: t, WinRate: row.WinRate})
	}
	return items
}

func areaRankingsToDTO(rows []ranking.AreaRanking) []areaRankingDTO {
	items := make([]areaRankingDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, areaRankingDTO{
			Rank:         row.Rank,
			RegionDepth1: row.RegionDepth1,
			RegionDepth2: row.RegionDepth2,
			TeamCount:    row.TeamCount,
			TotalWins:    row.TotalWins,
			TotalLosses:  row.TotalLosses,
			AvgWinRate:   row.AvgWinRate,
		})
	}
	return items
}

func dashboardToDTO(d usecase.Dashboard) dashboardDTO {
	out := dashboardDTO{
		Profile:          profileToDTO(d.Profile),
		MemberCount:      d.MemberCount,
		TeamRank:         d.TeamRank,
		RecentMatches:    matchViewsToDTO(d.RecentMatches),
		AwaitingResponse: d.AwaitingResponse,
	}
	if d.Team != nil {
		t := teamToDTO(*d.Team, true)
		out.Team = &t
	}
	return out
}
