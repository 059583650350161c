package httpapi

import (
	"net/http"

	"github.com/riskibarqy/arena-scrim/internal/domain/team"
	"github.com/riskibarqy/arena-scrim/internal/usecase"
)

var (
	teamFoundingMessages = errorMessages{
		usecase.ErrForbidden: messageVerificationRequired,
		usecase.ErrConflict:  messageAlreadyInTeam,
	}
	teamJoinMessages = errorMessages{
		usecase.ErrNotFound:  messageInvalidInviteCode,
		usecase.ErrForbidden: messageVerificationRequired,
		usecase.ErrConflict:  messageAlreadyInTeam,
	}
	teamCaptainMessages = errorMessages{
		usecase.ErrForbidden: messageCaptainOnly,
	}
	teamLeaveMessages = errorMessages{
		usecase.ErrForbidden:    messageCaptainCannotLeave,
		usecase.ErrInvalidState: messageTeamRequired,
	}
	teamMembershipMessages = errorMessages{
		usecase.ErrNotFound: messageTeamRequired,
	}
)

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createTeamRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.Create(ctx, usecase.CreateTeamInput{
		UserID: userID,
		Name:   req.Name,
		Region: team.Region{
			Depth1: req.RegionDepth1,
			Depth2: req.RegionDepth2,
			Depth3: req.RegionDepth3,
		},
		ContactLink: req.ContactLink,
	})
	if err != nil {
		h.fail(ctx, w, "create team failed", err, teamFoundingMessages, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created, true))
}

func (h *Handler) UpdateTeamContactLink(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeamContactLink")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateContactLinkRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.teamService.UpdateContactLink(ctx, userID, req.ContactLink)
	if err != nil {
		h.fail(ctx, w, "update contact link failed", err, teamCaptainMessages, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(updated, true))
}

func (h *Handler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinTeam")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req joinTeamRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	joined, err := h.teamService.JoinByInviteCode(ctx, userID, req.InviteCode)
	if err != nil {
		h.fail(ctx, w, "join team failed", err, teamJoinMessages, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(joined, true))
}

func (h *Handler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveTeam")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.teamService.Leave(ctx, userID); err != nil {
		h.fail(ctx, w, "leave team failed", err, teamLeaveMessages, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"left": true})
}

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.teamService.GetMyTeam(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "get my team failed", err, teamMembershipMessages, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(roster))
}

func (h *Handler) RefreshTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshTeamRoster")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.teamService.RefreshRoster(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "refresh roster failed", err, teamCaptainMessages, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterRefreshDTO{
		Refreshed:    result.Refreshed,
		Failed:       result.Failed,
		Skipped:      result.Skipped,
		AvgTierScore: result.AvgTierScore,
	})
}
