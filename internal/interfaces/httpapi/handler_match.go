package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/usecase"
)

var (
	matchCaptainMessages = errorMessages{
		usecase.ErrNotFound:     messageMatchNotFound,
		usecase.ErrForbidden:    messageCaptainOnlyMatch,
		usecase.ErrInvalidState: messageMatchUnavailable,
	}
	matchResultMessages = errorMessages{
		usecase.ErrNotFound:     messageMatchNotFound,
		usecase.ErrForbidden:    messageTeamRequired,
		usecase.ErrInvalidState: messageCannotReport,
	}
	matchReadMessages = errorMessages{
		usecase.ErrNotFound: messageMatchNotFound,
	}
)

func (h *Handler) ListOpenMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOpenMatches")
	defer span.End()

	query := r.URL.Query()
	views, err := h.matchService.ListOpen(ctx, usecase.OpenMatchQuery{
		RegionDepth1: query.Get("region_depth1"),
		RegionDepth2: query.Get("region_depth2"),
		TargetTier:   query.Get("target_tier"),
	})
	if err != nil {
		h.fail(ctx, w, "list open matches failed", err, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchViewsToDTO(views))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	view, err := h.matchService.Get(ctx, viewerID(ctx), matchID)
	if err != nil {
		h.fail(ctx, w, "get match failed", err, matchReadMessages, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchViewToDTO(view))
}

func (h *Handler) ListMyMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyMatches")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	views, err := h.matchService.ListMine(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "list my matches failed", err, nil, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchViewsToDTO(views))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createMatchRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	scheduledAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.ScheduledAt))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: scheduled_at must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	created, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		UserID:      userID,
		ScheduledAt: scheduledAt,
		TargetTier:  req.TargetTier,
	})
	if err != nil {
		h.fail(ctx, w, "create match failed", err, matchCaptainMessages, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) AcceptMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptMatch")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	result, err := h.matchService.Accept(ctx, userID, matchID)
	if err != nil {
		h.fail(ctx, w, "accept match failed", err, matchCaptainMessages, "user_id", userID, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, acceptMatchDTO{
		Match:           matchToDTO(result.Match),
		HostContactLink: result.HostContactLink,
	})
}

func (h *Handler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelMatch")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	if err := h.matchService.Cancel(ctx, userID, matchID); err != nil {
		h.fail(ctx, w, "cancel match failed", err, matchCaptainMessages, "user_id", userID, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"cancelled": true})
}

func (h *Handler) ReportMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReportMatchResult")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req reportResultRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	updated, err := h.matchService.ReportResult(ctx, userID, matchID, req.Outcome)
	if err != nil {
		h.fail(ctx, w, "report match result failed", err, matchResultMessages, "user_id", userID, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}

func (h *Handler) ConfirmMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmMatchResult")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	updated, err := h.matchService.Confirm(ctx, userID, matchID)
	if err != nil {
		h.fail(ctx, w, "confirm match result failed", err, matchResultMessages, "user_id", userID, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}

func (h *Handler) DisputeMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DisputeMatchResult")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	updated, err := h.matchService.Dispute(ctx, userID, matchID)
	if err != nil {
		h.fail(ctx, w, "dispute match result failed", err, matchResultMessages, "user_id", userID, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}
