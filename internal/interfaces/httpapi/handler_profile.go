package httpapi

import (
	"net/http"

	"github.com/riskibarqy/arena-scrim/internal/usecase"
)

var verificationMessages = errorMessages{
	usecase.ErrNotFound:     messageRiotAccountNotFound,
	usecase.ErrConflict:     messagePUUIDTaken,
	usecase.ErrInvalidState: messageNoRiotAccount,
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyProfile")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.verificationService.GetProfile(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "get profile failed", err, nil, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) SetMyPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMyPosition")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setPositionRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.SetPosition(ctx, userID, req.Position)
	if err != nil {
		h.fail(ctx, w, "set position failed", err, nil, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) InitiateVerification(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InitiateVerification")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req initiateVerificationRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.verificationService.Initiate(ctx, userID, req.RiotID)
	if err != nil {
		h.fail(ctx, w, "initiate verification failed", err, verificationMessages, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, initiateVerificationDTO{
		RiotID:         result.GameName + "#" + result.TagLine,
		RequiredIconID: result.RequiredIconID,
	})
}

func (h *Handler) ConfirmVerification(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmVerification")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.verificationService.Confirm(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "confirm verification failed", err, verificationMessages, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) CancelVerification(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelVerification")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.verificationService.Cancel(ctx, userID); err != nil {
		h.fail(ctx, w, "cancel verification failed", err, nil, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"cancelled": true})
}

func (h *Handler) RefreshVerification(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshVerification")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.verificationService.Refresh(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "refresh riot account failed", err, verificationMessages, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	userID, err := requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dashboard, err := h.dashboardService.Get(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "get dashboard failed", err, nil, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}
