package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
	"github.com/riskibarqy/arena-scrim/internal/usecase"
)

const maxRequestBodyBytes = 64 << 10

type Handler struct {
	verificationService *usecase.VerificationService
	teamService         *usecase.TeamService
	matchService        *usecase.MatchService
	rankingService      *usecase.RankingService
	dashboardService    *usecase.DashboardService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	verificationService *usecase.VerificationService,
	teamService *usecase.TeamService,
	matchService *usecase.MatchService,
	rankingService *usecase.RankingService,
	dashboardService *usecase.DashboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		verificationService: verificationService,
		teamService:         teamService,
		matchService:        matchService,
		rankingService:      rankingService,
		dashboardService:    dashboardService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
func (h *Handler) decodeAndValidate(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func requirePrincipalID(ctx context.Context) (string, error) {
	principal, ok := principalFromContext(ctx)
	if !ok || !principal.Authenticated() {
		return "", fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal.UserID, nil
}

// viewerID is empty for anonymous callers.
func viewerID(ctx context.Context) string {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return ""
	}
	return principal.UserID
}

// fail logs a rejected action and renders the error.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, overrides errorMessages, args ...any) {
	args = append(args, "error", err)
	if mapError(ctx, err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err, overrides)
}
