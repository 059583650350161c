package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/arena-scrim/internal/domain/team"
)

func (h *Handler) ListTeamRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamRankings")
	defer span.End()

	query := r.URL.Query()
	filter := team.Filter{
		RegionDepth1: strings.TrimSpace(query.Get("region_depth1")),
		RegionDepth2: strings.TrimSpace(query.Get("region_depth2")),
	}
	rows, err := h.rankingService.TeamRankings(ctx, filter)
	if err != nil {
		h.fail(ctx, w, "list team rankings failed", err, nil, "region_depth1", filter.RegionDepth1, "region_depth2", filter.RegionDepth2)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamRankingsToDTO(rows))
}

func (h *Handler) ListAreaRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAreaRankings")
	defer span.End()

	rows, err := h.rankingService.AreaRankings(ctx)
	if err != nil {
		h.fail(ctx, w, "list area rankings failed", err, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, areaRankingsToDTO(rows))
}
