package httpapi

import (
	"net/http"

	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, logger *logging.Logger) {
	mux.HandleFunc("GET /v1/rankings/teams", handler.ListTeamRankings)
	mux.HandleFunc("GET /v1/rankings/areas", handler.ListAreaRankings)
	mux.HandleFunc("GET /v1/matches/open", handler.ListOpenMatches)
	// Participants see contact links on the detail page.
	mux.Handle("GET /v1/matches/{matchID}", OptionalAuth(verifier, logger, http.HandlerFunc(handler.GetMatch)))
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedProfileRoutes(mux, handler, verifier)
	registerAuthorizedTeamRoutes(mux, handler, verifier)
	registerAuthorizedMatchRoutes(mux, handler, verifier)
}

func registerAuthorizedProfileRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/me/profile", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
	mux.Handle("PUT /v1/me/profile/position", RequireAuth(verifier, http.HandlerFunc(handler.SetMyPosition)))
	mux.Handle("POST /v1/me/verification", RequireAuth(verifier, http.HandlerFunc(handler.InitiateVerification)))
	mux.Handle("POST /v1/me/verification/confirm", RequireAuth(verifier, http.HandlerFunc(handler.ConfirmVerification)))
	mux.Handle("DELETE /v1/me/verification", RequireAuth(verifier, http.HandlerFunc(handler.CancelVerification)))
	mux.Handle("POST /v1/me/verification/refresh", RequireAuth(verifier, http.HandlerFunc(handler.RefreshVerification)))
	mux.Handle("GET /v1/me/dashboard", RequireAuth(verifier, http.HandlerFunc(handler.GetDashboard)))
	mux.Handle("GET /v1/me/matches", RequireAuth(verifier, http.HandlerFunc(handler.ListMyMatches)))
	mux.Handle("GET /v1/me/team", RequireAuth(verifier, http.HandlerFunc(handler.GetMyTeam)))
}

func registerAuthorizedTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("PUT /v1/teams/contact-link", RequireAuth(verifier, http.HandlerFunc(handler.UpdateTeamContactLink)))
	mux.Handle("POST /v1/teams/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinTeam)))
	mux.Handle("POST /v1/teams/leave", RequireAuth(verifier, http.HandlerFunc(handler.LeaveTeam)))
	mux.Handle("POST /v1/teams/roster/refresh", RequireAuth(verifier, http.HandlerFunc(handler.RefreshTeamRoster)))
}

func registerAuthorizedMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("POST /v1/matches/{matchID}/accept", RequireAuth(verifier, http.HandlerFunc(handler.AcceptMatch)))
	mux.Handle("DELETE /v1/matches/{matchID}", RequireAuth(verifier, http.HandlerFunc(handler.CancelMatch)))
	mux.Handle("POST /v1/matches/{matchID}/result", RequireAuth(verifier, http.HandlerFunc(handler.ReportMatchResult)))
	mux.Handle("POST /v1/matches/{matchID}/confirm", RequireAuth(verifier, http.HandlerFunc(handler.ConfirmMatchResult)))
	mux.Handle("POST /v1/matches/{matchID}/dispute", RequireAuth(verifier, http.HandlerFunc(handler.DisputeMatchResult)))
}
