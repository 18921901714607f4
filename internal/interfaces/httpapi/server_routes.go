package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/slots", handler.ListSlots)
}

func registerScheduleRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/matches/today", ForwardBearer(http.HandlerFunc(handler.ListTodayMatches)))
	mux.Handle("GET /v1/matches", ForwardBearer(http.HandlerFunc(handler.ListMatchesByDay)))
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/lineup", RequireBearer(http.HandlerFunc(handler.GetLineup)))
	mux.Handle("PUT /v1/lineup/day", RequireBearer(http.HandlerFunc(handler.OpenLineupDay)))
	mux.Handle("POST /v1/lineup/save", RequireBearer(http.HandlerFunc(handler.SaveLineup)))
	mux.Handle("PUT /v1/lineup/slots/{slot}", RequireBearer(http.HandlerFunc(handler.PickSlotPlayer)))
	mux.Handle("DELETE /v1/lineup/slots/{slot}", RequireBearer(http.HandlerFunc(handler.RemoveSlotPlayer)))
	mux.Handle("POST /v1/lineup/slots/{slot}/captain", RequireBearer(http.HandlerFunc(handler.ToggleSlotCaptain)))
	mux.Handle("GET /v1/lineup/slots/{slot}/candidates", RequireBearer(http.HandlerFunc(handler.ListSlotCandidates)))
}

func registerScoreRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/scores/standings", ForwardBearer(http.HandlerFunc(handler.ListStandings)))
	mux.Handle("GET /v1/scores", ForwardBearer(http.HandlerFunc(handler.ListScoresByDay)))
	mux.Handle("GET /v1/scores/me", RequireBearer(http.HandlerFunc(handler.ListMyScores)))
	mux.Handle("GET /v1/scores/overview", RequireBearer(http.HandlerFunc(handler.GetScoreOverview)))
}
