package httpapi

import "net/http"

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	items, err := h.scoreService.Standings(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(items))
}

func (h *Handler) ListScoresByDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScoresByDay")
	defer span.End()

	day, err := parseDayQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.scoreService.ByDay(ctx, day)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(items))
}

func (h *Handler) ListMyScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyScores")
	defer span.End()

	items, err := h.scoreService.Mine(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dayScoresToDTO(items))
}

func (h *Handler) GetScoreOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreOverview")
	defer span.End()

	overview, err := h.scoreService.Overview(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "score overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreOverviewDTO{
		Standings: standingsToDTO(overview.Standings),
		History:   dayScoresToDTO(overview.History),
	})
}
