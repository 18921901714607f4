package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/lineup"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.lineupService.SessionCount(),
	})
}

func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSlots")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, slotSchemaToDTO(lineup.Slots()))
}

func (h *Handler) ListTodayMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTodayMatches")
	defer span.End()

	items := h.lineupService.TodayMatches(ctx)
	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items, time.Now()))
}

func (h *Handler) ListMatchesByDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesByDay")
	defer span.End()

	day, err := parseDayQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.lineupService.MatchesByDay(ctx, day)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items, time.Now()))
}
