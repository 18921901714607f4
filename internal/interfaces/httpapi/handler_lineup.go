package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-hockey/internal/usecase"
)

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	view, err := h.lineupService.View(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionViewToDTO(ctx, view))
}

func (h *Handler) OpenLineupDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenLineupDay")
	defer span.End()

	var req openDayRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.lineupService.OpenDay(ctx, req.Day)
	if err != nil {
		h.logger.WarnContext(ctx, "open lineup day failed", "day", req.Day, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionViewToDTO(ctx, view))
}

func (h *Handler) PickSlotPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PickSlotPlayer")
	defer span.End()

	slot, err := parseSlotPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req pickPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.lineupService.Pick(ctx, slot, req.PlayerID)
	if err != nil {
		h.logger.DebugContext(ctx, "pick rejected", "slot", slot, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionViewToDTO(ctx, view))
}

func (h *Handler) RemoveSlotPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveSlotPlayer")
	defer span.End()

	slot, err := parseSlotPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.lineupService.Remove(ctx, slot)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionViewToDTO(ctx, view))
}

func (h *Handler) ToggleSlotCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleSlotCaptain")
	defer span.End()

	slot, err := parseSlotPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.lineupService.ToggleCaptain(ctx, slot)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionViewToDTO(ctx, view))
}

func (h *Handler) SaveLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveLineup")
	defer span.End()

	view, err := h.lineupService.Save(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "save lineup failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionViewToDTO(ctx, view))
}

func (h *Handler) ListSlotCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSlotCandidates")
	defer span.End()

	slot, err := parseSlotPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	items, err := h.lineupService.Candidates(ctx, usecase.CandidateQuery{
		Slot:   slot,
		Search: strings.TrimSpace(query.Get("search")),
		Team:   strings.TrimSpace(query.Get("team")),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, candidatesToDTO(items))
}
