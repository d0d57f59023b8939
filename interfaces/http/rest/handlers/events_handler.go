package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Dimo99/angular/pkg/common"
	"github.com/Dimo99/angular/pkg/observability"
)

// EventsHandler exposes the recorded lifecycle event log over HTTP
type EventsHandler struct {
	recorder *observability.Recorder
	logger   *zap.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(recorder *observability.Recorder, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		recorder: recorder,
		logger:   logger,
	}
}

// List handles GET /events
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	params := common.ExtractPaginationParams(r)
	all := h.recorder.Snapshot()

	start := params.CalculateOffset()
	if start > len(all) {
		start = len(all)
	}
	end := start + params.PageSize
	if end > len(all) {
		end = len(all)
	}

	common.RespondWithMeta(w, http.StatusOK, all[start:end], &common.MetaInfo{
		Pagination: common.BuildPaginationMeta(params.Page, params.PageSize, len(all)),
	})
}

// Clear handles DELETE /events
func (h *EventsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.recorder.Clear()
	w.WriteHeader(http.StatusNoContent)
}
