package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Dimo99/angular/infrastructure/history"
	"github.com/Dimo99/angular/pkg/common"
)

// HistoryHandler exposes the host history stack over HTTP. Traversals
// feed back into the engine through the stack's change notifications,
// the same way host-initiated back/forward buttons would.
type HistoryHandler struct {
	stack  history.Stack
	logger *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(stack history.Stack, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		stack:  stack,
		logger: logger,
	}
}

type goRequest struct {
	Delta int `json:"delta"`
}

// Go handles POST /history/go
func (h *HistoryHandler) Go(w http.ResponseWriter, r *http.Request) {
	var req goRequest
	if err := common.ParseJSONBody(r, &req, 4*1024); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	h.stack.Go(req.Delta)
	h.respondCurrent(w)
}

// Back handles POST /history/back
func (h *HistoryHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.stack.Go(-1)
	h.respondCurrent(w)
}

// Forward handles POST /history/forward
func (h *HistoryHandler) Forward(w http.ResponseWriter, r *http.Request) {
	h.stack.Go(1)
	h.respondCurrent(w)
}

// Current handles GET /history
func (h *HistoryHandler) Current(w http.ResponseWriter, r *http.Request) {
	h.respondCurrent(w)
}

func (h *HistoryHandler) respondCurrent(w http.ResponseWriter) {
	data := map[string]interface{}{
		"path":  h.stack.Path(),
		"state": h.stack.State(),
	}
	if sized, ok := h.stack.(interface{ Length() int }); ok {
		data["length"] = sized.Length()
	}
	common.RespondJSON(w, http.StatusOK, data)
}
