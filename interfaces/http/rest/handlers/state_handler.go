package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Dimo99/angular/application/router"
	"github.com/Dimo99/angular/pkg/common"
)

// StateHandler exposes the committed router state over HTTP
type StateHandler struct {
	router *router.Router
	logger *zap.Logger
}

// NewStateHandler creates a new state handler
func NewStateHandler(r *router.Router, logger *zap.Logger) *StateHandler {
	return &StateHandler{
		router: r,
		logger: logger,
	}
}

// Get handles GET /state
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	state := h.router.Engine().State()
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"url":                h.router.SerializeURL(state.CurrentURLTree()),
		"raw_url":            h.router.SerializeURL(state.RawURLTree()),
		"browser_url":        h.router.SerializeURL(state.BrowserURLTree()),
		"navigated":          state.Navigated(),
		"navigation_id":      state.NavigationID(),
		"last_successful_id": state.LastSuccessfulID(),
		"current_page_id":    state.CurrentPageID(),
	})
}
