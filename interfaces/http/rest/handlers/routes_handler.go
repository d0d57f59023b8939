package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Dimo99/angular/application/router"
	"github.com/Dimo99/angular/domain/routes"
	"github.com/Dimo99/angular/pkg/common"
)

// RoutesHandler exposes the route configuration over HTTP
type RoutesHandler struct {
	router *router.Router
	logger *zap.Logger
}

// NewRoutesHandler creates a new routes handler
func NewRoutesHandler(r *router.Router, logger *zap.Logger) *RoutesHandler {
	return &RoutesHandler{
		router: r,
		logger: logger,
	}
}

// List handles GET /routes
func (h *RoutesHandler) List(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.router.Config())
}

type resetRoutesRequest struct {
	Routes []routes.Route `json:"routes"`
}

// Reset handles PUT /routes
func (h *RoutesHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRoutesRequest
	if err := common.ParseJSONBody(r, &req, 256*1024); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := h.router.ResetConfig(req.Routes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_ROUTES", err.Error())
		return
	}
	common.RespondJSON(w, http.StatusOK, req.Routes)
}
