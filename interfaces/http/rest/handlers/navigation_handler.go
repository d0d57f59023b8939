package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Dimo99/angular/application/navigation"
	"github.com/Dimo99/angular/application/router"
	"github.com/Dimo99/angular/domain/urltree"
	"github.com/Dimo99/angular/infrastructure/history"
	"github.com/Dimo99/angular/pkg/common"
	apperrors "github.com/Dimo99/angular/pkg/errors"
)

// NavigationHandler exposes navigation operations over HTTP
type NavigationHandler struct {
	router *router.Router
	logger *zap.Logger
}

// NewNavigationHandler creates a new navigation handler
func NewNavigationHandler(r *router.Router, logger *zap.Logger) *NavigationHandler {
	return &NavigationHandler{
		router: r,
		logger: logger,
	}
}

// navigateRequest is the request body for navigation endpoints. Either
// URL or Commands is set, not both.
type navigateRequest struct {
	URL      string        `json:"url,omitempty"`
	Commands []interface{} `json:"commands,omitempty"`

	QueryParams         map[string][]string `json:"query_params,omitempty"`
	QueryParamsHandling string              `json:"query_params_handling,omitempty"`
	Fragment            string              `json:"fragment,omitempty"`
	PreserveFragment    bool                `json:"preserve_fragment,omitempty"`
	ReplaceURL          bool                `json:"replace_url,omitempty"`
	SkipLocationChange  bool                `json:"skip_location_change,omitempty"`
	State               history.State       `json:"state,omitempty"`
}

// navigateResponse reports the outcome of a navigation request
type navigateResponse struct {
	Resolved bool   `json:"resolved"`
	URL      string `json:"url"`
}

// Navigate handles POST /navigate
func (h *NavigationHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := common.ParseJSONBody(r, &req, 64*1024); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if req.URL == "" && req.Commands == nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "either url or commands is required")
		return
	}

	extras := router.NavigationExtras{
		QueryParams:         req.QueryParams,
		QueryParamsHandling: urltree.QueryParamsHandling(req.QueryParamsHandling),
		Fragment:            req.Fragment,
		PreserveFragment:    req.PreserveFragment,
		ReplaceURL:          req.ReplaceURL,
		SkipLocationChange:  req.SkipLocationChange,
		State:               req.State,
	}

	var deferred *navigation.Deferred
	if req.URL != "" {
		deferred = h.router.NavigateByURL(req.URL, extras)
	} else {
		var err error
		deferred, err = h.router.Navigate(req.Commands, extras)
		if err != nil {
			respondAppError(w, err)
			return
		}
	}

	resolved, err := deferred.Wait(r.Context())
	if err != nil {
		if r.Context().Err() != nil {
			return // client went away
		}
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, navigateResponse{
		Resolved: resolved,
		URL:      h.router.URL(),
	})
}

// Current handles GET /navigation/current
func (h *NavigationHandler) Current(w http.ResponseWriter, r *http.Request) {
	nav := h.router.GetCurrentNavigation()
	if nav == nil {
		common.RespondJSON(w, http.StatusOK, nil)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"id":             nav.ID,
		"target_page_id": nav.TargetPageID,
		"trigger":        string(nav.Trigger),
		"initial_url":    h.router.SerializeURL(nav.InitialURL),
		"extracted_url":  h.router.SerializeURL(nav.ExtractedURL),
	})
}

func respondAppError(w http.ResponseWriter, err error) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		common.RespondError(w, appErr.HTTPStatus, string(appErr.Type), appErr.Message)
		return
	}
	common.RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}
