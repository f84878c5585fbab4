package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mockmatch/internal/api/middleware"
	"mockmatch/internal/app/service"
	"mockmatch/internal/common"

	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	matchService *service.MatchService
}

func NewMatchHandler(ms *service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

func (h *MatchHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listRankedMatches)           // GET /api/v1/matching
	r.Post("/requests", h.createRequest)      // POST /api/v1/matching/requests
	r.Get("/requests", h.listRequests)        // GET /api/v1/matching/requests
	r.Put("/requests/{requestID}", h.respond) // PUT /api/v1/matching/requests/{id}
}

func (h *MatchHandler) listRankedMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	candidates, err := h.matchService.GetRankedMatches(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"users": candidates})
}

type createMatchRequestPayload struct {
	TargetUserID int64 `json:"targetUserId"`
}

func (h *MatchHandler) createRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var payload createMatchRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.matchService.CreateRequest(r.Context(), userID, payload.TargetUserID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *MatchHandler) listRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	requests, err := h.matchService.ListRequests(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

type respondMatchRequestPayload struct {
	Accept bool `json:"accept"`
}

func (h *MatchHandler) respond(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	requestID, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var payload respondMatchRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	req, err := h.matchService.Respond(r.Context(), userID, requestID, payload.Accept)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, req)
}
