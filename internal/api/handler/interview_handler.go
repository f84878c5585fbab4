package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mockmatch/internal/api/middleware"
	"mockmatch/internal/app/service"
	"mockmatch/internal/common"
	"mockmatch/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type InterviewHandler struct {
	interviewService *service.InterviewService
}

func NewInterviewHandler(is *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewService: is}
}

func (h *InterviewHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.schedule)                        // POST /api/v1/interviews
	r.Get("/", h.list)                             // GET /api/v1/interviews
	r.Put("/{interviewID}/status", h.updateStatus) // PUT /api/v1/interviews/{id}/status
}

func (h *InterviewHandler) schedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.ScheduleInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	interview, err := h.interviewService.Schedule(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, interview)
}

func (h *InterviewHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	interviews, err := h.interviewService.List(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"interviews": interviews})
}

type updateInterviewStatusPayload struct {
	Status model.InterviewStatus `json:"status"`
}

func (h *InterviewHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	interviewID, err := strconv.ParseInt(chi.URLParam(r, "interviewID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid interview ID")
		return
	}

	var payload updateInterviewStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	interview, err := h.interviewService.UpdateStatus(r.Context(), userID, interviewID, payload.Status)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, interview)
}
