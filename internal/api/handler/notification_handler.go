package handler

import (
	"net/http"

	"mockmatch/internal/api/middleware"
	"mockmatch/internal/app/service"
	"mockmatch/internal/common"

	"github.com/go-chi/chi/v5"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(ns *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)          // GET /api/v1/notifications
	r.Post("/read", h.markRead) // POST /api/v1/notifications/read
}

func (h *NotificationHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	notifications, err := h.notificationService.List(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

func (h *NotificationHandler) markRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := h.notificationService.MarkAllRead(r.Context(), userID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "all notifications marked read")
}
