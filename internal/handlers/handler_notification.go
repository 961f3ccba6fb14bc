package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/dto"
)

// notificationHandler handles the notification endpoints.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(notificationService portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

// registerNotificationRoutes sets up the notification routes.
func registerNotificationRoutes(group *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := group.Group("/notificacoes")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("/lidas", h.markRead)
		notifications.POST("/vencimentos", h.refreshDue)
	}
}

func (h *notificationHandler) listNotifications(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("naoLidas") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limite", "50"))

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), adminID, unreadOnly, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationResponses(notifications))
}

func (h *notificationHandler) markRead(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.MarkNotificationsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), adminID, req.NotificationIDs); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *notificationHandler) refreshDue(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	written, err := h.notificationService.RefreshDueNotifications(c.Request.Context(), adminID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"geradas": written})
}
