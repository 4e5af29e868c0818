package handlers

import (
	"github.com/gin-gonic/gin"

	"linguacademy/internal/domain"
	"linguacademy/internal/infrastructure/notify"
	"linguacademy/internal/transport/http/response"
)

type NotificationHandler struct {
	inbox *notify.Inbox
}

func NewNotificationHandler(inbox *notify.Inbox) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

// GET /api/v1/notifications drains the caller's inbox. Guests always get an
// empty list; their notifications only reach the log and redis sinks.
func (h *NotificationHandler) Drain(c *gin.Context) {
	u, _ := domain.UserFromContext(c.Request.Context())
	response.RespondOK(c, h.inbox.Drain(u.ID))
}
