package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/merchant-dashboard-api/internal/middleware"
	"github.com/anyulbade/merchant-dashboard-api/internal/service"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(fmt.Errorf("limit %q: %w", raw, service.ErrInvalidInput))
			return
		}
		limit = n
	}

	user, _ := middleware.CurrentUser(c)
	feed, err := h.svc.List(c.Request.Context(), user, limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, feed)
}
