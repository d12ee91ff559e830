package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/merchant-dashboard-api/internal/middleware"
	"github.com/anyulbade/merchant-dashboard-api/internal/service"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	summary, err := h.svc.GetStoreSummary(c.Request.Context(), user, c.Query("store"), c.Query("range"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
