package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/merchant-dashboard-api/internal/service"
)

type HealthHandler struct {
	svc *service.HealthService
}

func NewHealthHandler(svc *service.HealthService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

func (h *HealthHandler) Health(c *gin.Context) {
	report := h.svc.Check(c.Request.Context())
	if !report.Healthy {
		c.JSON(http.StatusServiceUnavailable, report)
		return
	}
	c.JSON(http.StatusOK, report)
}
