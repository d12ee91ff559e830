package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/merchant-dashboard-api/internal/middleware"
	"github.com/anyulbade/merchant-dashboard-api/internal/service"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// GetStoreReport answers JSON unless format=html is given or the client
// prefers text/html.
func (h *ReportHandler) GetStoreReport(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	report, err := h.svc.GenerateReport(c.Request.Context(), user, c.Query("store"), c.Query("range"))
	if err != nil {
		c.Error(err)
		return
	}

	format := c.Query("format")
	if format == "" && c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		format = "html"
	}
	if format != "html" {
		c.JSON(http.StatusOK, report)
		return
	}

	page, err := h.svc.RenderHTML(report)
	if err != nil {
		c.Error(fmt.Errorf("render report: %w", err))
		return
	}
	if c.Query("download") == "true" {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="report_%s_%s.html"`,
			safeFilename(report.StoreLabel), report.Range))
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
