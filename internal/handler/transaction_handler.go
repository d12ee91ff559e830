package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/merchant-dashboard-api/internal/dto"
	"github.com/anyulbade/merchant-dashboard-api/internal/filter"
	"github.com/anyulbade/merchant-dashboard-api/internal/middleware"
	"github.com/anyulbade/merchant-dashboard-api/internal/service"
)

type TransactionHandler struct {
	svc *service.TransactionService
}

func NewTransactionHandler(svc *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

func (h *TransactionHandler) List(c *gin.Context) {
	f := filter.TransactionFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Terminal: c.Query("terminal"),
		Date:     c.Query("date"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	dates := []struct{ name, value string }{{"date", f.Date}, {"date_from", f.DateFrom}, {"date_to", f.DateTo}}
	for _, d := range dates {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d.value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s format, want YYYY-MM-DD", d.name)})
			return
		}
	}
	if f.DateFrom != "" && f.DateTo != "" && f.DateFrom > f.DateTo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must be before date_to"})
		return
	}

	p := dto.ParsePagination(c)
	user, _ := middleware.CurrentUser(c)

	page, err := h.svc.List(c.Request.Context(), user, c.Query("store"), f, p.Page, p.PageSize)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	detail, err := h.svc.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *TransactionHandler) Export(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := c.Param("id")

	data, err := h.svc.ExportCSV(c.Request.Context(), user, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="transaction_%s.csv"`, safeFilename(id)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func safeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
