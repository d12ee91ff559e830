package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/merchant-dashboard-api/internal/dto"
	"github.com/anyulbade/merchant-dashboard-api/internal/filter"
	"github.com/anyulbade/merchant-dashboard-api/internal/middleware"
	"github.com/anyulbade/merchant-dashboard-api/internal/service"
)

type TerminalHandler struct {
	svc *service.TerminalService
}

func NewTerminalHandler(svc *service.TerminalService) *TerminalHandler {
	return &TerminalHandler{svc: svc}
}

func (h *TerminalHandler) List(c *gin.Context) {
	f := filter.TerminalFilter{
		Status: c.Query("status"),
		Store:  c.Query("store"),
		Search: c.Query("search"),
	}
	p := dto.ParsePagination(c)
	user, _ := middleware.CurrentUser(c)

	page, err := h.svc.List(c.Request.Context(), user, f, p.Page, p.PageSize)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *TerminalHandler) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	info, err := h.svc.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, info)
}
