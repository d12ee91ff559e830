package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/merchant-dashboard-api/internal/dto"
	"github.com/anyulbade/merchant-dashboard-api/internal/filter"
	"github.com/anyulbade/merchant-dashboard-api/internal/middleware"
	"github.com/anyulbade/merchant-dashboard-api/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) List(c *gin.Context) {
	f := filter.UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Store:  c.Query("store"),
		Status: c.Query("status"),
	}
	p := dto.ParsePagination(c)

	page, err := h.svc.List(c.Request.Context(), f, p.Page, p.PageSize)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       dto.NewUserResponses(page.Users),
		"stats":      page.Stats,
		"pagination": dto.NewPagination(page.Page, page.PageSize, page.TotalCount),
	})
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	actor, _ := middleware.CurrentUser(c)
	user, temp, err := h.svc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateUserResponse{
		User:              dto.NewUserResponse(*user),
		TemporaryPassword: temp,
	})
}

func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	actor, _ := middleware.CurrentUser(c)
	user, err := h.svc.Update(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

func (h *UserHandler) SetStatus(c *gin.Context) {
	var req dto.UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	actor, _ := middleware.CurrentUser(c)
	user, err := h.svc.SetStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
				Error: "validation failed: " + err.Error(),
			})
			return
		}
	}

	temp, err := h.svc.ResetPassword(c.Request.Context(), c.Param("id"), req.Password)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.ResetPasswordResponse{TemporaryPassword: temp})
}

func (h *UserHandler) RevokeSessions(c *gin.Context) {
	if err := h.svc.RevokeSessions(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Delete(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	if err := h.svc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
