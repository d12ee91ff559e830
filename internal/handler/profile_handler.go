package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/merchant-dashboard-api/internal/dto"
	"github.com/anyulbade/merchant-dashboard-api/internal/middleware"
	"github.com/anyulbade/merchant-dashboard-api/internal/service"
)

type ProfileHandler struct {
	svc *service.AuthService
}

func NewProfileHandler(svc *service.AuthService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	profile, err := h.svc.Profile(c.Request.Context(), user.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*profile))
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	user, _ := middleware.CurrentUser(c)
	profile, err := h.svc.UpdateProfile(c.Request.Context(), user.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*profile))
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	user, _ := middleware.CurrentUser(c)
	if err := h.svc.ChangePassword(c.Request.Context(), user.ID, &req); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
