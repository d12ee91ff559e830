package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/merchant-dashboard-api/internal/dto"
	"github.com/anyulbade/merchant-dashboard-api/internal/middleware"
	"github.com/anyulbade/merchant-dashboard-api/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	res, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: res.Token,
		TokenType:   "Bearer",
		ExpiresAt:   res.ExpiresAt,
		User:        dto.NewUserResponse(res.User),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	if err := h.svc.Logout(c.Request.Context(), sess.ID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
