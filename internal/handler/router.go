package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anyulbade/merchant-dashboard-api/internal/access"
	"github.com/anyulbade/merchant-dashboard-api/internal/middleware"
	"github.com/anyulbade/merchant-dashboard-api/internal/service"
)

type Services struct {
	Auth          *service.AuthService
	Users         *service.UserService
	Stores        *service.StoreService
	Dashboard     *service.DashboardService
	Transactions  *service.TransactionService
	Terminals     *service.TerminalService
	Reports       *service.ReportService
	Notifications *service.NotificationService
	Health        *service.HealthService
}

// RegisterRoutes mounts /health, /swagger and the /api/v1 tree.
func RegisterRoutes(router *gin.Engine, svc Services) {
	router.GET("/health", NewHealthHandler(svc.Health).Health)
	SetupSwagger(router)

	authHandler := NewAuthHandler(svc.Auth)
	profileHandler := NewProfileHandler(svc.Auth)
	storeHandler := NewStoreHandler(svc.Stores)
	dashboardHandler := NewDashboardHandler(svc.Dashboard)
	txnHandler := NewTransactionHandler(svc.Transactions)
	terminalHandler := NewTerminalHandler(svc.Terminals)
	reportHandler := NewReportHandler(svc.Reports)
	userHandler := NewUserHandler(svc.Users)
	notificationHandler := NewNotificationHandler(svc.Notifications)

	api := router.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.RequireSession(svc.Auth))
	{
		authed.POST("/auth/logout", authHandler.Logout)
		authed.GET("/auth/me", authHandler.Me)

		authed.GET("/stores", storeHandler.List)
		authed.GET("/dashboard", dashboardHandler.Get)

		authed.GET("/transactions", txnHandler.List)
		authed.GET("/transactions/:id", txnHandler.Get)
		authed.GET("/transactions/:id/export",
			middleware.RequireCapability(access.CanExport), txnHandler.Export)

		authed.GET("/terminals", terminalHandler.List)
		authed.GET("/terminals/:id", terminalHandler.Get)

		authed.GET("/reports/store", reportHandler.GetStoreReport)
		authed.GET("/notifications", notificationHandler.List)

		authed.GET("/profile", profileHandler.Get)
		authed.PUT("/profile", profileHandler.Update)
		authed.PUT("/profile/password", profileHandler.ChangePassword)
	}

	admin := authed.Group("/users")
	admin.Use(middleware.RequireCapability(access.CanManageUsers))
	{
		admin.GET("", userHandler.List)
		admin.POST("", userHandler.Create)
		admin.PUT("/:id", userHandler.Update)
		admin.PATCH("/:id/status", userHandler.SetStatus)
		admin.POST("/:id/reset-password", userHandler.ResetPassword)
		admin.POST("/:id/revoke-sessions", userHandler.RevokeSessions)
		admin.DELETE("/:id", userHandler.Delete)
	}
}
