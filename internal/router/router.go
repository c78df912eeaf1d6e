// File: internal/router/router.go
package router

import (
	"parking-spot/internal/cache"
	"parking-spot/internal/database"
	"parking-spot/internal/handler"
	"parking-spot/internal/handler/users"
	"parking-spot/internal/middleware"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Setup 註冊所有路由
func Setup(e *echo.Echo, db database.DB, cch cache.Client, svc users.UserService, gatherer prometheus.Gatherer) {
	// Prometheus 與 Swagger UI
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, cch))

	// Users：建立、查詢、列表、更新密碼
	apiUsers := api.Group("/users", middleware.Actor)
	apiUsers.POST("", users.CreateUserHandler(svc))
	apiUsers.GET("", users.ListUsersHandler(svc))
	apiUsers.GET("/:id", users.GetUserHandler(svc))
	apiUsers.PATCH("/:id", users.UpdatePasswordHandler(svc))
}
