// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"parking-spot/internal/cache"
	"parking-spot/internal/database"

	"github.com/labstack/echo/v4"
)

const (
	healthKey = "health:ping"
	healthTTL = 10 * time.Second
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查 PostgreSQL 連線與 Redis 可寫入
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "database unhealthy").SetInternal(err)
		}
		if err := cch.Ping(ctx).Err(); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "cache unhealthy").SetInternal(err)
		}
		if err := cch.Set(ctx, healthKey, "pong", healthTTL).Err(); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "cache not writable").SetInternal(err)
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
