package middleware

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"parking-spot/internal/store"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// ActorHeader 呼叫端可用此 header 指定稽核欄位的操作者
const ActorHeader = "X-Actor"

// RequestLogger 以 zerolog 記錄每個請求，5xx 以 error 等級輸出
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// Actor 將 X-Actor header 放進 request context，供 store 寫入 created_by / modified_by
// 超過 store.MaxActorLength 個字元時回傳 400
func Actor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor := c.Request().Header.Get(ActorHeader)
		if actor == "" {
			return next(c)
		}
		if utf8.RuneCountInString(actor) > store.MaxActorLength {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("%s header must be at most %d characters", ActorHeader, store.MaxActorLength))
		}
		req := c.Request()
		c.SetRequest(req.WithContext(store.WithActor(req.Context(), actor)))
		return next(c)
	}
}
