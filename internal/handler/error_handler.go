package handler

import (
	"errors"
	"fmt"
	"net/http"

	"parking-spot/internal/api"
	"parking-spot/internal/service"
	"parking-spot/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const invalidFieldsMessage = "Invalid field(s)"

// NewHTTPErrorHandler 將 handler 回傳的錯誤轉成 api.ErrorResponse
//
//	*validation.Error             → 422
//	*service.UsernameConflictError → 409
//	*service.NotFoundError         → 404
//	*service.PasswordMismatchError → 400
//	*echo.HTTPError               → 其 Code
//	其他                           → 500，並寫入日誌
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message, details := resolve(err)
		req := c.Request()
		if status >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", status).
				Msg("request failed")
		}

		if req.Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, api.NewErrorResponse(req.URL.Path, req.Method, status, message, details))
		}
		if err != nil {
			log.Error().Err(err).Msg("write error response")
		}
	}
}

func resolve(err error) (int, string, []api.ErrorDetail) {
	var (
		verr     *validation.Error
		conflict *service.UsernameConflictError
		notFound *service.NotFoundError
		mismatch *service.PasswordMismatchError
		he       *echo.HTTPError
	)
	switch {
	case errors.As(err, &verr):
		details := make([]api.ErrorDetail, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, api.ErrorDetail{Field: f.Field, Message: f.Message})
		}
		return http.StatusUnprocessableEntity, invalidFieldsMessage, details
	case errors.As(err, &conflict):
		return http.StatusConflict, conflict.Error(), nil
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error(), nil
	case errors.As(err, &mismatch):
		return http.StatusBadRequest, mismatch.Error(), nil
	case errors.As(err, &he):
		msg := http.StatusText(he.Code)
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, msg, nil
	default:
		return http.StatusInternalServerError, "internal server error", nil
	}
}
