package users

import (
	"context"
	"net/http"
	"strconv"

	"parking-spot/internal/api"
	"parking-spot/internal/model"

	"github.com/labstack/echo/v4"
)

// UserService 為 handler 需要的使用者操作，由 service.UserService 實作
type UserService interface {
	Create(ctx context.Context, username, password string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, currentPassword, newPassword, confirmPassword string) (*model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user ID").SetInternal(err)
	}
	return id, nil
}

func invalidBody(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
}

// @Summary     Create a new user
// @Description 建立新使用者，角色固定為 CLIENT
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateUserRequest true "使用者帳號與密碼"
// @Success     201  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse "JSON 格式錯誤"
// @Failure     409  {object} api.ErrorResponse "username 已存在"
// @Failure     422  {object} api.ErrorResponse "欄位驗證失敗"
// @Failure     500  {object} api.ErrorResponse
// @Router      /users [post]
func CreateUserHandler(svc UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return invalidBody(err)
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		user, err := svc.Create(c.Request().Context(), req.Username, req.Password)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, api.ToUserResponse(*user))
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢使用者
// @Tags        users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse "參數錯誤"
// @Failure     404 {object} api.ErrorResponse "使用者不存在"
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{id} [get]
func GetUserHandler(svc UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		user, err := svc.GetByID(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.ToUserResponse(*user))
	}
}

// @Summary     Update a user's password
// @Description 驗證目前密碼後更新為新密碼，newPassword 必須與 confirmPassword 相同
// @Tags        users
// @Accept      json
// @Param       id   path int                       true "使用者 ID"
// @Param       body body api.UpdatePasswordRequest true "目前密碼、新密碼與確認密碼"
// @Success     204  "No Content"
// @Failure     400  {object} api.ErrorResponse "參數錯誤或密碼不一致"
// @Failure     404  {object} api.ErrorResponse "使用者不存在"
// @Failure     422  {object} api.ErrorResponse "欄位驗證失敗"
// @Failure     500  {object} api.ErrorResponse
// @Router      /users/{id} [patch]
func UpdatePasswordHandler(svc UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var req api.UpdatePasswordRequest
		if err := c.Bind(&req); err != nil {
			return invalidBody(err)
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		if _, err := svc.UpdatePassword(c.Request().Context(), id, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     List users
// @Description 依 id 排序列出所有使用者
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users [get]
func ListUsersHandler(svc UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := svc.ListAll(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.ToUserResponses(list))
	}
}
