package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parking-spot/internal/api"
	"parking-spot/internal/handler"
	"parking-spot/internal/model"
	"parking-spot/internal/service"
	"parking-spot/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	CreateFn         func(ctx context.Context, username, password string) (*model.User, error)
	GetByIDFn        func(ctx context.Context, id int64) (*model.User, error)
	UpdatePasswordFn func(ctx context.Context, id int64, current, newPassword, confirm string) (*model.User, error)
	ListAllFn        func(ctx context.Context) ([]model.User, error)
}

func (f *fakeService) Create(ctx context.Context, username, password string) (*model.User, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, username, password)
	}
	panic("unexpected Create")
}

func (f *fakeService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	panic("unexpected GetByID")
}

func (f *fakeService) UpdatePassword(ctx context.Context, id int64, current, newPassword, confirm string) (*model.User, error) {
	if f.UpdatePasswordFn != nil {
		return f.UpdatePasswordFn(ctx, id, current, newPassword, confirm)
	}
	panic("unexpected UpdatePassword")
}

func (f *fakeService) ListAll(ctx context.Context) ([]model.User, error) {
	if f.ListAllFn != nil {
		return f.ListAllFn(ctx)
	}
	panic("unexpected ListAll")
}

func newEcho(svc UserService) *echo.Echo {
	e := echo.New()
	e.Validator = validation.New(6, 6)
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(zerolog.Nop())
	g := e.Group("/api/v1/users")
	g.POST("", CreateUserHandler(svc))
	g.GET("", ListUsersHandler(svc))
	g.GET("/:id", GetUserHandler(svc))
	g.PATCH("/:id", UpdatePasswordHandler(svc))
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func client(id int64, username string) *model.User {
	return &model.User{ID: id, Username: username, Password: "123456", Role: model.RoleClient}
}

func TestCreateUserHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotUser, gotPass string
		svc := &fakeService{CreateFn: func(ctx context.Context, username, password string) (*model.User, error) {
			gotUser, gotPass = username, password
			return client(1, username), nil
		}}
		rec := do(newEcho(svc), http.MethodPost, "/api/v1/users", `{"username":"tod@email.com","password":"123456"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		require.JSONEq(t, `{"id":1,"username":"tod@email.com","role":"CLIENT"}`, rec.Body.String())
		require.Equal(t, "tod@email.com", gotUser)
		require.Equal(t, "123456", gotPass)
		require.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("invalid fields", func(t *testing.T) {
		rec := do(newEcho(&fakeService{}), http.MethodPost, "/api/v1/users", `{"username":"not-an-email","password":"123"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeError(t, rec)
		require.Equal(t, "Invalid field(s)", body.Message)
		require.Equal(t, []api.ErrorDetail{
			{Field: "username", Message: "must be a valid e-mail address"},
			{Field: "password", Message: "size must be between 6 and 6"},
		}, body.Errors)
	})

	t.Run("upper case username rejected", func(t *testing.T) {
		rec := do(newEcho(&fakeService{}), http.MethodPost, "/api/v1/users", `{"username":"Tod@email.com","password":"123456"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Equal(t, "username", decodeError(t, rec).Errors[0].Field)
	})

	t.Run("username over 100 characters", func(t *testing.T) {
		username := strings.Repeat("a", 91) + "@email.com"
		require.Len(t, username, 101)
		rec := do(newEcho(&fakeService{}), http.MethodPost, "/api/v1/users",
			`{"username":"`+username+`","password":"123456"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Equal(t, []api.ErrorDetail{
			{Field: "username", Message: "size must be between 0 and 100"},
		}, decodeError(t, rec).Errors)
	})

	t.Run("empty body", func(t *testing.T) {
		rec := do(newEcho(&fakeService{}), http.MethodPost, "/api/v1/users", "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Equal(t, []api.ErrorDetail{
			{Field: "username", Message: "must not be blank"},
			{Field: "password", Message: "must not be blank"},
		}, decodeError(t, rec).Errors)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := do(newEcho(&fakeService{}), http.MethodPost, "/api/v1/users", `{"username":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid request body", decodeError(t, rec).Message)
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeService{CreateFn: func(ctx context.Context, username, password string) (*model.User, error) {
			return nil, &service.UsernameConflictError{Username: username}
		}}
		rec := do(newEcho(svc), http.MethodPost, "/api/v1/users", `{"username":"tod@email.com","password":"123456"}`)
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, "Username 'tod@email.com' is already in use.", decodeError(t, rec).Message)
	})

	t.Run("unexpected error", func(t *testing.T) {
		svc := &fakeService{CreateFn: func(ctx context.Context, username, password string) (*model.User, error) {
			return nil, errors.New("db down")
		}}
		rec := do(newEcho(svc), http.MethodPost, "/api/v1/users", `{"username":"tod@email.com","password":"123456"}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "internal server error", decodeError(t, rec).Message)
	})
}

func TestGetUserHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeService{GetByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			require.Equal(t, int64(42), id)
			u := client(42, "ana@email.com")
			u.Role = model.RoleAdmin
			return u, nil
		}}
		rec := do(newEcho(svc), http.MethodGet, "/api/v1/users/42", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"id":42,"username":"ana@email.com","role":"ADMIN"}`, rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeService{GetByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, &service.NotFoundError{ID: id}
		}}
		rec := do(newEcho(svc), http.MethodGet, "/api/v1/users/9", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeError(t, rec)
		require.Equal(t, "User with id '9' was not found.", body.Message)
		require.Equal(t, "/api/v1/users/9", body.Path)
		require.Equal(t, http.MethodGet, body.Method)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := do(newEcho(&fakeService{}), http.MethodGet, "/api/v1/users/abc", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid user ID", decodeError(t, rec).Message)
	})
}

func TestUpdatePasswordHandler(t *testing.T) {
	const valid = `{"currentPassword":"123456","newPassword":"654321","confirmPassword":"654321"}`

	t.Run("success", func(t *testing.T) {
		var got [4]any
		svc := &fakeService{UpdatePasswordFn: func(ctx context.Context, id int64, current, newPassword, confirm string) (*model.User, error) {
			got = [4]any{id, current, newPassword, confirm}
			return client(id, "tod@email.com"), nil
		}}
		rec := do(newEcho(svc), http.MethodPatch, "/api/v1/users/3", valid)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Zero(t, rec.Body.Len())
		require.Equal(t, [4]any{int64(3), "123456", "654321", "654321"}, got)
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		svc := &fakeService{UpdatePasswordFn: func(ctx context.Context, id int64, current, newPassword, confirm string) (*model.User, error) {
			return nil, &service.PasswordMismatchError{Reason: service.MismatchConfirmation}
		}}
		rec := do(newEcho(svc), http.MethodPatch, "/api/v1/users/3",
			`{"currentPassword":"123456","newPassword":"654321","confirmPassword":"000000"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Password confirmation does not match inputted password.", decodeError(t, rec).Message)
	})

	t.Run("wrong current password", func(t *testing.T) {
		svc := &fakeService{UpdatePasswordFn: func(ctx context.Context, id int64, current, newPassword, confirm string) (*model.User, error) {
			return nil, &service.PasswordMismatchError{Reason: service.MismatchCurrentPassword}
		}}
		rec := do(newEcho(svc), http.MethodPatch, "/api/v1/users/3", valid)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Wrong current password value.", decodeError(t, rec).Message)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeService{UpdatePasswordFn: func(ctx context.Context, id int64, current, newPassword, confirm string) (*model.User, error) {
			return nil, &service.NotFoundError{ID: id}
		}}
		rec := do(newEcho(svc), http.MethodPatch, "/api/v1/users/77", valid)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid fields", func(t *testing.T) {
		rec := do(newEcho(&fakeService{}), http.MethodPatch, "/api/v1/users/3",
			`{"currentPassword":"","newPassword":"1234567","confirmPassword":"654321"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Equal(t, []api.ErrorDetail{
			{Field: "currentPassword", Message: "must not be blank"},
			{Field: "newPassword", Message: "size must be between 6 and 6"},
		}, decodeError(t, rec).Errors)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := do(newEcho(&fakeService{}), http.MethodPatch, "/api/v1/users/x", valid)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := do(newEcho(&fakeService{}), http.MethodPatch, "/api/v1/users/3", `[`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListUsersHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeService{ListAllFn: func(ctx context.Context) ([]model.User, error) {
			return []model.User{*client(1, "a@email.com"), *client(2, "b@email.com")}, nil
		}}
		rec := do(newEcho(svc), http.MethodGet, "/api/v1/users", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[
			{"id":1,"username":"a@email.com","role":"CLIENT"},
			{"id":2,"username":"b@email.com","role":"CLIENT"}
		]`, rec.Body.String())
	})

	t.Run("empty", func(t *testing.T) {
		svc := &fakeService{ListAllFn: func(ctx context.Context) ([]model.User, error) { return nil, nil }}
		rec := do(newEcho(svc), http.MethodGet, "/api/v1/users", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("error", func(t *testing.T) {
		svc := &fakeService{ListAllFn: func(ctx context.Context) ([]model.User, error) { return nil, errors.New("boom") }}
		rec := do(newEcho(svc), http.MethodGet, "/api/v1/users", "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
