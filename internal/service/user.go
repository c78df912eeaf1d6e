// File: internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"

	"parking-spot/internal/database"
	"parking-spot/internal/metrics"
	"parking-spot/internal/model"
	"parking-spot/internal/store"

	"github.com/rs/zerolog"
)

var (
	createUser         = store.CreateUser
	getUserByID        = store.GetUserByID
	listUsers          = store.ListUsers
	updateUserPassword = store.UpdateUserPassword
)

// UserService 使用者帳號的 create / get / update password / list
// 每個操作都在單一交易內完成
type UserService struct {
	db        database.DB
	passwords PasswordEncoder
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

func NewUserService(db database.DB, passwords PasswordEncoder, m *metrics.Metrics, log zerolog.Logger) *UserService {
	if passwords == nil {
		passwords = PlainTextEncoder{}
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &UserService{db: db, passwords: passwords, metrics: m, log: log}
}

// Create 建立角色為 CLIENT 的新使用者
func (s *UserService) Create(ctx context.Context, username, password string) (*model.User, error) {
	encoded, err := s.passwords.Encode(password)
	if err != nil {
		return nil, fmt.Errorf("Create: encode password: %w", err)
	}

	var created *model.User
	err = database.WithTx(ctx, s.db, database.ReadWrite, func(q database.Querier) error {
		u, err := createUser(ctx, q, &model.User{
			Username: username,
			Password: encoded,
			Role:     model.RoleClient,
		})
		if err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrUniqueViolation) {
			return nil, &UsernameConflictError{Username: username, Err: err}
		}
		return nil, err
	}

	s.metrics.UsersCreatedTotal.Inc()
	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user *model.User
	err := database.WithTx(ctx, s.db, database.ReadOnly, func(q database.Querier) error {
		u, err := s.getByID(ctx, q, id)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword 先檢查新密碼與確認密碼一致，再於交易內比對目前密碼並更新
func (s *UserService) UpdatePassword(ctx context.Context, id int64, currentPassword, newPassword, confirmPassword string) (*model.User, error) {
	if newPassword != confirmPassword {
		err := &PasswordMismatchError{Reason: MismatchConfirmation}
		s.metrics.PasswordUpdatesTotal.WithLabelValues(passwordUpdateResult(err)).Inc()
		return nil, err
	}

	var updated *model.User
	err := database.WithTx(ctx, s.db, database.ReadWrite, func(q database.Querier) error {
		u, err := s.getByID(ctx, q, id)
		if err != nil {
			return err
		}
		if !s.passwords.Matches(currentPassword, u.Password) {
			return &PasswordMismatchError{Reason: MismatchCurrentPassword}
		}

		encoded, err := s.passwords.Encode(newPassword)
		if err != nil {
			return fmt.Errorf("UpdatePassword: encode password: %w", err)
		}
		u.Password = encoded
		if err := updateUserPassword(ctx, q, u); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{ID: id}
			}
			return err
		}
		updated = u
		return nil
	})
	s.metrics.PasswordUpdatesTotal.WithLabelValues(passwordUpdateResult(err)).Inc()
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", id).Msg("password updated")
	return updated, nil
}

// ListAll 依儲存層預設順序 (id) 回傳所有使用者
func (s *UserService) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := database.WithTx(ctx, s.db, database.ReadOnly, func(q database.Querier) error {
		list, err := listUsers(ctx, q)
		if err != nil {
			return err
		}
		users = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) getByID(ctx context.Context, q database.Querier, id int64) (*model.User, error) {
	u, err := getUserByID(ctx, q, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}
	return u, nil
}

func passwordUpdateResult(err error) string {
	var mismatch *PasswordMismatchError
	var notFound *NotFoundError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &mismatch) && mismatch.Reason == MismatchConfirmation:
		return "confirmation_mismatch"
	case errors.As(err, &mismatch):
		return "wrong_password"
	case errors.As(err, &notFound):
		return "not_found"
	default:
		return "error"
	}
}
