package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parking-spot/internal/database"
	"parking-spot/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrUniqueViolation = errors.New("unique constraint violation")
)

// SQLSTATE unique_violation
const uniqueViolationCode = "23505"

var timeNow = time.Now

const userColumns = `id, username, password, role, creation_date, modification_date, created_by, modified_by`

// CreateUser 新增使用者，回填 id 與稽核欄位；username 重複時回傳 ErrUniqueViolation
func CreateUser(ctx context.Context, q database.Querier, u *model.User) (*model.User, error) {
	if u.Role == "" {
		u.Role = model.RoleClient
	}
	now := timeNow()
	actor := ActorFromContext(ctx)

	row := q.QueryRow(ctx,
		`INSERT INTO users (username, password, role, creation_date, modification_date, created_by, modified_by)
		 VALUES ($1, $2, $3, $4, $4, $5, $5)
		 RETURNING id, creation_date, modification_date, created_by, modified_by`,
		u.Username,
		u.Password,
		string(u.Role),
		now,
		actor,
	)
	if err := row.Scan(
		&u.ID,
		&u.CreationDate,
		&u.ModificationDate,
		&u.CreatedBy,
		&u.ModifiedBy,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("CreateUser: %w: %w", ErrUniqueViolation, err)
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

func GetUserByID(ctx context.Context, q database.Querier, userID int64) (*model.User, error) {
	row := q.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetUserByID: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

// ListUsers 依 id 排序回傳所有使用者
func ListUsers(ctx context.Context, q database.Querier) ([]model.User, error) {
	rows, err := q.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

// UpdateUserPassword 只更新密碼與修改稽核欄位，並回寫到 u
func UpdateUserPassword(ctx context.Context, q database.Querier, u *model.User) error {
	now := timeNow()
	actor := ActorFromContext(ctx)

	tag, err := q.Exec(ctx,
		`UPDATE users
		 SET password = $1, modification_date = $2, modified_by = $3
		 WHERE id = $4`,
		u.Password,
		now,
		actor,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserPassword: %w", ErrNotFound)
	}
	u.ModificationDate = now
	u.ModifiedBy = actor
	return nil
}

// scanUser 掃描一列 users，role 必須是已知角色
func scanUser(row pgx.Row, u *model.User) error {
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.Role,
		&u.CreationDate,
		&u.ModificationDate,
		&u.CreatedBy,
		&u.ModifiedBy,
	); err != nil {
		return err
	}
	if !u.Role.Valid() {
		return fmt.Errorf("user %d: unknown role %q", u.ID, u.Role)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
