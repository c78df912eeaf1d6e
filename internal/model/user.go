// File: internal/model/user.go
package model

import (
	"strings"
	"time"
)

// Role 使用者角色，資料庫以 ROLE_ 前綴儲存
type Role string

const (
	RoleAdmin  Role = "ROLE_ADMIN"
	RoleClient Role = "ROLE_CLIENT"
)

const rolePrefix = "ROLE_"

// Name 回傳去除 ROLE_ 前綴後的對外名稱
func (r Role) Name() string {
	return strings.TrimPrefix(string(r), rolePrefix)
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

type User struct {
	ID               int64     `db:"id" json:"id"`
	Username         string    `db:"username" json:"username"`
	Password         string    `db:"password" json:"-"`
	Role             Role      `db:"role" json:"role"`
	CreationDate     time.Time `db:"creation_date" json:"creation_date"`
	ModificationDate time.Time `db:"modification_date" json:"modification_date"`
	CreatedBy        string    `db:"created_by" json:"created_by"`
	ModifiedBy       string    `db:"modified_by" json:"modified_by"`
}
