// File: internal/service/password.go
package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

const (
	EncoderPlain  = "plain"
	EncoderBcrypt = "bcrypt"
)

// PasswordEncoder 負責密碼的儲存格式與比對，UserService 不直接比較字串
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}

// NewPasswordEncoder 依名稱建立 encoder，空字串視為 plain
func NewPasswordEncoder(name string) (PasswordEncoder, error) {
	switch name {
	case "", EncoderPlain:
		return PlainTextEncoder{}, nil
	case EncoderBcrypt:
		return BcryptEncoder{}, nil
	default:
		return nil, fmt.Errorf("unknown password encoder %q", name)
	}
}

// PlainTextEncoder 原樣儲存並以字串相等比對
type PlainTextEncoder struct{}

func (PlainTextEncoder) Encode(raw string) (string, error) { return raw, nil }

func (PlainTextEncoder) Matches(raw, encoded string) bool { return raw == encoded }

type BcryptEncoder struct{}

func (BcryptEncoder) Encode(raw string) (string, error) { return HashPassword(raw) }

func (BcryptEncoder) Matches(raw, encoded string) bool { return ComparePassword(encoded, raw) == nil }

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串
func HashPassword(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil，失敗則回傳錯誤
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}
