package service

import "fmt"

// UsernameConflictError username 已被其他使用者使用
type UsernameConflictError struct {
	Username string
	Err      error
}

func (e *UsernameConflictError) Error() string {
	return fmt.Sprintf("Username '%s' is already in use.", e.Username)
}

func (e *UsernameConflictError) Unwrap() error { return e.Err }

// NotFoundError 找不到指定 id 的使用者
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User with id '%d' was not found.", e.ID)
}

type MismatchReason int

const (
	// MismatchConfirmation newPassword 與 confirmPassword 不一致
	MismatchConfirmation MismatchReason = iota + 1
	// MismatchCurrentPassword currentPassword 與儲存的密碼不符
	MismatchCurrentPassword
)

type PasswordMismatchError struct {
	Reason MismatchReason
}

func (e *PasswordMismatchError) Error() string {
	switch e.Reason {
	case MismatchConfirmation:
		return "Password confirmation does not match inputted password."
	case MismatchCurrentPassword:
		return "Wrong current password value."
	default:
		return "Password does not match."
	}
}
