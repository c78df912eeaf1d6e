package api

// swagger:model api.UpdatePasswordRequest
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,password" example:"123456"`
	NewPassword     string `json:"newPassword" validate:"required,password" example:"654321"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,password" example:"654321"`
}
