package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=100,username" example:"tod@email.com"`
	Password string `json:"password" validate:"required,password" example:"123456"`
}
