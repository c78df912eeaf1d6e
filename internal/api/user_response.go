package api

import "parking-spot/internal/model"

// UserResponse 對外的使用者表示，不含密碼，role 去除 ROLE_ 前綴
// swagger:model api.UserResponse
type UserResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"tod@email.com"`
	Role     string `json:"role" example:"CLIENT"`
}

func ToUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role.Name(),
	}
}

func ToUserResponses(users []model.User) []UserResponse {
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, ToUserResponse(u))
	}
	return resp
}
