package api

import "net/http"

// ErrorDetail 一筆錯誤訊息；Field 為空代表一般錯誤
type ErrorDetail struct {
	Field   string `json:"field,omitempty" example:"username"`
	Message string `json:"message" example:"must be a valid e-mail address"`
}

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Path       string        `json:"path" example:"/api/v1/users"`
	Method     string        `json:"method" example:"POST"`
	Status     int           `json:"status" example:"422"`
	StatusText string        `json:"statusText" example:"Unprocessable Entity"`
	Message    string        `json:"message" example:"Invalid field(s)"`
	Errors     []ErrorDetail `json:"errors"`
}

// NewErrorResponse 組裝錯誤回應；details 為空時以 message 作為唯一一筆錯誤
func NewErrorResponse(path, method string, status int, message string, details []ErrorDetail) ErrorResponse {
	if len(details) == 0 {
		details = []ErrorDetail{{Message: message}}
	}
	return ErrorResponse{
		Path:       path,
		Method:     method,
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    message,
		Errors:     details,
	}
}
