package models

// OperatorRequest represents the incoming JSON payload for operator registration/login
type OperatorRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PasswordChangeRequest carries the new password of the authenticated operator
type PasswordChangeRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// OperatorResponse represents the outgoing JSON response
type OperatorResponse struct {
	Token   string `json:"token,omitempty"`
	Message string `json:"message"`
}
