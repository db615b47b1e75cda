package dto

import "DEVLINK_BACK-END/internal/models"

// SignupRequest represents the request payload for user registration
type SignupRequest struct {
	FirstName string `json:"firstName" example:"Alice"`
	LastName  string `json:"lastName" example:"Smith"`
	EmailID   string `json:"emailId" example:"alice@example.com"`
	Password  string `json:"password" example:"Str0ng!Pass"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	EmailID  string `json:"emailId" example:"alice@example.com"`
	Password string `json:"password" example:"Str0ng!Pass"`
}

// DeleteUserRequest identifies the account to delete
type DeleteUserRequest struct {
	UserID string `json:"userId" example:"7b0c1f0e-9a4e-4c1b-9a57-2f1f2c3d4e5f"`
}

// AuthResponse represents the response after signup or login
type AuthResponse struct {
	Message string       `json:"message"`
	Data    *models.User `json:"data"`
	Token   string       `json:"token"`
}

// MessageResponse is a response that only carries a message
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
