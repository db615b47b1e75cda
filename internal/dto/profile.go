package dto

import "DEVLINK_BACK-END/internal/models"

// ProfileEditRequest documents the editable profile keys. The handler reads
// the body as a raw object so that only the keys present are changed.
type ProfileEditRequest struct {
	FirstName *string  `json:"firstName,omitempty"`
	LastName  *string  `json:"lastName,omitempty"`
	Age       *int     `json:"age,omitempty" minimum:"18"`
	Gender    *string  `json:"gender,omitempty" enums:"male,female,others"`
	PhotoURL  *string  `json:"photoUrl,omitempty"`
	About     *string  `json:"about,omitempty" maxLength:"500"`
	Skills    []string `json:"skills,omitempty" maxItems:"10"`
}

// ChangePasswordRequest represents the request payload for a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ProfileResponse carries the caller's own profile
type ProfileResponse struct {
	Message string       `json:"message,omitempty"`
	Data    *models.User `json:"data"`
}
