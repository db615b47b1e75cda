package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"DEVLINK_BACK-END/internal/apperr"
	"DEVLINK_BACK-END/internal/config"
	"DEVLINK_BACK-END/internal/dto"
	"DEVLINK_BACK-END/internal/middleware"
	"DEVLINK_BACK-END/internal/services"
	"DEVLINK_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	auth   *services.AuthService
	tokens *middleware.TokenService
	cookie *config.JWTConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(auth *services.AuthService, tokens *middleware.TokenService, cookie *config.JWTConfig) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, cookie: cookie}
}

// Signup handles user registration
// @Summary Register a new user
// @Description Create a new account and start a session cookie
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "User registration data"
// @Success 201 {object} dto.AuthResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.auth.Signup(r.Context(), services.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.EmailID,
		Password:  req.Password,
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	setSessionCookie(w, h.cookie, token, expiresAt)

	utils.WriteJSONResponse(w, http.StatusCreated, dto.AuthResponse{
		Message: "User Added successfully!",
		Data:    user,
		Token:   token,
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password and start a session cookie
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Validate required fields
	if req.EmailID == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "emailId and password are required")
		return
	}

	user, err := h.auth.Login(r.Context(), req.EmailID, req.Password)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	setSessionCookie(w, h.cookie, token, expiresAt)

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Message: "Logged in successfully",
		Data:    user,
		Token:   token,
	})
}

// Logout clears the session cookie
// @Summary Logout user
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.MessageResponse "Logged out"
// @Router /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.cookie)
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "logout successfull"})
}

// DeleteUser deletes an account by id
// @Summary Delete user
// @Description Delete a user and every connection request touching them
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.DeleteUserRequest true "User to delete"
// @Success 200 {object} dto.MessageResponse "User deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid user id"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /user [delete]
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := uuid.Parse(req.UserID)
	if err != nil {
		utils.WriteError(w, apperr.Field("userId", "must be a valid id"))
		return
	}

	if err := h.auth.DeleteUser(r.Context(), id); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}
