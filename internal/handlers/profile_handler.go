package handlers

import (
	"encoding/json"
	"net/http"

	"DEVLINK_BACK-END/internal/dto"
	"DEVLINK_BACK-END/internal/services"
	"DEVLINK_BACK-END/internal/utils"
)

type ProfileHandler struct {
	profiles *services.ProfileService
	auth     *services.AuthService
}

func NewProfileHandler(profiles *services.ProfileService, auth *services.AuthService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, auth: auth}
}

// View godoc
// @Summary      View own profile
// @Description  Returns the signed-in user's profile, including email
// @Tags         profile
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Success      200  {object}  dto.ProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /profile/view [get]
func (h *ProfileHandler) View(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.View(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileResponse{Data: profile})
}

// Edit godoc
// @Summary      Edit own profile
// @Description  Updates the allow-listed keys present in the body. emailId, password and _id are rejected; other unknown keys are ignored.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Param        payload  body      dto.ProfileEditRequest  true  "Fields to change"
// @Success      200      {object}  dto.ProfileResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      401      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /profile/edit [patch]
func (h *ProfileHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var fields map[string]json.RawMessage
	if !decodeJSON(w, r, &fields) {
		return
	}

	updated, err := h.profiles.Edit(r.Context(), user, fields)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileResponse{
		Message: updated.FirstName + " Your Profile Edit Successfully",
		Data:    updated,
	})
}

// ChangePassword godoc
// @Summary      Change password
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Param        payload  body      dto.ChangePasswordRequest  true  "Current and new password"
// @Success      200      {object}  dto.MessageResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      401      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /profile/password [patch]
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.auth.ChangePassword(r.Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}
