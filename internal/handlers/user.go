package handlers

import (
	"net/http"

	"DEVLINK_BACK-END/internal/dto"
	"DEVLINK_BACK-END/internal/services"
	"DEVLINK_BACK-END/internal/utils"
)

// UserHandler serves the caller's request inbox and connection list
type UserHandler struct {
	conns *services.ConnectionService
}

func NewUserHandler(conns *services.ConnectionService) *UserHandler {
	return &UserHandler{conns: conns}
}

// Received godoc
// @Summary      Pending requests received
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Success      200  {object}  dto.ReceivedRequestsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /user/request/received [get]
func (h *UserHandler) Received(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	requests, err := h.conns.ListReceived(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ReceivedRequestsResponse{Message: "Received requests", Data: requests})
}

// Connections godoc
// @Summary      Accepted connections
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Success      200  {object}  dto.ConnectionsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /user/connection [get]
func (h *UserHandler) Connections(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	peers, err := h.conns.ListConnections(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ConnectionsResponse{Message: "Connections", Data: peers})
}
