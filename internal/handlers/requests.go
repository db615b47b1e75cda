package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"DEVLINK_BACK-END/internal/dto"
	"DEVLINK_BACK-END/internal/models"
	"DEVLINK_BACK-END/internal/services"
	"DEVLINK_BACK-END/internal/utils"
)

// RequestHandler handles sending and reviewing connection requests
type RequestHandler struct {
	conns *services.ConnectionService
}

func NewRequestHandler(conns *services.ConnectionService) *RequestHandler {
	return &RequestHandler{conns: conns}
}

// Send godoc
// @Summary      Send a connection request
// @Description  Creates a request in status interested or ignored. At most one request may exist between two users.
// @Tags         requests
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Param        status    path      string  true  "interested or ignored"  Enums(interested, ignored)
// @Param        toUserId  path      string  true  "Recipient id"
// @Success      200       {object}  dto.ConnectionRequestResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      401       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      409       {object}  dto.ErrorResponse
// @Router       /request/send/{status}/{toUserId} [post]
func (h *RequestHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	status := models.Status(chi.URLParam(r, "status"))
	toUserID, err := parseID(chi.URLParam(r, "toUserId"), "user id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	res, err := h.conns.Send(r.Context(), user, toUserID, status)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ConnectionRequestResponse{Message: res.Message, Data: res.Request})
}

// Review godoc
// @Summary      Review a connection request
// @Description  Accepts or rejects a pending request addressed to the caller
// @Tags         requests
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Param        status     path      string  true  "accepted or rejected"  Enums(accepted, rejected)
// @Param        requestId  path      string  true  "Request id"
// @Success      200        {object}  dto.ConnectionRequestResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      401        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /request/review/{status}/{requestId} [post]
func (h *RequestHandler) Review(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	status := models.Status(chi.URLParam(r, "status"))
	requestID, err := parseID(chi.URLParam(r, "requestId"), "request id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	req, err := h.conns.Review(r.Context(), user, requestID, status)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ConnectionRequestResponse{
		Message: "Connection request has been " + string(status),
		Data:    req,
	})
}
