package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"DEVLINK_BACK-END/internal/apperr"
	"DEVLINK_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a dto.ErrorResponse with the given status
func WriteErrorResponse(w http.ResponseWriter, status int, errMsg, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errMsg, Message: message})
}

// WriteError maps a domain error onto its HTTP status. Errors outside the
// apperr taxonomy become a 500 without the internal detail.
func WriteError(w http.ResponseWriter, err error) {
	status, title := StatusFor(err)
	if status == http.StatusInternalServerError {
		WriteErrorResponse(w, status, title, "something went wrong")
		return
	}
	WriteErrorResponse(w, status, title, err.Error())
}

// StatusFor returns the HTTP status and short title for err.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, "Validation failed"
	case errors.Is(err, apperr.ErrInvalidArgument):
		return http.StatusBadRequest, "Invalid argument"
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, "Already exists"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthorized"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
