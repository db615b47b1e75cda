package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"DEVLINK_BACK-END/internal/apperr"
	"DEVLINK_BACK-END/internal/config"
	"DEVLINK_BACK-END/internal/middleware"
	"DEVLINK_BACK-END/internal/models"
	"DEVLINK_BACK-END/internal/utils"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}

// currentUser returns the user stored by the session guard. Routes that call
// it are always mounted behind the guard.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, apperr.ErrUnauthenticated)
		return nil, false
	}
	return user, true
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.InvalidArgument("invalid %s: %q", what, raw)
	}
	return id, nil
}

// setSessionCookie stores token in the auth cookie until expiresAt.
func setSessionCookie(w http.ResponseWriter, cfg *config.JWTConfig, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, cfg *config.JWTConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteNoneMode,
	})
}
