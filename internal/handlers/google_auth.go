package handlers

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"DEVLINK_BACK-END/internal/apperr"
	"DEVLINK_BACK-END/internal/config"
	"DEVLINK_BACK-END/internal/dto"
	"DEVLINK_BACK-END/internal/middleware"
	"DEVLINK_BACK-END/internal/services"
	"DEVLINK_BACK-END/internal/utils"
)

const (
	stateCookieName = "oauth_state"
	googleAuthPath  = "/auth/google"
)

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	auth         *services.AuthService
	tokens       *middleware.TokenService
	cookie       *config.JWTConfig
	oauth2Config *oauth2.Config
	enabled      bool

	// fetchUser reads the Google profile behind an access token
	fetchUser func(ctx context.Context, ts oauth2.TokenSource) (services.GoogleIdentity, error)
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(auth *services.AuthService, tokens *middleware.TokenService, cfg *config.Config) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.GoogleOAuth.ClientID,
		ClientSecret: cfg.GoogleOAuth.ClientSecret,
		RedirectURL:  cfg.GoogleOAuth.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &GoogleAuthHandler{
		auth:         auth,
		tokens:       tokens,
		cookie:       &cfg.JWT,
		oauth2Config: oauth2Config,
		enabled:      cfg.IsGoogleOAuthConfigured(),
		fetchUser:    getGoogleUserInfo,
	}
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Returns the Google consent URL and sets a short-lived state cookie
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.GoogleLoginResponse "Google OAuth URL"
// @Failure 503 {object} dto.ErrorResponse "Google sign-in not configured"
// @Router /auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.enabled {
		utils.WriteErrorResponse(w, http.StatusServiceUnavailable, "Unavailable", "Google sign-in is not configured")
		return
	}

	// Generate state parameter for CSRF protection
	state, expiresAt, err := h.tokens.IssueState()
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     googleAuthPath,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSONResponse(w, http.StatusOK, dto.GoogleLoginResponse{
		AuthURL: h.oauth2Config.AuthCodeURL(state),
	})
}

// GoogleCallback handles Google OAuth callback
// @Summary Google OAuth callback
// @Description Exchanges the authorization code, signs the user in (creating the account on first use) and sets the session cookie
// @Tags authentication
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State parameter for CSRF protection"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 503 {object} dto.ErrorResponse "Google sign-in not configured"
// @Router /auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if !h.enabled {
		utils.WriteErrorResponse(w, http.StatusServiceUnavailable, "Unavailable", "Google sign-in is not configured")
		return
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing authorization code", "Authorization code is required")
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value != state || h.tokens.VerifyState(state) != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid state", "OAuth state is missing or does not match")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Path: googleAuthPath, MaxAge: -1, Expires: time.Unix(0, 0)})

	// Exchange authorization code for token
	token, err := h.oauth2Config.Exchange(r.Context(), code)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid authorization code", "code exchange failed")
		return
	}

	identity, err := h.fetchUser(r.Context(), h.oauth2Config.TokenSource(r.Context(), token))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadGateway, "Failed to get user info", "could not read Google profile")
		return
	}
	if identity.Email == "" {
		utils.WriteError(w, apperr.Field("emailId", "Google account has no verified email"))
		return
	}

	user, err := h.auth.LoginWithGoogle(r.Context(), identity)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	jwtToken, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	setSessionCookie(w, h.cookie, jwtToken, expiresAt)

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Message: "Logged in successfully",
		Data:    user,
		Token:   jwtToken,
	})
}

// getGoogleUserInfo fetches user information from Google. Unverified
// addresses are dropped.
func getGoogleUserInfo(ctx context.Context, ts oauth2.TokenSource) (services.GoogleIdentity, error) {
	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return services.GoogleIdentity{}, err
	}

	userInfo, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return services.GoogleIdentity{}, err
	}

	identity := services.GoogleIdentity{
		GivenName:  userInfo.GivenName,
		FamilyName: userInfo.FamilyName,
		Picture:    userInfo.Picture,
	}
	if userInfo.VerifiedEmail != nil && *userInfo.VerifiedEmail {
		identity.Email = userInfo.Email
	}
	return identity, nil
}
