package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"DEVLINK_BACK-END/internal/config"
	"DEVLINK_BACK-END/internal/dto"
	"DEVLINK_BACK-END/internal/services"
)

func newGoogleHandler(t *testing.T, h *harness) *GoogleAuthHandler {
	t.Helper()
	h.cfg.GoogleOAuth = config.GoogleOAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:3000/auth/google/callback",
	}

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.PostForm.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"google-access","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(tokenServer.Close)

	g := NewGoogleAuthHandler(h.auth, h.tokens, h.cfg)
	g.oauth2Config.Endpoint = oauth2.Endpoint{
		AuthURL:   "https://accounts.example.com/auth",
		TokenURL:  tokenServer.URL,
		AuthStyle: oauth2.AuthStyleInParams,
	}
	g.fetchUser = func(ctx context.Context, ts oauth2.TokenSource) (services.GoogleIdentity, error) {
		tok, err := ts.Token()
		if err != nil {
			return services.GoogleIdentity{}, err
		}
		if tok.AccessToken != "google-access" {
			return services.GoogleIdentity{}, errors.New("unexpected access token")
		}
		return services.GoogleIdentity{Email: "Grace@Example.com", GivenName: "Grace", FamilyName: "Hopper"}, nil
	}
	return g
}

// startLogin runs GoogleLogin and returns the issued state cookie.
func startLogin(t *testing.T, g *GoogleAuthHandler) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	g.GoogleLogin(rec, httptest.NewRequest(http.MethodGet, "/auth/google/login", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[dto.GoogleLoginResponse](t, rec)
	authURL, err := url.Parse(body.AuthURL)
	require.NoError(t, err)
	assert.Equal(t, "client-id", authURL.Query().Get("client_id"))

	state := findCookie(rec, stateCookieName)
	require.NotNil(t, state)
	assert.Equal(t, state.Value, authURL.Query().Get("state"))
	assert.True(t, state.HttpOnly)
	return state
}

func callback(g *GoogleAuthHandler, code, state string, cookie *http.Cookie) *httptest.ResponseRecorder {
	q := url.Values{}
	if code != "" {
		q.Set("code", code)
	}
	q.Set("state", state)
	r := httptest.NewRequest(http.MethodGet, "/auth/google/callback?"+q.Encode(), nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	g.GoogleCallback(rec, r)
	return rec
}

func TestGoogleAuth_Disabled(t *testing.T) {
	h := newHarness(t)
	g := NewGoogleAuthHandler(h.auth, h.tokens, h.cfg)

	rec := httptest.NewRecorder()
	g.GoogleLogin(rec, httptest.NewRequest(http.MethodGet, "/auth/google/login", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	g.GoogleCallback(rec, httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=x&state=y", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGoogleAuth_CallbackCreatesUser(t *testing.T) {
	h := newHarness(t)
	g := newGoogleHandler(t, h)
	state := startLogin(t, g)

	rec := callback(g, "good-code", state.Value, state)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[dto.AuthResponse](t, rec)
	assert.Equal(t, "grace@example.com", body.Data.Email)
	assert.Equal(t, "Grace", body.Data.FirstName)

	session := findCookie(rec, "token")
	require.NotNil(t, session)
	id, err := h.tokens.Verify(session.Value)
	require.NoError(t, err)
	assert.Equal(t, body.Data.ID, id)

	cleared := findCookie(rec, stateCookieName)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)

	// second sign-in reuses the account
	state = startLogin(t, g)
	rec = callback(g, "good-code", state.Value, state)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body.Data.ID, decode[dto.AuthResponse](t, rec).Data.ID)
}

func TestGoogleAuth_CallbackRejects(t *testing.T) {
	h := newHarness(t)
	g := newGoogleHandler(t, h)
	state := startLogin(t, g)

	forged, _, err := h.tokens.Issue(h.signup(t, "Mallory", "mallory@example.com").ID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		code   string
		state  string
		cookie *http.Cookie
		status int
	}{
		{"missing code", "", state.Value, state, http.StatusBadRequest},
		{"missing cookie", "good-code", state.Value, nil, http.StatusBadRequest},
		{"state mismatch", "good-code", "other", state, http.StatusBadRequest},
		{"session token as state", "good-code", forged, &http.Cookie{Name: stateCookieName, Value: forged}, http.StatusBadRequest},
		{"bad code", "bad-code", state.Value, state, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := callback(g, tt.code, tt.state, tt.cookie)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Nil(t, findCookie(rec, "token"))
		})
	}
}

func TestGoogleAuth_ProfileFetchFails(t *testing.T) {
	h := newHarness(t)
	g := newGoogleHandler(t, h)
	g.fetchUser = func(context.Context, oauth2.TokenSource) (services.GoogleIdentity, error) {
		return services.GoogleIdentity{}, errors.New("userinfo unavailable")
	}
	state := startLogin(t, g)

	rec := callback(g, "good-code", state.Value, state)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	g.fetchUser = func(context.Context, oauth2.TokenSource) (services.GoogleIdentity, error) {
		return services.GoogleIdentity{GivenName: "NoMail"}, nil
	}
	rec = callback(g, "good-code", state.Value, state)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
