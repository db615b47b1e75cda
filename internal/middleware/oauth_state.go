package middleware

import (
	"crypto/rand"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	stateSubject = "oauth_state"
	stateTTL     = 10 * time.Minute
)

// StateClaims represents the claims of an OAuth state token
type StateClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// IssueState generates a short-lived signed state value for an OAuth
// authorization round trip.
func (s *TokenService) IssueState() (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(stateTTL)

	claims := &StateClaims{
		Nonce: rand.Text(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   stateSubject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyState checks a state value produced by IssueState. Session tokens
// are not accepted as state and vice versa.
func (s *TokenService) VerifyState(state string) error {
	_, err := s.parse(state, &StateClaims{}, stateSubject)
	return err
}
