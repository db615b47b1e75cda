package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"DEVLINK_BACK-END/internal/apperr"
	"DEVLINK_BACK-END/internal/config"
)

const sessionSubject = "session"

// JWTClaims represents the claims in a session token
type JWTClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service from the JWT configuration
func NewTokenService(cfg *config.JWTConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// TTL is the lifetime of every issued session token.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a session token for userID and returns it with its expiry.
func (s *TokenService) Issue(userID uuid.UUID) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := JWTClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionSubject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and expiry of a session token and returns the
// user id it carries. Every failure wraps apperr.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (uuid.UUID, error) {
	claims := &JWTClaims{}
	_, err := s.parse(tokenString, claims, sessionSubject)
	if err != nil {
		return uuid.Nil, err
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: missing user id", apperr.ErrInvalidToken)
	}
	return claims.UserID, nil
}

func (s *TokenService) parse(tokenString string, claims jwt.Claims, subject string) (*jwt.Token, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", apperr.ErrInvalidToken)
	}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(subject),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", apperr.ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, apperr.ErrInvalidToken
	}
	return token, nil
}
