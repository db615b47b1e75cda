package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"DEVLINK_BACK-END/internal/apperr"
	"DEVLINK_BACK-END/internal/models"
	"DEVLINK_BACK-END/internal/validation"
)

// SignupInput carries the fields accepted at account creation
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// GoogleIdentity is the verified identity returned by Google sign-in
type GoogleIdentity struct {
	Email      string
	GivenName  string
	FamilyName string
	Picture    string
}

// AuthService creates, authenticates and deletes accounts
type AuthService struct {
	users  UserRepository
	hasher *PasswordHasher
	now    func() time.Time

	// compared against when the email is unknown so both paths cost one bcrypt run
	dummyHash string
}

func NewAuthService(users UserRepository, hasher *PasswordHasher) (*AuthService, error) {
	dummy, err := hasher.Hash(rand.Text())
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	return &AuthService{users: users, hasher: hasher, now: utcNow, dummyHash: dummy}, nil
}

// Signup validates in, hashes the password and stores a new user.
// A taken email yields apperr.ErrConflict.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	email := validation.NormalizeEmail(in.Email)
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)

	if err := validation.SignUp(firstName, lastName, email, in.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		PhotoURL:     models.DefaultPhotoURL,
		About:        models.DefaultAbout,
		Skills:       []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("email " + email)
		}
		return nil, err
	}
	return user, nil
}

// Login returns the user whose email and password match. Unknown email and
// wrong password both yield apperr.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.hasher.Verify(s.dummyHash, password)
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, apperr.ErrInvalidCredentials
	}
	return user, nil
}

// DeleteUser removes the account and all of its connection requests.
func (s *AuthService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

// ChangePassword replaces the user's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, user *models.User, current, next string) error {
	if !s.hasher.Verify(user.PasswordHash, current) {
		return apperr.ErrInvalidCredentials
	}
	if err := validation.Password("newPassword", next); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = s.now()
	return s.users.UpdatePassword(ctx, user)
}

// LoginWithGoogle finds the account for a Google identity, creating it on
// first sign-in with an unusable random password.
func (s *AuthService) LoginWithGoogle(ctx context.Context, id GoogleIdentity) (*models.User, error) {
	email := validation.NormalizeEmail(id.Email)
	if err := validation.Email(email); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(rand.Text())
	if err != nil {
		return nil, err
	}

	firstName, lastName := googleNames(id, email)
	photo := models.DefaultPhotoURL
	if validation.PhotoURL(id.Picture) == nil {
		photo = id.Picture
	}

	now := s.now()
	user = &models.User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		PhotoURL:     photo,
		About:        models.DefaultAbout,
		Skills:       []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent first sign-in
		if errors.Is(err, apperr.ErrConflict) {
			return s.users.FindByEmail(ctx, email)
		}
		return nil, fmt.Errorf("create google user: %w", err)
	}
	return user, nil
}

// googleNames derives stored names that satisfy the signup rules. The given
// name is tried first, then the email local part, then models.DefaultFirstName.
func googleNames(id GoogleIdentity, email string) (string, string) {
	firstName := models.DefaultFirstName
	for _, candidate := range []string{id.GivenName, email[:strings.IndexByte(email, '@')]} {
		candidate = truncateRunes(strings.TrimSpace(candidate), validation.MaxNameLen)
		if validation.FirstName(candidate) == nil {
			firstName = candidate
			break
		}
	}
	return firstName, truncateRunes(strings.TrimSpace(id.FamilyName), validation.MaxNameLen)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}
