package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"DEVLINK_BACK-END/internal/apperr"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var fe *apperr.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	return fe.Field
}

func TestSignUp(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		email     string
		password  string
		wantField string
	}{
		{"valid", "Alice", "Smith", "a@x.com", "Str0ng!Pass", ""},
		{"missing first name", "  ", "Smith", "a@x.com", "Str0ng!Pass", "firstName"},
		{"short first name", "Al", "", "a@x.com", "Str0ng!Pass", "firstName"},
		{"long last name", "Alice", strings.Repeat("x", 51), "a@x.com", "Str0ng!Pass", "lastName"},
		{"missing email", "Alice", "", "", "Str0ng!Pass", "emailId"},
		{"bad email", "Alice", "", "not-an-email", "Str0ng!Pass", "emailId"},
		{"display name email", "Alice", "", "Alice <a@x.com>", "Str0ng!Pass", "emailId"},
		{"no tld", "Alice", "", "a@localhost", "Str0ng!Pass", "emailId"},
		{"missing password", "Alice", "", "a@x.com", "", "password"},
		{"short password", "Alice", "", "a@x.com", "S0!a", "password"},
		{"no symbol", "Alice", "", "a@x.com", "Str0ngPass", "password"},
		{"no upper", "Alice", "", "a@x.com", "str0ng!pass", "password"},
		{"no digit", "Alice", "", "a@x.com", "Strong!Pass", "password"},
		{"too long", "Alice", "", "a@x.com", "S0!" + strings.Repeat("a", 72), "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SignUp(tt.firstName, tt.lastName, tt.email, tt.password)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, tt.wantField, fieldOf(t, err))
		})
	}
}

func TestProfileFields(t *testing.T) {
	assert.NoError(t, Age(18))
	assert.Equal(t, "age", fieldOf(t, Age(17)))

	assert.NoError(t, Gender("others"))
	assert.Equal(t, "gender", fieldOf(t, Gender("Male")))

	assert.NoError(t, PhotoURL("https://cdn.example.com/me.png"))
	assert.Equal(t, "photoUrl", fieldOf(t, PhotoURL("/relative.png")))
	assert.Equal(t, "photoUrl", fieldOf(t, PhotoURL("ftp://host/x.png")))

	assert.NoError(t, About("hello"))
	assert.Equal(t, "about", fieldOf(t, About(strings.Repeat("a", 501))))

	assert.NoError(t, Skills([]string{"go", "sql"}))
	assert.Equal(t, "skills", fieldOf(t, Skills(make([]string, 11))))
	assert.Equal(t, "skills", fieldOf(t, Skills([]string{"go", " "})))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
}
