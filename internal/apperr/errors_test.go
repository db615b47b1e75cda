package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldError_IsValidation(t *testing.T) {
	err := Field("emailId", "invalid email address")

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, "emailId: invalid email address", err.Error())

	var fe *FieldError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, "emailId", fe.Field)
}

func TestInvalidTokenIsUnauthenticated(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidToken, ErrUnauthenticated)
}

func TestWrappers(t *testing.T) {
	assert.ErrorIs(t, InvalidArgument("Invalid status type: %s", "foo"), ErrInvalidArgument)
	assert.Equal(t, "invalid argument: Invalid status type: foo", InvalidArgument("Invalid status type: %s", "foo").Error())
	assert.ErrorIs(t, NotFound("user"), ErrNotFound)
	assert.Equal(t, "user not found", NotFound("user").Error())
	assert.ErrorIs(t, Conflict("Connection Request Already Exists!!"), ErrConflict)
}
