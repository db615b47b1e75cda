package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DEVLINK_BACK-END/internal/apperr"
	"DEVLINK_BACK-END/internal/dto"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"field error", apperr.Field("emailId", "invalid email address"), http.StatusBadRequest},
		{"invalid argument", apperr.InvalidArgument("Invalid status type: %s", "maybe"), http.StatusBadRequest},
		{"conflict", apperr.Conflict("connection request"), http.StatusConflict},
		{"not found", apperr.NotFound("user"), http.StatusNotFound},
		{"bad credentials", apperr.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", fmt.Errorf("%w: token expired", apperr.ErrInvalidToken), http.StatusUnauthorized},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, title := StatusFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, title)
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, apperr.NotFound("connection request"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not found", body.Error)
	assert.Equal(t, "connection request not found", body.Message)
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("pq: password authentication failed for user postgres"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "postgres")
	assert.Contains(t, rec.Body.String(), "something went wrong")
}
