package services

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"DEVLINK_BACK-END/internal/apperr"
	"DEVLINK_BACK-END/internal/models"
	"DEVLINK_BACK-END/internal/validation"
)

// protectedFields may appear on a profile but never in an edit
var protectedFields = []string{"_id", "emailId", "password"}

// profileEditor decodes, validates and applies one editable field
type profileEditor struct {
	field string
	apply func(u *models.User, raw json.RawMessage) error
}

// editableFields is the allow-list for profile edits, applied in this order.
var editableFields = []profileEditor{
	{"firstName", func(u *models.User, raw json.RawMessage) error {
		v, err := decodeString("firstName", raw)
		if err != nil {
			return err
		}
		if err := validation.FirstName(v); err != nil {
			return err
		}
		u.FirstName = strings.TrimSpace(v)
		return nil
	}},
	{"lastName", func(u *models.User, raw json.RawMessage) error {
		v, err := decodeString("lastName", raw)
		if err != nil {
			return err
		}
		if err := validation.LastName(v); err != nil {
			return err
		}
		u.LastName = strings.TrimSpace(v)
		return nil
	}},
	{"age", func(u *models.User, raw json.RawMessage) error {
		if isNull(raw) {
			u.Age = nil
			return nil
		}
		var v int
		if err := json.Unmarshal(raw, &v); err != nil {
			return apperr.Field("age", "must be an integer")
		}
		if err := validation.Age(v); err != nil {
			return err
		}
		u.Age = &v
		return nil
	}},
	{"gender", func(u *models.User, raw json.RawMessage) error {
		if isNull(raw) {
			u.Gender = nil
			return nil
		}
		v, err := decodeString("gender", raw)
		if err != nil {
			return err
		}
		if err := validation.Gender(v); err != nil {
			return err
		}
		u.Gender = &v
		return nil
	}},
	{"photoUrl", func(u *models.User, raw json.RawMessage) error {
		v, err := decodeString("photoUrl", raw)
		if err != nil {
			return err
		}
		if err := validation.PhotoURL(v); err != nil {
			return err
		}
		u.PhotoURL = v
		return nil
	}},
	{"about", func(u *models.User, raw json.RawMessage) error {
		v, err := decodeString("about", raw)
		if err != nil {
			return err
		}
		if err := validation.About(v); err != nil {
			return err
		}
		u.About = v
		return nil
	}},
	{"skills", func(u *models.User, raw json.RawMessage) error {
		var v []string
		if isNull(raw) || json.Unmarshal(raw, &v) != nil {
			return apperr.Field("skills", "must be an array of strings")
		}
		if err := validation.Skills(v); err != nil {
			return err
		}
		u.Skills = v
		return nil
	}},
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeString(field string, raw json.RawMessage) (string, error) {
	var v string
	if isNull(raw) || json.Unmarshal(raw, &v) != nil {
		return "", apperr.Field(field, "must be a string")
	}
	return v, nil
}

// ProfileService reads and edits the caller's own profile
type ProfileService struct {
	users UserRepository
	now   func() time.Time
}

func NewProfileService(users UserRepository) *ProfileService {
	return &ProfileService{users: users, now: utcNow}
}

// View returns the full profile of id.
func (s *ProfileService) View(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// Edit applies the allow-listed keys of fields to user and persists the
// result. Protected keys fail the whole edit; unknown keys are ignored.
func (s *ProfileService) Edit(ctx context.Context, user *models.User, fields map[string]json.RawMessage) (*models.User, error) {
	for _, name := range protectedFields {
		if _, ok := fields[name]; ok {
			return nil, apperr.Field(name, "cannot be edited")
		}
	}

	updated := *user
	updated.Skills = slices.Clone(user.Skills)
	for _, ed := range editableFields {
		raw, ok := fields[ed.field]
		if !ok {
			continue
		}
		if err := ed.apply(&updated, raw); err != nil {
			return nil, err
		}
	}
	if updated.Skills == nil {
		updated.Skills = []string{}
	}
	updated.UpdatedAt = s.now()

	if err := s.users.UpdateProfile(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
