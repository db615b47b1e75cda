package models

import (
	"time"

	"github.com/google/uuid"
)

// Defaults applied to new accounts
const (
	DefaultPhotoURL  = "https://geographyandyou.com/images/user-profile.png"
	DefaultAbout     = "This is a default about of the user!"
	DefaultFirstName = "Developer"
)

// User represents a registered member
type User struct {
	ID           uuid.UUID `json:"_id" db:"id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"emailId" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	Age          *int      `json:"age,omitempty" db:"age"`
	Gender       *string   `json:"gender,omitempty" db:"gender"`
	PhotoURL     string    `json:"photoUrl" db:"photo_url"`
	About        string    `json:"about" db:"about"`
	Skills       []string  `json:"skills" db:"skills"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// PublicProfile is the subset of a User that other members may see
type PublicProfile struct {
	ID        uuid.UUID `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	PhotoURL  string    `json:"photoUrl"`
	Age       *int      `json:"age,omitempty"`
	Gender    *string   `json:"gender,omitempty"`
	About     string    `json:"about"`
	Skills    []string  `json:"skills"`
}

// Public projects the user onto the fields safe to share.
func (u *User) Public() PublicProfile {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return PublicProfile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		PhotoURL:  u.PhotoURL,
		Age:       u.Age,
		Gender:    u.Gender,
		About:     u.About,
		Skills:    skills,
	}
}
