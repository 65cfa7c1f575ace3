package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User holds authentication credentials. Everything user-facing lives on the
// Profile row sharing the same id.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Profile struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	PhoneNumber       string    `json:"phone_number"`
	Address           string    `json:"address"`
	PreferredLanguage string    `json:"preferred_language"`
	Role              string    `json:"role"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProfileInput carries owner-editable profile fields.
type ProfileInput struct {
	Username          string `json:"username"`
	PhoneNumber       string `json:"phone_number"`
	Address           string `json:"address"`
	PreferredLanguage string `json:"preferred_language"`
}
