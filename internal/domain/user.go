package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Photo        string    `json:"photo"`
	Bio          string    `json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileSummary is the slice of a user profile attached to outbound
// payloads (likes received, matches, conversation lists).
type ProfileSummary struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Photo       string `json:"photo"`
	Bio         string `json:"bio"`
}

func (u *User) Summary() ProfileSummary {
	return ProfileSummary{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Photo:       u.Photo,
		Bio:         u.Bio,
	}
}
