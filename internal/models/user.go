package models

import "time"

// Role is a user's privilege level.
type Role string

const (
	RoleBasic     Role = "basic"
	RoleGameAdder Role = "gameadder"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBasic, RoleGameAdder, RoleAdmin:
		return true
	}
	return false
}

// User represents a user in the system. Password holds the bcrypt hash and is
// persisted with the record, so a User must never be sent to clients directly.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar"`
	AvatarURL string    `json:"avatarUrl"`
	Banner    string    `json:"banner"`
	Bio       string    `json:"bio"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"created_at"`

	// SessionKey is embedded in every token issued for this account.
	SessionKey string `json:"session_key,omitempty"`
}

func (u User) Key() int { return u.ID }

// PublicUser is the view of a user that is safe to return from the API.
type PublicUser struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar"`
	AvatarURL string    `json:"avatarUrl"`
	Banner    string    `json:"banner"`
	Bio       string    `json:"bio"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Avatar:    u.Avatar,
		AvatarURL: u.AvatarURL,
		Banner:    u.Banner,
		Bio:       u.Bio,
		Theme:     u.Theme,
		CreatedAt: u.CreatedAt,
	}
}
