package domain

import "time"

type User struct {
	ID           string
	Email        string // lower-cased, unique
	Username     string // alphanumeric, unique
	PasswordHash string // argon2id PHC string, never serialised outward
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the part of a User that is safe to hand to clients.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
