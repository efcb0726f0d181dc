package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds the output of the configured PasswordHasher, never the plain text.
type User struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
