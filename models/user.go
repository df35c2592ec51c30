package models

import "time"

// User represents an account entity used for authentication.
// PasswordHash must always be a bcrypt digest, never plaintext; it is
// excluded from JSON so it cannot leak through API responses.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Login is the unique login identifier used during authentication.
	Login string `json:"login"`

	// Password carries the plaintext credential on inbound auth requests
	// only. It is never persisted.
	Password string `json:"password,omitempty"`

	// PasswordHash is the stored bcrypt digest of Password.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with the
// User model.
func (u User) TableName() string {
	return "users"
}
