package models

import "time"

type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Session is a server-side session record. Token is the session's unique
// identifier (the jti claim of the signed token), not the signed token the
// browser holds.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
}
