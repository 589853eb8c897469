// Package auth implements login and registration against a CredentialStore.
package auth

import "errors"

// Every error here is user-facing and recovered locally; anything else that
// escapes the service is a server fault. ErrInvalidCredentials deliberately
// covers both unknown username and wrong password.
var (
	ErrEmptyField         = errors.New("all fields are required and must not be empty")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrTooManyAttempts    = errors.New("too many failed attempts, please try again later")
)
