// Package forms binds untrusted request fields into typed structs at the HTTP
// boundary. Identity fields are whitespace-trimmed; passwords are carried
// verbatim so hashing and comparison see exactly what the user typed.
package forms

import (
	"net/http"
	"strings"
)

type LoginForm struct {
	Username string
	Password string
}

type RegisterForm struct {
	Name       string
	Email      string
	Username   string
	Password   string
	RePassword string
}

// BindLogin reads the login form fields. Field names match the served form:
// "username" and "InputPassword".
func BindLogin(r *http.Request) LoginForm {
	return LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("InputPassword"),
	}
}

// BindRegister reads the registration form fields: "name", "InputEmail",
// "username", "InputPassword", "InputRePassword".
func BindRegister(r *http.Request) RegisterForm {
	return RegisterForm{
		Name:       strings.TrimSpace(r.PostFormValue("name")),
		Email:      strings.TrimSpace(r.PostFormValue("InputEmail")),
		Username:   strings.TrimSpace(r.PostFormValue("username")),
		Password:   r.PostFormValue("InputPassword"),
		RePassword: r.PostFormValue("InputRePassword"),
	}
}

// HasEmpty reports whether any required field is empty or whitespace-only.
func (f LoginForm) HasEmpty() bool {
	return f.Username == "" || strings.TrimSpace(f.Password) == ""
}

// HasEmpty reports whether any of the five required fields is empty or
// whitespace-only.
func (f RegisterForm) HasEmpty() bool {
	return f.Name == "" || f.Email == "" || f.Username == "" ||
		strings.TrimSpace(f.Password) == "" || strings.TrimSpace(f.RePassword) == ""
}

// ValidEmail is a minimal shape check: something before and after a single
// "@", with a dot somewhere in the domain part. The form also uses
// type="email", but the server does not trust the browser.
func ValidEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	domain := s[at+1:]
	if domain == "" || !strings.Contains(domain, ".") {
		return false
	}
	return !strings.ContainsAny(s, " \t")
}
