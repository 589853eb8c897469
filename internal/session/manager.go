// Package session owns the server-side session table. A session token is an
// HS256-signed JWT whose jti claim keys a stored Session record. The signature
// alone never grants access: Resolve requires the jti to still be present, so
// Destroy revokes a token that is otherwise cryptographically valid. Deleting
// the cookie and destroying the session are indistinguishable to the caller.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mhdreza10/quizauth/internal/models"
)

// ErrNoSession is returned when a token is absent, invalid, or destroyed.
var ErrNoSession = errors.New("no active session")

type Manager struct {
	secret   []byte
	mu       sync.RWMutex
	sessions map[string]models.Session // keyed by jti
}

// NewManager creates a session manager. secret signs session tokens and must
// be at least 32 bytes for HS256.
func NewManager(secret []byte) *Manager {
	if len(secret) < 32 {
		panic("session secret must be at least 32 bytes")
	}
	return &Manager{
		secret:   secret,
		sessions: make(map[string]models.Session),
	}
}

// Create mints a fresh token bound to username and stores the backing session.
func (m *Manager) Create(username string) (string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := jwt.MapClaims{
		"jti": jti,
		"sub": username,
		"iat": now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	m.mu.Lock()
	m.sessions[jti] = models.Session{Token: jti, Username: username, CreatedAt: now}
	m.mu.Unlock()

	return signed, nil
}

// Resolve returns the username bound to token, or false when the token is
// malformed, signed with the wrong key, or its session has been destroyed.
func (m *Manager) Resolve(token string) (string, bool) {
	jti, ok := m.verify(token)
	if !ok {
		return "", false
	}

	m.mu.RLock()
	sess, ok := m.sessions[jti]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	return sess.Username, true
}

// RequireActive is Resolve with the error taxonomy attached, for callers that
// gate protected resources.
func (m *Manager) RequireActive(token string) (string, error) {
	username, ok := m.Resolve(token)
	if !ok {
		return "", ErrNoSession
	}
	return username, nil
}

// Destroy removes the session behind token (logout). Destroying an unknown or
// invalid token is a no-op.
func (m *Manager) Destroy(token string) {
	jti, ok := m.verify(token)
	if !ok {
		return
	}
	m.mu.Lock()
	delete(m.sessions, jti)
	m.mu.Unlock()
}

// Active returns the number of live sessions.
func (m *Manager) Active() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) verify(token string) (string, bool) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	jti, ok := claims["jti"].(string)
	return jti, ok && jti != ""
}
