package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mhdreza10/quizauth/internal/forms"
	"github.com/mhdreza10/quizauth/internal/metrics"
	"github.com/mhdreza10/quizauth/internal/models"
	"github.com/mhdreza10/quizauth/internal/ratelimit"
	"github.com/mhdreza10/quizauth/internal/repo"
	"github.com/mhdreza10/quizauth/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a well-formed bcrypt hash compared against when the username
// does not resolve, so the unknown-user path costs the same as a real verify.
// Its preimage is never accepted: the compare result is discarded.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// ==========================
// Auth Service
// ==========================
type Service struct {
	store    repo.CredentialStore
	sessions *session.Manager
	limiter  *ratelimit.FailedLogins
}

func NewService(store repo.CredentialStore, sessions *session.Manager, limiter *ratelimit.FailedLogins) *Service {
	return &Service{store: store, sessions: sessions, limiter: limiter}
}

// ==========================
// Login
// ==========================
// Login validates the attempt and returns a session token. Both "no such
// user" and "wrong password" come back as the identical ErrInvalidCredentials
// after an equivalent-cost bcrypt comparison.
func (s *Service) Login(ctx context.Context, f forms.LoginForm) (string, error) {
	if f.HasEmpty() {
		metrics.RecordLogin(metrics.OutcomeInvalid)
		return "", ErrEmptyField
	}

	if s.limiter != nil && !s.limiter.Allow(f.Username) {
		metrics.RecordLogin(metrics.OutcomeRateLimited)
		slog.Warn("login rate limited", "username", f.Username)
		return "", ErrTooManyAttempts
	}

	user, err := s.store.GetByUsername(ctx, f.Username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			// Burn the same bcrypt cost as the wrong-password path.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(f.Password))
			s.recordFailure(f.Username, "unknown_user")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(f.Password)); err != nil {
		s.recordFailure(f.Username, "wrong_password")
		return "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(user.Username)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	if s.limiter != nil {
		s.limiter.Reset(f.Username)
	}
	metrics.RecordLogin(metrics.OutcomeSuccess)
	metrics.SetActiveSessions(s.sessions.Active())
	slog.Info("login succeeded", "username", user.Username)
	return token, nil
}

// ==========================
// Register
// ==========================
// Register validates the request and creates the user. Uniqueness is checked
// against the username field and enforced atomically by the store, and the
// submitted name is persisted as-is. The new account is not auto-logged-in.
func (s *Service) Register(ctx context.Context, f forms.RegisterForm) (*models.User, error) {
	if f.HasEmpty() {
		metrics.RecordRegistration(metrics.OutcomeInvalid)
		return nil, ErrEmptyField
	}

	if f.Password != f.RePassword {
		metrics.RecordRegistration(metrics.OutcomeInvalid)
		return nil, ErrPasswordMismatch
	}

	if !forms.ValidEmail(f.Email) {
		metrics.RecordRegistration(metrics.OutcomeInvalid)
		return nil, ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			metrics.RecordRegistration(metrics.OutcomeInvalid)
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.Create(ctx, f.Name, f.Email, f.Username, string(hash))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			metrics.RecordRegistration(metrics.OutcomeFailure)
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RecordRegistration(metrics.OutcomeSuccess)
	slog.Info("user registered", "username", user.Username, "id", user.ID)
	return user, nil
}

// ==========================
// Logout
// ==========================
func (s *Service) Logout(token string) {
	s.sessions.Destroy(token)
	metrics.SetActiveSessions(s.sessions.Active())
}

func (s *Service) recordFailure(username, reason string) {
	if s.limiter != nil {
		s.limiter.Fail(username)
	}
	metrics.RecordLogin(metrics.OutcomeFailure)
	slog.Info("login failed", "username", username, "reason", reason)
}
