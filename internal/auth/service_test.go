package auth

import (
	"context"
	"testing"
	"time"

	"github.com/mhdreza10/quizauth/internal/forms"
	"github.com/mhdreza10/quizauth/internal/models"
	"github.com/mhdreza10/quizauth/internal/ratelimit"
	"github.com/mhdreza10/quizauth/internal/repo"
	"github.com/mhdreza10/quizauth/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// countingStore wraps a CredentialStore and counts lookups, so tests can
// assert that invalid input never reaches storage.
type countingStore struct {
	repo.CredentialStore
	lookups int
}

func (c *countingStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	c.lookups++
	return c.CredentialStore.GetByUsername(ctx, username)
}

func newService(t *testing.T, limiter *ratelimit.FailedLogins) (*Service, *countingStore) {
	t.Helper()
	store := &countingStore{CredentialStore: repo.NewMemoryStore()}
	sessions := session.NewManager([]byte(testSecret))
	return NewService(store, sessions, limiter), store
}

func register(t *testing.T, s *Service, name, email, username, password string) *models.User {
	t.Helper()
	user, err := s.Register(context.Background(), forms.RegisterForm{
		Name: name, Email: email, Username: username,
		Password: password, RePassword: password,
	})
	require.NoError(t, err)
	return user
}

func TestLogin_Success(t *testing.T) {
	s, _ := newService(t, nil)
	register(t, s, "Irul", "irul@example.com", "irul", "irul123")

	token, err := s.Login(context.Background(), forms.LoginForm{Username: "irul", Password: "irul123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	s, _ := newService(t, nil)
	register(t, s, "Irul", "irul@example.com", "irul", "irul123")

	_, err := s.Login(context.Background(), forms.LoginForm{Username: "irul", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUserSameErrorAsWrongPassword(t *testing.T) {
	s, _ := newService(t, nil)
	register(t, s, "Irul", "irul@example.com", "irul", "irul123")

	_, unknownErr := s.Login(context.Background(), forms.LoginForm{Username: "nobody", Password: "x"})
	_, wrongErr := s.Login(context.Background(), forms.LoginForm{Username: "irul", Password: "wrong"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	// Identical observable error for both paths: no account enumeration.
	assert.Equal(t, wrongErr, unknownErr)
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
}

func TestLogin_EmptyFieldsRejectedBeforeLookup(t *testing.T) {
	s, store := newService(t, nil)
	register(t, s, "Irul", "irul@example.com", "irul", "irul123")
	store.lookups = 0

	cases := []forms.LoginForm{
		{Username: "", Password: "x"},
		{Username: "irul", Password: ""},
		{Username: "irul", Password: "   "},
		{Username: "", Password: ""},
	}
	for _, f := range cases {
		_, err := s.Login(context.Background(), f)
		assert.ErrorIs(t, err, ErrEmptyField)
	}
	assert.Zero(t, store.lookups, "empty input must never reach the store")
}

func TestLogin_SQLInjectionPayloadsDoNotAuthenticate(t *testing.T) {
	s, _ := newService(t, nil)
	register(t, s, "Irul", "irul@example.com", "irul", "irul123")

	payloads := []string{`' OR '1'='1`, `'; DROP TABLE users;--`, `' OR 1=1 --`}
	for _, p := range payloads {
		_, err := s.Login(context.Background(), forms.LoginForm{Username: p, Password: "anypassword"})
		assert.ErrorIs(t, err, ErrInvalidCredentials, "payload %q", p)
	}

	// The stored account is untouched.
	_, err := s.Login(context.Background(), forms.LoginForm{Username: "irul", Password: "irul123"})
	assert.NoError(t, err)
}

func TestLogin_RateLimited(t *testing.T) {
	limiter := ratelimit.New(rate.Every(time.Hour), 3)
	s, _ := newService(t, limiter)
	register(t, s, "Irul", "irul@example.com", "irul", "irul123")

	for i := 0; i < 3; i++ {
		_, err := s.Login(context.Background(), forms.LoginForm{Username: "irul", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// Window exhausted: even the correct password is refused now.
	_, err := s.Login(context.Background(), forms.LoginForm{Username: "irul", Password: "irul123"})
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	// Other usernames are unaffected.
	register(t, s, "Other", "other@example.com", "other", "pw12345")
	_, err = s.Login(context.Background(), forms.LoginForm{Username: "other", Password: "pw12345"})
	assert.NoError(t, err)
}

func TestLogin_SuccessResetsLimiter(t *testing.T) {
	limiter := ratelimit.New(rate.Every(time.Hour), 3)
	s, _ := newService(t, limiter)
	register(t, s, "Irul", "irul@example.com", "irul", "irul123")

	for i := 0; i < 2; i++ {
		_, err := s.Login(context.Background(), forms.LoginForm{Username: "irul", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err := s.Login(context.Background(), forms.LoginForm{Username: "irul", Password: "irul123"})
	require.NoError(t, err)

	// The window restarted: two more failures are tolerated again.
	for i := 0; i < 2; i++ {
		_, err := s.Login(context.Background(), forms.LoginForm{Username: "irul", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestRegister_Success(t *testing.T) {
	s, _ := newService(t, nil)

	user := register(t, s, "Muhammad Reza", "reza@example.com", "mhdreza10", "SecurePass123!")
	assert.Equal(t, "mhdreza10", user.Username)
	assert.Equal(t, "Muhammad Reza", user.Name, "submitted name must be persisted")
	assert.Equal(t, "reza@example.com", user.Email)
	assert.NotEqual(t, "SecurePass123!", user.PasswordHash, "password must never be stored in clear")
	assert.NotEmpty(t, user.PasswordHash)
}

func TestRegister_DoesNotAutoAuthenticate(t *testing.T) {
	s, _ := newService(t, nil)
	sessions := session.NewManager([]byte(testSecret))
	s.sessions = sessions

	register(t, s, "Irul", "irul@example.com", "irul", "irul123")
	assert.Zero(t, sessions.Active(), "registration must not mint a session")
}

func TestRegister_EmptyFields(t *testing.T) {
	s, _ := newService(t, nil)

	base := forms.RegisterForm{
		Name: "Test", Email: "t@test.com", Username: "testuser",
		Password: "pw123456", RePassword: "pw123456",
	}
	blank := func(mutate func(*forms.RegisterForm)) forms.RegisterForm {
		f := base
		mutate(&f)
		return f
	}

	cases := []forms.RegisterForm{
		blank(func(f *forms.RegisterForm) { f.Name = "" }),
		blank(func(f *forms.RegisterForm) { f.Email = "" }),
		blank(func(f *forms.RegisterForm) { f.Username = "" }),
		blank(func(f *forms.RegisterForm) { f.Password = "" }),
		blank(func(f *forms.RegisterForm) { f.RePassword = "  " }),
	}
	for i, f := range cases {
		_, err := s.Register(context.Background(), f)
		assert.ErrorIs(t, err, ErrEmptyField, "case %d", i)
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	s, _ := newService(t, nil)

	_, err := s.Register(context.Background(), forms.RegisterForm{
		Name: "Test", Email: "t@test.com", Username: "testuser",
		Password: "p1", RePassword: "p2",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	// Mismatch must never create the account.
	_, err = s.Login(context.Background(), forms.LoginForm{Username: "testuser", Password: "p1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s, _ := newService(t, nil)
	register(t, s, "Irul", "irul@example.com", "irul", "irul123")

	_, err := s.Register(context.Background(), forms.RegisterForm{
		Name: "Someone Else", Email: "else@example.com", Username: "irul",
		Password: "pw123456", RePassword: "pw123456",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_UniquenessChecksUsernameNotName(t *testing.T) {
	s, _ := newService(t, nil)
	register(t, s, "Irul", "irul@example.com", "irul", "irul123")

	// A name colliding with an existing username is fine; only the username
	// field participates in the uniqueness check.
	user, err := s.Register(context.Background(), forms.RegisterForm{
		Name: "irul", Email: "u@test.com", Username: "brandnewname",
		Password: "pw123456", RePassword: "pw123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "brandnewname", user.Username)
	assert.Equal(t, "irul", user.Name)
}

func TestRegister_InvalidEmail(t *testing.T) {
	s, _ := newService(t, nil)

	_, err := s.Register(context.Background(), forms.RegisterForm{
		Name: "Test", Email: "not_an_email_format", Username: "testuser",
		Password: "pw123456", RePassword: "pw123456",
	})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegister_PasswordTooLong(t *testing.T) {
	s, _ := newService(t, nil)

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	_, err := s.Register(context.Background(), forms.RegisterForm{
		Name: "Test", Email: "t@test.com", Username: "testuser",
		Password: string(long), RePassword: string(long),
	})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestLogout_DestroysSession(t *testing.T) {
	s, _ := newService(t, nil)
	register(t, s, "Irul", "irul@example.com", "irul", "irul123")

	token, err := s.Login(context.Background(), forms.LoginForm{Username: "irul", Password: "irul123"})
	require.NoError(t, err)

	_, ok := s.sessions.Resolve(token)
	require.True(t, ok)

	s.Logout(token)
	_, ok = s.sessions.Resolve(token)
	assert.False(t, ok, "destroyed session must not resolve")
}
