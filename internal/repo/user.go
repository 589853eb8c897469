package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/mhdreza10/quizauth/internal/models"
)

var (
	// ErrUserNotFound is returned when no user matches the given username.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when the username is already registered.
	ErrDuplicateUsername = errors.New("username already exists")
)

// CredentialStore is the storage contract for user records. Lookups are exact
// and case-sensitive. Create must enforce username uniqueness atomically.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, name, email, username, passwordHash string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// ==========================
// UserRepo (Postgres)
// ==========================
type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
// Uniqueness is enforced by the unique index on username; a concurrent
// duplicate insert surfaces as a 23505 and maps to ErrDuplicateUsername.
func (r *UserRepo) Create(ctx context.Context, name, email, username, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, username, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, username, password_hash
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, name, email, username, passwordHash).
		Scan(&user.ID, &user.Name, &user.Email, &user.Username, &user.PasswordHash)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Username
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, name, email, username, password_hash
		FROM users
		WHERE username = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Name, &user.Email, &user.Username, &user.PasswordHash)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Exists
// ==========================
func (r *UserRepo) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).
		Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, email, username, password_hash FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
