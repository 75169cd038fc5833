package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	Register(ctx context.Context, username, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	List(ctx context.Context) ([]models.User, error)
}

// UserService provides the user directory and the registration and login
// workflows on top of it.
type UserService struct {
	db     *sql.DB
	issuer *auth.TokenIssuer
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, issuer *auth.TokenIssuer) *UserService {
	return &UserService{db: db, issuer: issuer}
}

// GetByEmail retrieves a single user by email, including the password hash.
func (s *UserService) GetByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, email, hashed_password, created_at FROM users WHERE email = ?", email)
	return scanUser(row)
}

// GetByUsername retrieves a single user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, email, hashed_password, created_at FROM users WHERE username = ?", username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Register creates a new user account. The email and username pre-checks
// give precise errors; the unique indexes remain the source of truth, so a
// concurrent registration that wins the race surfaces as ErrDuplicateUser
// rather than a server fault.
func (s *UserService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	if _, err := s.GetByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return models.User{}, err
	}

	if _, err := s.GetByUsername(ctx, username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return models.User{}, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users(username, email, hashed_password) VALUES(?, ?, ?)",
		username, email, hashedPassword)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("failed to read user id: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, email, hashed_password, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

// Login verifies a user's credentials and issues a bearer token. An
// unknown email and a wrong password return the same error so callers
// cannot tell which check failed.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(password, user.HashedPassword) {
		return "", ErrInvalidCredentials
	}

	return s.issuer.Issue(user.Email)
}

// List returns every registered user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, username, email, created_at FROM users")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// isUniqueViolation reports whether err is a sqlite unique-index rejection.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
