package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/issue-tracker-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when no user matches a login attempt.
// It deliberately does not distinguish unknown users from wrong passwords.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrDuplicateUsername is returned when creating a user whose username is
// already taken.
var ErrDuplicateUsername = errors.New("username already exists")

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	List() ([]models.User, error)
	Create(username, password, role string) (int64, error)
	Authenticate(username, password string) (models.User, error)
}

// UserService provides business logic for user account management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// List returns all user accounts in ascending id order. The password hash
// is excluded from the projection.
func (s *UserService) List() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, username, role FROM users ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Role); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Create creates a new user, hashing their password. A username collision
// yields ErrDuplicateUsername and leaves the table untouched.
func (s *UserService) Create(username, password, role string) (int64, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.Exec(
		"INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)",
		username, string(hashedPassword), role,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrDuplicateUsername
		}
		return 0, err
	}
	return res.LastInsertId()
}

// Authenticate verifies a username/password pair and returns the matching
// account without its password hash.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, password_hash, role FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't hand the hash to the caller
	user.PasswordHash = ""
	return user, nil
}
