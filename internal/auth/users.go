package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/campusmate/internal/rbac"
)

var (
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStore keeps accounts in the users table.
type UserStore struct {
	db   *sql.DB
	cost int
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db, cost: bcrypt.DefaultCost}
}

// Create registers a student. Emails are unique case-insensitively.
func (s *UserStore) Create(ctx context.Context, name, email, password string) (User, error) {
	email = normalizeEmail(email)
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email=$1`, email).Scan(&exists)
	if err != nil {
		return User{}, err
	}
	if exists > 0 {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Role:      rbac.RoleStudent,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, pass_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Name, u.Email, string(hash), u.Role, u.CreatedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

// Authenticate returns the user for a matching email and password.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (User, error) {
	var (
		u       User
		hash    string
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, pass_hash, role, created_at FROM users WHERE email=$1`,
		normalizeEmail(email),
	).Scan(&u.ID, &u.Name, &u.Email, &hash, &u.Role, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	u.CreatedAt = time.Unix(created, 0).UTC()
	return u, nil
}

// ChangePassword replaces the hash after checking the old password.
func (s *UserStore) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	var stored string
	err := s.db.QueryRowContext(ctx, `SELECT pass_hash FROM users WHERE id=$1`, id).Scan(&stored)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE users SET pass_hash=$1 WHERE id=$2`, string(hash), id)
	return err
}

// SetRole changes the role of the account registered under email.
func (s *UserStore) SetRole(ctx context.Context, email, role string) error {
	if !rbac.KnownRole(role) {
		return fmt.Errorf("auth: unknown role %q", role)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE users SET role=$1 WHERE email=$2`, role, normalizeEmail(email))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite
		strings.Contains(msg, "duplicate key value") // postgres
}
