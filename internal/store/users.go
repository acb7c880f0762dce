package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// User is one registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	LastLogin    time.Time `json:"lastLogin,omitempty"`
	IsActive     bool      `json:"isActive"`
}

// CreateUser inserts a new account with a pre-hashed password.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash string) (*User, error) {
	id := uuid.New()
	const q = `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	var createdAt pgtype.Timestamptz
	if err := s.pool.QueryRow(ctx, q, toPgUUID(id.String()), username, email, passwordHash).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("store: create user %s: %w", username, err)
	}
	return &User{
		ID:           id.String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt.Time,
		IsActive:     true,
	}, nil
}

// GetUserByUsername looks up an account, active or not.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	const q = `
		SELECT id, username, email, password_hash, created_at, last_login, is_active
		FROM users WHERE username = $1`

	row := s.pool.QueryRow(ctx, q, username)
	return scanUser(row)
}

// TouchLastLogin records a successful login.
func (s *Store) TouchLastLogin(ctx context.Context, id string) error {
	const q = `UPDATE users SET last_login = now() WHERE id = $1`
	if _, err := s.pool.Exec(ctx, q, toPgUUID(id)); err != nil {
		return fmt.Errorf("store: touch last login: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var (
		id        pgtype.UUID
		u         User
		createdAt pgtype.Timestamptz
		lastLogin pgtype.Timestamptz
	)
	err := row.Scan(&id, &u.Username, &u.Email, &u.PasswordHash, &createdAt, &lastLogin, &u.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan user: %w", err)
	}
	u.ID = uuidToString(id)
	u.CreatedAt = createdAt.Time
	if lastLogin.Valid {
		u.LastLogin = lastLogin.Time
	}
	return &u, nil
}

// Helper functions for type conversion

func toPgUUID(s string) pgtype.UUID {
	if s == "" {
		return pgtype.UUID{Valid: false}
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func uuidToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}
