package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkanyika/shamba/internal/domain"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create registers a user and issues a fresh API key.
func (s *UserStore) Create(ctx context.Context, email string) (*domain.User, error) {
	id := uuid.NewString()
	apiKey := uuid.NewString()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, api_key) VALUES (?, ?, ?)
	`, id, email, apiKey)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.getBy(ctx, "id", id)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getBy(ctx, "id", id)
}

// GetByAPIKey resolves a bearer token to its user. Returns nil, nil when the
// key is unknown.
func (s *UserStore) GetByAPIKey(ctx context.Context, apiKey string) (*domain.User, error) {
	return s.getBy(ctx, "api_key", apiKey)
}

func (s *UserStore) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	u := &domain.User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, api_key, created_at FROM users WHERE `+column+` = ?
	`, value).Scan(&u.ID, &u.Email, &u.APIKey, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
