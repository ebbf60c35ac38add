package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
)

type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Create(ctx context.Context, t *entity.Token) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tokens (id, token, user_id, is_valid)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, t.ID, t.Token, t.UserID, t.IsValid)

	return row.Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *TokenRepository) FindValid(ctx context.Context, token string) (*entity.Token, error) {
	t := &entity.Token{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, token, user_id, is_valid, created_at, updated_at
		FROM tokens
		WHERE token = $1 AND is_valid = TRUE
	`, token)

	if err := row.Scan(&t.ID, &t.Token, &t.UserID, &t.IsValid, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
