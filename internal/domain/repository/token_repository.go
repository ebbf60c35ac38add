package repository

import (
	"context"

	"socialnet/internal/domain/entity"
)

// TokenRepository records issued JWTs so the roles guard can consult them
// after signature verification fails.
type TokenRepository interface {
	Create(ctx context.Context, t *entity.Token) error
	// FindValid returns the record for token when it exists with
	// is_valid=true.
	FindValid(ctx context.Context, token string) (*entity.Token, error)
}
