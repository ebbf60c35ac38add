package repository

import (
	"context"

	"socialnet/internal/domain/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetAll(ctx context.Context) ([]*entity.Comment, error)
	Update(ctx context.Context, c *entity.Comment) error
	// UpdateBodyIfOwner rewrites the body only when ownerID created the
	// comment; returns the updated comment or nil when no row matched.
	UpdateBodyIfOwner(ctx context.Context, id, ownerID, body string) (*entity.Comment, error)
	// DeleteIfOwner removes the comment only when ownerID created it;
	// reports whether a row was deleted.
	DeleteIfOwner(ctx context.Context, id, ownerID string) (bool, error)
	DeleteByPostID(ctx context.Context, postID string) error
	FindIDsByPostID(ctx context.Context, postID string) ([]string, error)
	// PushReply appends replyID to the comment's reply id list.
	PushReply(ctx context.Context, commentID, replyID string) error
}
