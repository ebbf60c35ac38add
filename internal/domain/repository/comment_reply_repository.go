package repository

import (
	"context"

	"socialnet/internal/domain/entity"
)

type CommentReplyRepository interface {
	Create(ctx context.Context, r *entity.CommentReply) error
	GetByID(ctx context.Context, id string) (*entity.CommentReply, error)
	GetAll(ctx context.Context) ([]*entity.CommentReply, error)
	Update(ctx context.Context, r *entity.CommentReply) error
	DeleteIfOwner(ctx context.Context, id, ownerID string) (bool, error)
	// DeleteByID deletes the reply whose primary key equals id.
	DeleteByID(ctx context.Context, id string) error
	DeleteByCommentIDs(ctx context.Context, commentIDs []string) error
}
