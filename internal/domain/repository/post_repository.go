package repository

import (
	"context"
	"net/url"
	"time"

	"socialnet/internal/domain/entity"
	"socialnet/pkg/listquery"
)

type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id string) error
	// PushComment appends commentID to the post's comment id list.
	PushComment(ctx context.Context, postID, commentID string) error
	List(ctx context.Context, raw url.Values) ([]map[string]any, listquery.Page, error)
	// ListByDateRange returns posts with createdAt in [start, end).
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Post, error)
}
