package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
)

const commentColumns = `id, comment_body, created_by, post_id, replies, likes, created_at, updated_at`

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func scanComment(row pgx.Row) (*entity.Comment, error) {
	c := &entity.Comment{}
	err := row.Scan(&c.ID, &c.Body, &c.CreatedBy, &c.PostID,
		&c.Replies, &c.Likes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (id, comment_body, created_by, post_id, replies, likes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, c.ID, c.Body, c.CreatedBy, c.PostID, orEmpty(c.Replies), orEmpty(c.Likes))

	return row.Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	return scanComment(row)
}

func (r *CommentRepository) GetAll(ctx context.Context) ([]*entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+commentColumns+` FROM comments ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	c.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE comments
		SET comment_body = $1, replies = $2, likes = $3, updated_at = $4
		WHERE id = $5
	`, c.Body, orEmpty(c.Replies), orEmpty(c.Likes), c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CommentRepository) UpdateBodyIfOwner(ctx context.Context, id, ownerID, body string) (*entity.Comment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE comments SET comment_body = $1, updated_at = now()
		WHERE id = $2 AND created_by = $3
		RETURNING `+commentColumns+`
	`, body, id, ownerID)
	c, err := scanComment(row)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return c, err
}

func (r *CommentRepository) DeleteIfOwner(ctx context.Context, id, ownerID string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *CommentRepository) DeleteByPostID(ctx context.Context, postID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, postID)
	return err
}

func (r *CommentRepository) FindIDsByPostID(ctx context.Context, postID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *CommentRepository) PushReply(ctx context.Context, commentID, replyID string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE comments SET replies = array_append(replies, $1::uuid), updated_at = now()
		WHERE id = $2
	`, replyID, commentID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
