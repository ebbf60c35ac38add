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

const replyColumns = `id, reply_body, created_by, post_id, comment_id, replies, likes, created_at, updated_at`

type CommentReplyRepository struct {
	pool *pgxpool.Pool
}

func NewCommentReplyRepository(pool *pgxpool.Pool) *CommentReplyRepository {
	return &CommentReplyRepository{pool: pool}
}

func scanReply(row pgx.Row) (*entity.CommentReply, error) {
	rep := &entity.CommentReply{}
	err := row.Scan(&rep.ID, &rep.Body, &rep.CreatedBy, &rep.PostID, &rep.CommentID,
		&rep.Replies, &rep.Likes, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rep, nil
}

func (r *CommentReplyRepository) Create(ctx context.Context, rep *entity.CommentReply) error {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comment_replies (id, reply_body, created_by, post_id, comment_id, replies, likes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, rep.ID, rep.Body, rep.CreatedBy, rep.PostID, rep.CommentID,
		orEmpty(rep.Replies), orEmpty(rep.Likes))

	return row.Scan(&rep.CreatedAt, &rep.UpdatedAt)
}

func (r *CommentReplyRepository) GetByID(ctx context.Context, id string) (*entity.CommentReply, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+replyColumns+` FROM comment_replies WHERE id = $1`, id)
	return scanReply(row)
}

func (r *CommentReplyRepository) GetAll(ctx context.Context) ([]*entity.CommentReply, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+replyColumns+` FROM comment_replies ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var replies []*entity.CommentReply
	for rows.Next() {
		rep, err := scanReply(rows)
		if err != nil {
			return nil, err
		}
		replies = append(replies, rep)
	}
	return replies, rows.Err()
}

func (r *CommentReplyRepository) Update(ctx context.Context, rep *entity.CommentReply) error {
	rep.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE comment_replies
		SET reply_body = $1, replies = $2, likes = $3, updated_at = $4
		WHERE id = $5
	`, rep.Body, orEmpty(rep.Replies), orEmpty(rep.Likes), rep.UpdatedAt, rep.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CommentReplyRepository) DeleteIfOwner(ctx context.Context, id, ownerID string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM comment_replies WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *CommentReplyRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM comment_replies WHERE id = $1`, id)
	return err
}

func (r *CommentReplyRepository) DeleteByCommentIDs(ctx context.Context, commentIDs []string) error {
	if len(commentIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM comment_replies WHERE comment_id = ANY($1)`, commentIDs)
	return err
}

var _ repository.CommentReplyRepository = (*CommentReplyRepository)(nil)
