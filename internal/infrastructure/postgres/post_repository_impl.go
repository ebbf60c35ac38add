package postgres

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
	"socialnet/pkg/listquery"
)

const postColumns = `id, content, images, videos, likes, created_by, comments, privacy, created_at, updated_at`

var postListColumns = []string{
	"id", "content", "images", "videos", "likes", "created_by",
	"comments", "privacy", "created_at", "updated_at",
}

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	err := row.Scan(&p.ID, &p.Content, &p.Images, &p.Videos, &p.Likes,
		&p.CreatedBy, &p.Comments, &p.Privacy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func orEmptyAssets(a []entity.MediaAsset) []entity.MediaAsset {
	if a == nil {
		return []entity.MediaAsset{}
	}
	return a
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (id, content, images, videos, likes, created_by, comments, privacy)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, p.ID, p.Content, orEmptyAssets(p.Images), orEmptyAssets(p.Videos),
		orEmpty(p.Likes), p.CreatedBy, orEmpty(p.Comments), p.Privacy)

	return row.Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	return scanPost(row)
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET content = $1, images = $2, videos = $3, likes = $4, comments = $5, privacy = $6, updated_at = $7
		WHERE id = $8
	`, p.Content, orEmptyAssets(p.Images), orEmptyAssets(p.Videos),
		orEmpty(p.Likes), orEmpty(p.Comments), p.Privacy, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) PushComment(ctx context.Context, postID, commentID string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE posts SET comments = array_append(comments, $1::uuid), updated_at = now()
		WHERE id = $2
	`, commentID, postID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) List(ctx context.Context, raw url.Values) ([]map[string]any, listquery.Page, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, listquery.Page{}, err
	}

	q := listquery.New("posts", raw, postListColumns...).
		Paginate(total).
		Filter().
		Sort().
		Search("content").
		Select()

	stmt, args := q.SQL()
	rows, err := r.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, listquery.Page{}, err
	}
	items, err := rowsToMaps(rows)
	if err != nil {
		return nil, listquery.Page{}, err
	}
	return items, q.Page(), nil
}

func (r *PostRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+` FROM posts
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*entity.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

var _ repository.PostRepository = (*PostRepository)(nil)
