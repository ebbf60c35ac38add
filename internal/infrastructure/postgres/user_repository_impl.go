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

const userColumns = `id, name, first_name, last_name, email, password, phone, age,
	confirm_email, is_deleted, role, status, otp_code, otp_expires_at, otp_send_count,
	posts, friend_requests, friends, profile_image, profile_cover, created_at, updated_at`

// userListColumns is everything list endpoints may project, filter, sort or
// search on. Credentials and OTP state are deliberately absent.
var userListColumns = []string{
	"id", "name", "first_name", "last_name", "email", "age",
	"confirm_email", "is_deleted", "role", "status", "created_at", "updated_at",
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var expires *time.Time
	err := row.Scan(&u.ID, &u.Name, &u.FirstName, &u.LastName, &u.Email, &u.Password,
		&u.Phone, &u.Age, &u.ConfirmEmail, &u.IsDeleted, &u.Role, &u.Status,
		&u.OTP.Code, &expires, &u.OTPSendCount,
		&u.Posts, &u.FriendRequests, &u.Friends,
		&u.ProfileImage, &u.ProfileCover, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if expires != nil {
		u.OTP.ExpiresAt = *expires
	}
	return u, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.SplitName()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, first_name, last_name, email, password, phone, age,
			confirm_email, is_deleted, role, status, otp_code, otp_expires_at, otp_send_count,
			posts, friend_requests, friends, profile_image, profile_cover)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING created_at, updated_at
	`, u.ID, u.Name, u.FirstName, u.LastName, u.Email, u.Password, u.Phone, u.Age,
		u.ConfirmEmail, u.IsDeleted, u.Role, u.Status, u.OTP.Code, nullTime(u.OTP.ExpiresAt), u.OTPSendCount,
		orEmpty(u.Posts), orEmpty(u.FriendRequests), orEmpty(u.Friends), u.ProfileImage, u.ProfileCover)

	return row.Scan(&u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.SplitName()
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, first_name = $2, last_name = $3, email = $4, phone = $5, age = $6,
			role = $7, status = $8, updated_at = $9
		WHERE id = $10
	`, u.Name, u.FirstName, u.LastName, u.Email, u.Phone, u.Age, u.Role, u.Status, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetOTP(ctx context.Context, userID string, otp entity.OTP) error {
	return r.exec(ctx, `
		UPDATE users SET otp_code = $1, otp_expires_at = $2, updated_at = now()
		WHERE id = $3
	`, otp.Code, nullTime(otp.ExpiresAt), userID)
}

func (r *UserRepository) SetOTPState(ctx context.Context, userID string, otp entity.OTP, sendCount int) error {
	return r.exec(ctx, `
		UPDATE users SET otp_code = $1, otp_expires_at = $2, otp_send_count = $3, updated_at = now()
		WHERE id = $4
	`, otp.Code, nullTime(otp.ExpiresAt), sendCount, userID)
}

func (r *UserRepository) SwapOTPIfCode(ctx context.Context, userID, oldCode string, otp entity.OTP) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET otp_code = $1, otp_expires_at = $2, updated_at = now()
		WHERE id = $3 AND otp_code = $4
	`, otp.Code, nullTime(otp.ExpiresAt), userID, oldCode)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *UserRepository) ConfirmEmail(ctx context.Context, userID string, next entity.OTP) error {
	return r.exec(ctx, `
		UPDATE users SET confirm_email = TRUE, otp_code = $1, otp_expires_at = $2, updated_at = now()
		WHERE id = $3
	`, next.Code, nullTime(next.ExpiresAt), userID)
}

func (r *UserRepository) SetStatus(ctx context.Context, userID string, status entity.Status) error {
	return r.exec(ctx, `UPDATE users SET status = $1, updated_at = now() WHERE id = $2`, status, userID)
}

func (r *UserRepository) SetPassword(ctx context.Context, userID, hash string) error {
	return r.exec(ctx, `UPDATE users SET password = $1, updated_at = now() WHERE id = $2`, hash, userID)
}

func (r *UserRepository) ResetPassword(ctx context.Context, userID, hash string, next entity.OTP) error {
	return r.exec(ctx, `
		UPDATE users
		SET password = $1, otp_code = $2, otp_expires_at = $3, otp_send_count = 0, updated_at = now()
		WHERE id = $4
	`, hash, next.Code, nullTime(next.ExpiresAt), userID)
}

func (r *UserRepository) SoftDelete(ctx context.Context, userID string) error {
	return r.exec(ctx, `
		UPDATE users SET is_deleted = TRUE, confirm_email = FALSE, status = $1, updated_at = now()
		WHERE id = $2
	`, entity.StatusSoftDeleted, userID)
}

func (r *UserRepository) SetProfileImage(ctx context.Context, userID string, asset entity.MediaAsset) error {
	return r.exec(ctx, `UPDATE users SET profile_image = $1, updated_at = now() WHERE id = $2`, asset, userID)
}

func (r *UserRepository) SetProfileCover(ctx context.Context, userID string, asset entity.MediaAsset) error {
	return r.exec(ctx, `UPDATE users SET profile_cover = $1, updated_at = now() WHERE id = $2`, asset, userID)
}

func (r *UserRepository) AddFriendRequest(ctx context.Context, userID, targetID string) error {
	return r.exec(ctx, `
		UPDATE users SET friend_requests = array_append(friend_requests, $1::uuid), updated_at = now()
		WHERE id = $2
	`, targetID, userID)
}

func (r *UserRepository) RemoveFriendRequest(ctx context.Context, userID, targetID string) error {
	return r.exec(ctx, `
		UPDATE users SET friend_requests = array_remove(friend_requests, $1::uuid), updated_at = now()
		WHERE id = $2
	`, targetID, userID)
}

func (r *UserRepository) ListUnconfirmed(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE confirm_email = FALSE AND is_deleted = FALSE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) List(ctx context.Context, raw url.Values) ([]map[string]any, listquery.Page, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, listquery.Page{}, err
	}

	q := listquery.New("users", raw, userListColumns...).
		Paginate(total).
		Filter().
		Sort().
		Search("name", "email", "first_name", "last_name").
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

func (r *UserRepository) exec(ctx context.Context, stmt string, args ...any) error {
	res, err := r.pool.Exec(ctx, stmt, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
