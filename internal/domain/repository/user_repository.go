package repository

import (
	"context"
	"net/url"

	"socialnet/internal/domain/entity"
	"socialnet/pkg/listquery"
)

// UserRepository defines the interface for user persistence. Field-level
// setters mirror the partial updates the services perform; Update rewrites
// the whole profile row.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error

	SetOTP(ctx context.Context, userID string, otp entity.OTP) error
	// SetOTPState writes the OTP together with the send counter.
	SetOTPState(ctx context.Context, userID string, otp entity.OTP, sendCount int) error
	// SwapOTPIfCode replaces the stored OTP only when the current code still
	// equals oldCode. Reports whether the swap happened.
	SwapOTPIfCode(ctx context.Context, userID, oldCode string, otp entity.OTP) (bool, error)
	ConfirmEmail(ctx context.Context, userID string, next entity.OTP) error

	SetStatus(ctx context.Context, userID string, status entity.Status) error
	SetPassword(ctx context.Context, userID, hash string) error
	// ResetPassword replaces the hash, rotates the OTP and zeroes the send
	// counter in one write.
	ResetPassword(ctx context.Context, userID, hash string, next entity.OTP) error
	SoftDelete(ctx context.Context, userID string) error

	SetProfileImage(ctx context.Context, userID string, asset entity.MediaAsset) error
	SetProfileCover(ctx context.Context, userID string, asset entity.MediaAsset) error

	AddFriendRequest(ctx context.Context, userID, targetID string) error
	RemoveFriendRequest(ctx context.Context, userID, targetID string) error

	ListUnconfirmed(ctx context.Context) ([]*entity.User, error)
	List(ctx context.Context, raw url.Values) ([]map[string]any, listquery.Page, error)
}
