package application

import (
	"context"
	"errors"
	"net/url"

	"github.com/sirupsen/logrus"

	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
	"socialnet/internal/infrastructure/gcs"
	"socialnet/internal/infrastructure/search"
	"socialnet/pkg/apperr"
	"socialnet/pkg/helpers"
	"socialnet/pkg/listquery"
)

// UserService covers everything a logged-in user does to accounts: profile
// reads and updates, soft delete, profile media, friend requests, and the
// search index lookups.
type UserService struct {
	Users  repository.UserRepository
	Phone  *helpers.PhoneCipher
	Media  *gcs.MediaStore
	Index  *search.UserIndex
	Logger *logrus.Logger
}

func (s *UserService) getUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgUserNotFound)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}
	return u, nil
}

// CurrentUser returns the authenticated user's record.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	return s.getUser(ctx, userID)
}

// List runs the generic list query over users.
func (s *UserService) List(ctx context.Context, raw url.Values) ([]map[string]any, listquery.Page, error) {
	items, page, err := s.Users.List(ctx, raw)
	if err != nil {
		return nil, listquery.Page{}, apperr.Wrap(apperr.KindInternal, "failed to list users", err)
	}
	return items, page, nil
}

// Search queries the Elasticsearch users index.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	out, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "search failed", err)
	}
	return out, nil
}

// SoftDelete marks the account deleted. The record stays; the user drops out
// of login and the confirmation flag resets.
func (s *UserService) SoftDelete(ctx context.Context, userID string) error {
	if _, err := s.getUser(ctx, userID); err != nil {
		return err
	}
	if err := s.Users.SoftDelete(ctx, userID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to soft delete user", err)
	}
	_ = s.Index.Delete(ctx, userID)
	return nil
}

type UpdateProfileInput struct {
	Name  string
	Email string
	Phone string
	Age   int
}

// UpdateProfile applies the non-empty fields. A new email must be unused; a
// new phone is re-encrypted before it is stored.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Email != "" && in.Email != u.Email {
		if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
			return nil, apperr.Conflict("Email already in use")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to check email", err)
		}
		u.Email = in.Email
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Phone != "" {
		if s.Phone == nil {
			return nil, apperr.New(apperr.KindInternal, helpers.ErrPhoneCipherKeyMissing.Error())
		}
		enc, err := s.Phone.Encrypt(in.Phone)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to encrypt phone", err)
		}
		u.Phone = enc
	}
	if in.Age > 0 {
		u.Age = in.Age
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update user", err)
	}
	_ = s.Index.Index(ctx, u)
	return u, nil
}

// SetProfileImage uploads the new image and removes the previous object once
// the pointer flips.
func (s *UserService) SetProfileImage(ctx context.Context, userID string, up gcs.Upload) (entity.MediaAsset, error) {
	return s.setProfileAsset(ctx, userID, up, true)
}

// SetProfileCover does the same for the cover image.
func (s *UserService) SetProfileCover(ctx context.Context, userID string, up gcs.Upload) (entity.MediaAsset, error) {
	return s.setProfileAsset(ctx, userID, up, false)
}

func (s *UserService) setProfileAsset(ctx context.Context, userID string, up gcs.Upload, image bool) (entity.MediaAsset, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return entity.MediaAsset{}, err
	}
	asset, err := s.Media.Put(ctx, userID, gcs.KindImage, up)
	if err != nil {
		return entity.MediaAsset{}, apperr.Wrap(apperr.KindInternal, "failed to upload image", err)
	}

	var old *entity.MediaAsset
	if image {
		old = u.ProfileImage
		err = s.Users.SetProfileImage(ctx, userID, asset)
	} else {
		old = u.ProfileCover
		err = s.Users.SetProfileCover(ctx, userID, asset)
	}
	if err != nil {
		return entity.MediaAsset{}, apperr.Wrap(apperr.KindInternal, "failed to save image", err)
	}
	if old != nil {
		if err := s.Media.Remove(ctx, old.StorageID); err != nil {
			s.Logger.WithError(err).WithField("storage_id", old.StorageID).Warn("old profile asset cleanup failed")
		}
	}
	return asset, nil
}

// SendFriendRequest records a pending request from userID to targetID.
// Self-requests and duplicates are rejected.
func (s *UserService) SendFriendRequest(ctx context.Context, userID, targetID string) error {
	if userID == targetID {
		return apperr.NotFound("You cannot send a friend request to yourself")
	}
	if _, err := s.getUser(ctx, targetID); err != nil {
		return err
	}
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if u.HasFriendRequest(targetID) {
		return apperr.BadRequest("Friend request already sent")
	}
	if err := s.Users.AddFriendRequest(ctx, userID, targetID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to send friend request", err)
	}
	return nil
}

// CancelFriendRequest removes a pending request; cancelling one that does
// not exist is NotFound.
func (s *UserService) CancelFriendRequest(ctx context.Context, userID, targetID string) error {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if !u.HasFriendRequest(targetID) {
		return apperr.NotFound("Friend request not found")
	}
	if err := s.Users.RemoveFriendRequest(ctx, userID, targetID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to cancel friend request", err)
	}
	return nil
}
