package application

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
	"socialnet/internal/infrastructure/gcs"
	"socialnet/pkg/apperr"
	"socialnet/pkg/listquery"
)

const (
	msgPostNotFound = "Post Not Found"

	dateLayout = "2006-01-02"
)

type PostService struct {
	Posts    repository.PostRepository
	Comments repository.CommentRepository
	Replies  repository.CommentReplyRepository
	Media    *gcs.MediaStore
	Logger   *logrus.Logger
}

type CreatePostInput struct {
	Content string
	Privacy entity.Privacy
	Images  []gcs.Upload
	Videos  []gcs.Upload
}

// Create uploads all media concurrently, then persists the post. At least
// one media file is required.
func (s *PostService) Create(ctx context.Context, userID string, in CreatePostInput) (*entity.Post, error) {
	if len(in.Images)+len(in.Videos) == 0 {
		return nil, apperr.BadRequest("At least one media file is required")
	}
	images, err := s.Media.PutAll(ctx, userID, gcs.KindImage, in.Images)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to upload images", err)
	}
	videos, err := s.Media.PutAll(ctx, userID, gcs.KindVideo, in.Videos)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to upload videos", err)
	}

	privacy := in.Privacy
	if privacy == "" {
		privacy = entity.PrivacyPublic
	}
	p := &entity.Post{
		Content:   in.Content,
		Images:    images,
		Videos:    videos,
		CreatedBy: userID,
		Privacy:   privacy,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create post", err)
	}
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgPostNotFound)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load post", err)
	}
	return p, nil
}

func (s *PostService) List(ctx context.Context, raw url.Values) ([]map[string]any, listquery.Page, error) {
	items, page, err := s.Posts.List(ctx, raw)
	if err != nil {
		return nil, listquery.Page{}, apperr.Wrap(apperr.KindInternal, "failed to list posts", err)
	}
	return items, page, nil
}

type UpdatePostInput struct {
	Content string
	Privacy entity.Privacy
	Images  []gcs.Upload
	Videos  []gcs.Upload
}

// Update is owner-only. When new media arrives the old objects are deleted
// in parallel after the replacements are uploaded.
func (s *PostService) Update(ctx context.Context, userID, postID string, in UpdatePostInput) (*entity.Post, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.CreatedBy != userID {
		return nil, apperr.Forbidden("You are not allowed to update this post")
	}

	if len(in.Images) > 0 {
		images, err := s.Media.PutAll(ctx, userID, gcs.KindImage, in.Images)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to upload images", err)
		}
		if err := s.Media.RemoveAll(ctx, p.Images); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to delete old images", err)
		}
		p.Images = images
	}
	if len(in.Videos) > 0 {
		videos, err := s.Media.PutAll(ctx, userID, gcs.KindVideo, in.Videos)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to upload videos", err)
		}
		if err := s.Media.RemoveAll(ctx, p.Videos); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to delete old videos", err)
		}
		p.Videos = videos
	}
	if in.Content != "" {
		p.Content = in.Content
	}
	if in.Privacy != "" {
		p.Privacy = in.Privacy
	}
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update post", err)
	}
	return p, nil
}

// Delete is owner-only and cascades: media objects go first (parallel,
// non-atomic), then the post row, its comments by post id, and the replies
// tied to those comments' ids.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if p.CreatedBy != userID {
		return apperr.Forbidden("You are not allowed to delete this post")
	}

	assets := append(append([]entity.MediaAsset{}, p.Images...), p.Videos...)
	if err := s.Media.RemoveAll(ctx, assets); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete post media", err)
	}

	commentIDs, err := s.Comments.FindIDsByPostID(ctx, postID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to collect comment ids", err)
	}
	if err := s.Posts.Delete(ctx, postID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete post", err)
	}
	if err := s.Comments.DeleteByPostID(ctx, postID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete comments", err)
	}
	if err := s.Replies.DeleteByCommentIDs(ctx, commentIDs); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete replies", err)
	}
	return nil
}

// ToggleLike flips the caller's like on the post and reports the new state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return false, err
	}
	liked := p.ToggleLike(userID)
	if err := s.Posts.Update(ctx, p); err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "failed to save like", err)
	}
	return liked, nil
}

// FilterByDate resolves a named range (Today, Yesterday, Last 7 Days,
// Last 30 Days) or an explicit start/end pair into [start, end) and lists
// the posts inside it.
func (s *PostService) FilterByDate(ctx context.Context, name, startStr, endStr string) ([]*entity.Post, error) {
	now := time.Now()
	day := 24 * time.Hour
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var start, end time.Time
	switch name {
	case "Today":
		start, end = today, today.Add(day)
	case "Yesterday":
		start, end = today.Add(-day), today
	case "Last 7 Days":
		start, end = today.Add(-6*day), today.Add(day)
	case "Last 30 Days":
		start, end = today.Add(-29*day), today.Add(day)
	case "", "Custom":
		if startStr == "" || endStr == "" {
			return nil, apperr.NotFound("Invalid date range")
		}
		from, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return nil, apperr.NotFound("Invalid date range")
		}
		to, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return nil, apperr.NotFound("Invalid date range")
		}
		if from.After(to) {
			return nil, apperr.BadRequest("Start date must be before end date")
		}
		start, end = from, to.Add(day)
	default:
		return nil, apperr.NotFound("Invalid date range")
	}

	posts, err := s.Posts.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list posts by date", err)
	}
	return posts, nil
}
