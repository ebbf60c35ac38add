package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
	"socialnet/pkg/apperr"
)

const msgCommentNotFound = "Comment Not Found"

type CommentService struct {
	Comments repository.CommentRepository
	Replies  repository.CommentReplyRepository
	Posts    repository.PostRepository
	Logger   *logrus.Logger
}

// Create inserts the comment, then pushes its id onto the post. The two
// writes are sequential and unguarded; per-row atomicity is all the store
// gives us.
func (s *CommentService) Create(ctx context.Context, userID, postID, body string) (*entity.Comment, error) {
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgPostNotFound)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load post", err)
	}
	c := &entity.Comment{Body: body, CreatedBy: userID, PostID: postID}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create comment", err)
	}
	if err := s.Posts.PushComment(ctx, postID, c.ID); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to attach comment to post", err)
	}
	return c, nil
}

func (s *CommentService) Get(ctx context.Context, id string) (*entity.Comment, error) {
	c, err := s.Comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgCommentNotFound)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load comment", err)
	}
	return c, nil
}

func (s *CommentService) GetAll(ctx context.Context) ([]*entity.Comment, error) {
	comments, err := s.Comments.GetAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list comments", err)
	}
	return comments, nil
}

// Update rewrites the body through a conditional owner-scoped update; a miss
// (absent comment or wrong owner) is NotFound.
func (s *CommentService) Update(ctx context.Context, userID, id, body string) (*entity.Comment, error) {
	c, err := s.Comments.UpdateBodyIfOwner(ctx, id, userID, body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update comment", err)
	}
	if c == nil {
		return nil, apperr.NotFound(msgCommentNotFound)
	}
	return c, nil
}

// Delete removes the comment when the caller owns it. The follow-up reply
// cleanup filters replies by the comment id as if it were a reply primary
// key, so in practice it removes nothing; replies outlive their comment.
func (s *CommentService) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.Comments.DeleteIfOwner(ctx, id, userID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete comment", err)
	}
	if !ok {
		return apperr.NotFound(msgCommentNotFound)
	}
	if err := s.Replies.DeleteByID(ctx, id); err != nil {
		s.Logger.WithError(err).WithField("comment_id", id).Warn("reply cleanup failed")
	}
	return nil
}

// ToggleLike flips the caller's like on the comment.
func (s *CommentService) ToggleLike(ctx context.Context, userID, id string) (bool, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	liked := c.ToggleLike(userID)
	if err := s.Comments.Update(ctx, c); err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "failed to save like", err)
	}
	return liked, nil
}
