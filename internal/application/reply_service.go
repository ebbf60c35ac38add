package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
	"socialnet/pkg/apperr"
)

const msgReplyNotFound = "Reply Not Found"

type ReplyService struct {
	Replies  repository.CommentReplyRepository
	Comments repository.CommentRepository
	Posts    repository.PostRepository
	Logger   *logrus.Logger
}

// Create inserts the reply under its post and comment, then pushes its id
// onto the comment's reply list.
func (s *ReplyService) Create(ctx context.Context, userID, postID, commentID, body string) (*entity.CommentReply, error) {
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgPostNotFound)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load post", err)
	}
	if _, err := s.Comments.GetByID(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgCommentNotFound)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load comment", err)
	}

	rep := &entity.CommentReply{Body: body, CreatedBy: userID, PostID: postID, CommentID: commentID}
	if err := s.Replies.Create(ctx, rep); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create reply", err)
	}
	if err := s.Comments.PushReply(ctx, commentID, rep.ID); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to attach reply to comment", err)
	}
	return rep, nil
}

func (s *ReplyService) Get(ctx context.Context, id string) (*entity.CommentReply, error) {
	rep, err := s.Replies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgReplyNotFound)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load reply", err)
	}
	return rep, nil
}

func (s *ReplyService) GetAll(ctx context.Context) ([]*entity.CommentReply, error) {
	replies, err := s.Replies.GetAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list replies", err)
	}
	return replies, nil
}

// Update rewrites the body; non-owners get the same NotFound as an absent
// reply.
func (s *ReplyService) Update(ctx context.Context, userID, id, body string) (*entity.CommentReply, error) {
	rep, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep.CreatedBy != userID {
		return nil, apperr.NotFound(msgReplyNotFound)
	}
	rep.Body = body
	if err := s.Replies.Update(ctx, rep); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update reply", err)
	}
	return rep, nil
}

// Delete removes the reply when the caller owns it.
func (s *ReplyService) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.Replies.DeleteIfOwner(ctx, id, userID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete reply", err)
	}
	if !ok {
		return apperr.NotFound(msgReplyNotFound)
	}
	return nil
}

// ToggleLike flips the caller's like on the reply.
func (s *ReplyService) ToggleLike(ctx context.Context, userID, id string) (bool, error) {
	rep, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	liked := rep.ToggleLike(userID)
	if err := s.Replies.Update(ctx, rep); err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "failed to save like", err)
	}
	return liked, nil
}
