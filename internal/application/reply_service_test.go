package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/internal/domain/entity"
	"socialnet/pkg/apperr"
)

func newTestReplyService(posts *fakePostRepo, comments *fakeCommentRepo, replies *fakeReplyRepo) *ReplyService {
	return &ReplyService{Replies: replies, Comments: comments, Posts: posts, Logger: testLogger()}
}

func TestReplyCreate(t *testing.T) {
	posts := newFakePostRepo()
	comments := newFakeCommentRepo()
	replies := newFakeReplyRepo()
	p := posts.add(&entity.Post{Content: "hello", CreatedBy: "user-1"})
	c := comments.add(&entity.Comment{Body: "first", CreatedBy: "user-2", PostID: p.ID})
	svc := newTestReplyService(posts, comments, replies)
	ctx := context.Background()

	rep, err := svc.Create(ctx, "user-3", p.ID, c.ID, "replying")
	require.NoError(t, err)
	assert.Equal(t, c.ID, rep.CommentID)
	assert.Equal(t, p.ID, rep.PostID)

	// The reply id is pushed onto the comment.
	got, err := comments.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{rep.ID}, got.Replies)
}

func TestReplyCreateMissingParents(t *testing.T) {
	posts := newFakePostRepo()
	comments := newFakeCommentRepo()
	p := posts.add(&entity.Post{Content: "hello", CreatedBy: "user-1"})
	svc := newTestReplyService(posts, comments, newFakeReplyRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", "missing", "whatever", "body")
	require.Error(t, err)
	assert.Equal(t, msgPostNotFound, apperr.Message(err))

	_, err = svc.Create(ctx, "user-1", p.ID, "missing", "body")
	require.Error(t, err)
	assert.Equal(t, msgCommentNotFound, apperr.Message(err))
}

func TestReplyUpdateOwnerOnly(t *testing.T) {
	replies := newFakeReplyRepo()
	r := replies.add(&entity.CommentReply{Body: "orig", CreatedBy: "user-1", PostID: "post-1", CommentID: "comment-1"})
	svc := newTestReplyService(newFakePostRepo(), newFakeCommentRepo(), replies)
	ctx := context.Background()

	got, err := svc.Update(ctx, "user-1", r.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Body)

	_, err = svc.Update(ctx, "user-2", r.ID, "hijack")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, msgReplyNotFound, apperr.Message(err))
}

func TestReplyDelete(t *testing.T) {
	replies := newFakeReplyRepo()
	r := replies.add(&entity.CommentReply{Body: "orig", CreatedBy: "user-1", PostID: "post-1", CommentID: "comment-1"})
	svc := newTestReplyService(newFakePostRepo(), newFakeCommentRepo(), replies)
	ctx := context.Background()

	err := svc.Delete(ctx, "user-2", r.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	require.NoError(t, svc.Delete(ctx, "user-1", r.ID))
	_, err = replies.GetByID(ctx, r.ID)
	assert.Error(t, err)
}

func TestReplyToggleLike(t *testing.T) {
	replies := newFakeReplyRepo()
	r := replies.add(&entity.CommentReply{Body: "orig", CreatedBy: "user-1", PostID: "post-1", CommentID: "comment-1"})
	svc := newTestReplyService(newFakePostRepo(), newFakeCommentRepo(), replies)
	ctx := context.Background()

	liked, err := svc.ToggleLike(ctx, "user-2", r.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.ToggleLike(ctx, "user-2", r.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}
