package application

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
	"socialnet/pkg/listquery"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeUserRepo is an in-memory UserRepository keyed by user id.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	seq   int

	setOTPCalls      int
	setOTPStateCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) add(u *entity.User) *entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == "" {
		f.seq++
		u.ID = "user-" + strconv.Itoa(f.seq)
	}
	u.SplitName()
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.SplitName()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) SetOTP(ctx context.Context, userID string, otp entity.OTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setOTPCalls++
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.OTP = otp
	return nil
}

func (f *fakeUserRepo) SetOTPState(ctx context.Context, userID string, otp entity.OTP, sendCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setOTPStateCalls++
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.OTP = otp
	u.OTPSendCount = sendCount
	return nil
}

func (f *fakeUserRepo) SwapOTPIfCode(ctx context.Context, userID, oldCode string, otp entity.OTP) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok || u.OTP.Code != oldCode {
		return false, nil
	}
	u.OTP = otp
	return true, nil
}

func (f *fakeUserRepo) ConfirmEmail(ctx context.Context, userID string, next entity.OTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.ConfirmEmail = true
	u.OTP = next
	u.OTPSendCount = 0
	return nil
}

func (f *fakeUserRepo) SetStatus(ctx context.Context, userID string, status entity.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Status = status
	return nil
}

func (f *fakeUserRepo) SetPassword(ctx context.Context, userID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (f *fakeUserRepo) ResetPassword(ctx context.Context, userID, hash string, next entity.OTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	u.OTP = next
	u.OTPSendCount = 0
	return nil
}

func (f *fakeUserRepo) SoftDelete(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsDeleted = true
	u.ConfirmEmail = false
	u.Status = entity.StatusSoftDeleted
	return nil
}

func (f *fakeUserRepo) SetProfileImage(ctx context.Context, userID string, asset entity.MediaAsset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.ProfileImage = &asset
	return nil
}

func (f *fakeUserRepo) SetProfileCover(ctx context.Context, userID string, asset entity.MediaAsset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.ProfileCover = &asset
	return nil
}

func (f *fakeUserRepo) AddFriendRequest(ctx context.Context, userID, targetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.FriendRequests = append(u.FriendRequests, targetID)
	return nil
}

func (f *fakeUserRepo) RemoveFriendRequest(ctx context.Context, userID, targetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	out := u.FriendRequests[:0]
	for _, id := range u.FriendRequests {
		if id != targetID {
			out = append(out, id)
		}
	}
	u.FriendRequests = out
	return nil
}

func (f *fakeUserRepo) ListUnconfirmed(ctx context.Context) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.User
	for _, u := range f.users {
		if !u.ConfirmEmail && !u.IsDeleted {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) List(ctx context.Context, raw url.Values) ([]map[string]any, listquery.Page, error) {
	return []map[string]any{}, listquery.Page{}, nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens []*entity.Token
}

func (f *fakeTokenRepo) Create(ctx context.Context, t *entity.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, t)
	return nil
}

func (f *fakeTokenRepo) FindValid(ctx context.Context, token string) (*entity.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.Token == token && t.IsValid {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*entity.Post
	seq   int

	rangeStart, rangeEnd time.Time
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*entity.Post{}}
}

func (f *fakePostRepo) add(p *entity.Post) *entity.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		f.seq++
		p.ID = "post-" + strconv.Itoa(f.seq)
	}
	f.posts[p.ID] = p
	return p
}

func (f *fakePostRepo) Create(ctx context.Context, p *entity.Post) error {
	f.add(p)
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) Update(ctx context.Context, p *entity.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) PushComment(ctx context.Context, postID, commentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Comments = append(p.Comments, commentID)
	return nil
}

func (f *fakePostRepo) List(ctx context.Context, raw url.Values) ([]map[string]any, listquery.Page, error) {
	return []map[string]any{}, listquery.Page{}, nil
}

func (f *fakePostRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rangeStart, f.rangeEnd = start, end
	var out []*entity.Post
	for _, p := range f.posts {
		if !p.CreatedAt.Before(start) && p.CreatedAt.Before(end) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*entity.Comment
	seq      int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[string]*entity.Comment{}}
}

func (f *fakeCommentRepo) add(c *entity.Comment) *entity.Comment {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		f.seq++
		c.ID = "comment-" + strconv.Itoa(f.seq)
	}
	f.comments[c.ID] = c
	return c
}

func (f *fakeCommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	f.add(c)
	return nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) GetAll(ctx context.Context) ([]*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Comment, 0, len(f.comments))
	for _, c := range f.comments {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCommentRepo) Update(ctx context.Context, c *entity.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) UpdateBodyIfOwner(ctx context.Context, id, ownerID, body string) (*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok || c.CreatedBy != ownerID {
		return nil, nil
	}
	c.Body = body
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) DeleteIfOwner(ctx context.Context, id, ownerID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok || c.CreatedBy != ownerID {
		return false, nil
	}
	delete(f.comments, id)
	return true, nil
}

func (f *fakeCommentRepo) DeleteByPostID(ctx context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, c := range f.comments {
		if c.PostID == postID {
			delete(f.comments, id)
		}
	}
	return nil
}

func (f *fakeCommentRepo) FindIDsByPostID(ctx context.Context, postID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id, c := range f.comments {
		if c.PostID == postID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeCommentRepo) PushReply(ctx context.Context, commentID, replyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[commentID]
	if !ok {
		return repository.ErrNotFound
	}
	c.Replies = append(c.Replies, replyID)
	return nil
}

type fakeReplyRepo struct {
	mu      sync.Mutex
	replies map[string]*entity.CommentReply
	seq     int

	deleteByIDCalls []string
}

func newFakeReplyRepo() *fakeReplyRepo {
	return &fakeReplyRepo{replies: map[string]*entity.CommentReply{}}
}

func (f *fakeReplyRepo) add(r *entity.CommentReply) *entity.CommentReply {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == "" {
		f.seq++
		r.ID = "reply-" + strconv.Itoa(f.seq)
	}
	f.replies[r.ID] = r
	return r
}

func (f *fakeReplyRepo) Create(ctx context.Context, r *entity.CommentReply) error {
	f.add(r)
	return nil
}

func (f *fakeReplyRepo) GetByID(ctx context.Context, id string) (*entity.CommentReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.replies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReplyRepo) GetAll(ctx context.Context) ([]*entity.CommentReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.CommentReply, 0, len(f.replies))
	for _, r := range f.replies {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeReplyRepo) Update(ctx context.Context, r *entity.CommentReply) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.replies[r.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *r
	f.replies[r.ID] = &cp
	return nil
}

func (f *fakeReplyRepo) DeleteIfOwner(ctx context.Context, id, ownerID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.replies[id]
	if !ok || r.CreatedBy != ownerID {
		return false, nil
	}
	delete(f.replies, id)
	return true, nil
}

// DeleteByID mirrors the SQL implementation: it only matches a reply whose
// primary key equals id.
func (f *fakeReplyRepo) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteByIDCalls = append(f.deleteByIDCalls, id)
	delete(f.replies, id)
	return nil
}

func (f *fakeReplyRepo) DeleteByCommentIDs(ctx context.Context, commentIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.replies {
		for _, cid := range commentIDs {
			if r.CommentID == cid {
				delete(f.replies, id)
			}
		}
	}
	return nil
}

var (
	_ repository.UserRepository         = (*fakeUserRepo)(nil)
	_ repository.TokenRepository        = (*fakeTokenRepo)(nil)
	_ repository.PostRepository         = (*fakePostRepo)(nil)
	_ repository.CommentRepository      = (*fakeCommentRepo)(nil)
	_ repository.CommentReplyRepository = (*fakeReplyRepo)(nil)
)
