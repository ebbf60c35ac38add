package entity

import "time"

// CommentReply is a nested reply under a comment. The schema allows
// recursive replies but the service only ever populates one level.
type CommentReply struct {
	ID        string    `json:"id"`
	Body      string    `json:"reply_body"`
	CreatedBy string    `json:"created_by"`
	PostID    string    `json:"post_id"`
	CommentID string    `json:"comment_id"`
	Replies   []string  `json:"replies"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToggleLike adds userID to the like set, or removes it when present.
func (r *CommentReply) ToggleLike(userID string) bool {
	for i, id := range r.Likes {
		if id == userID {
			r.Likes = append(r.Likes[:i], r.Likes[i+1:]...)
			return false
		}
	}
	r.Likes = append(r.Likes, userID)
	return true
}
