package entity

import "time"

// Comment belongs to exactly one post.
type Comment struct {
	ID        string    `json:"id"`
	Body      string    `json:"comment_body"`
	CreatedBy string    `json:"created_by"`
	PostID    string    `json:"post_id"`
	Replies   []string  `json:"replies"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToggleLike adds userID to the like set, or removes it when present.
func (c *Comment) ToggleLike(userID string) bool {
	for i, id := range c.Likes {
		if id == userID {
			c.Likes = append(c.Likes[:i], c.Likes[i+1:]...)
			return false
		}
	}
	c.Likes = append(c.Likes, userID)
	return true
}
