package entity

import "time"

// Privacy controls who may see a post. Declared on the schema; access checks
// do not consult it yet.
type Privacy string

const (
	PrivacyPublic  Privacy = "Public"
	PrivacyOnlyMe  Privacy = "Only Me"
	PrivacyPrivate Privacy = "Private"
)

// Post is a user-owned content entry with media attachments.
type Post struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	Images    []MediaAsset `json:"images"`
	Videos    []MediaAsset `json:"videos"`
	Likes     []string     `json:"likes"`
	CreatedBy string       `json:"created_by"`
	Comments  []string     `json:"comments"`
	Privacy   Privacy      `json:"privacy"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ToggleLike adds userID to the like set, or removes it when present.
// Returns true when the post ends up liked.
func (p *Post) ToggleLike(userID string) bool {
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return false
		}
	}
	p.Likes = append(p.Likes, userID)
	return true
}
