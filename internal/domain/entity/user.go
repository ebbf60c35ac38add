package entity

import (
	"strings"
	"time"
)

// Role is the authorization role of a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Status is the presence/moderation state of a user account.
type Status string

const (
	StatusOnline      Status = "Online"
	StatusOffline     Status = "Offline"
	StatusBlocked     Status = "Blocked"
	StatusSoftDeleted Status = "SoftDeleted"
)

// OTP is a one-time code with an optional expiry.
type OTP struct {
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// MediaAsset points at an object in the remote media store.
type MediaAsset struct {
	URL       string `json:"url"`
	StorageID string `json:"storage_id"`
}

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash and is never serialized; Phone holds the
// reversibly encrypted number.
type User struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Email          string      `json:"email"`
	Password       string      `json:"-"`
	Phone          string      `json:"phone"`
	Age            int         `json:"age"`
	ConfirmEmail   bool        `json:"confirm_email"`
	IsDeleted      bool        `json:"is_deleted"`
	Role           Role        `json:"role"`
	Status         Status      `json:"status"`
	OTP            OTP         `json:"-"`
	OTPSendCount   int         `json:"-"`
	Posts          []string    `json:"posts"`
	FriendRequests []string    `json:"friend_requests"`
	Friends        []string    `json:"friends"`
	ProfileImage   *MediaAsset `json:"profile_image,omitempty"`
	ProfileCover   *MediaAsset `json:"profile_cover,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// SplitName derives FirstName/LastName from Name. Repositories call this on
// every save so the split never drifts from the display name.
func (u *User) SplitName() {
	parts := strings.Fields(strings.TrimSpace(u.Name))
	if len(parts) == 0 {
		u.FirstName, u.LastName = "", ""
		return
	}
	u.FirstName = parts[0]
	u.LastName = strings.Join(parts[1:], " ")
}

// DisplayName is the "First Last" form carried in JWT claims.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasFriendRequest reports whether a request to targetID is already pending.
func (u *User) HasFriendRequest(targetID string) bool {
	for _, id := range u.FriendRequests {
		if id == targetID {
			return true
		}
	}
	return false
}
