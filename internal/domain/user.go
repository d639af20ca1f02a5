package domain

import "time"

// User mirrors the chat app's account record; only display fields are read here
type User struct {
	ID         string    `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	FullName   string    `gorm:"column:full_name;type:varchar(100);not null" json:"full_name"`
	ProfilePic string    `gorm:"column:profile_pic;type:varchar(2048)" json:"profile_pic"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

// Friendship is one directed edge of the social graph.
// The chat app writes both directions when a friend request is accepted.
type Friendship struct {
	UserID    string    `gorm:"column:user_id;primaryKey;type:varchar(64)"`
	FriendID  string    `gorm:"column:friend_id;primaryKey;type:varchar(64);index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Friendship) TableName() string { return "user_friends" }

// DisplayFields is the read-only projection resolved per user id
type DisplayFields struct {
	FullName   string `json:"full_name"`
	ProfilePic string `json:"profile_pic"`
}

// Summary builds the author/commenter projection
func (d DisplayFields) Summary(id string) UserSummary {
	return UserSummary{ID: id, FullName: d.FullName, ProfilePic: d.ProfilePic}
}
