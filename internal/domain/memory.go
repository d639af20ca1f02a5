package domain

import (
	"strings"
	"time"
)

// FeedPageSize caps the aggregate feed listing
const FeedPageSize = 50

// Memory is a single feed post (memories)
type Memory struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuthorID  string          `gorm:"column:author_id;type:varchar(64);not null;index:idx_memories_author_created,priority:1" json:"author_id"`
	Content   string          `gorm:"column:content;type:text;not null" json:"content"`
	Image     *string         `gorm:"column:image;type:varchar(2048)" json:"image"`
	CreatedAt time.Time       `gorm:"column:created_at;not null;index;index:idx_memories_author_created,priority:2" json:"created_at"`
	Likes     []MemoryLike    `gorm:"foreignKey:MemoryID;constraint:OnDelete:CASCADE" json:"-"`
	Comments  []MemoryComment `gorm:"foreignKey:MemoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Memory) TableName() string { return "memories" }

// MemoryLike is one member of a memory's like set.
// The unique (memory_id, user_id) index makes the set duplicate free.
type MemoryLike struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	MemoryID  uint64    `gorm:"column:memory_id;not null;uniqueIndex:uk_memory_likes_user,priority:1"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:uk_memory_likes_user,priority:2"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (MemoryLike) TableName() string { return "memory_likes" }

// MemoryComment is appended to exactly one memory and never edited
type MemoryComment struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	MemoryID  uint64    `gorm:"column:memory_id;not null;index"`
	AuthorID  string    `gorm:"column:author_id;type:varchar(64);not null"`
	Content   string    `gorm:"column:content;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (MemoryComment) TableName() string { return "memory_comments" }

// ParticipantIDs returns every user id the memory references:
// author, likers and commenters, without duplicates
func (m *Memory) ParticipantIDs() []string {
	seen := make(map[string]struct{}, 1+len(m.Likes)+len(m.Comments))
	ids := make([]string, 0, 1+len(m.Likes)+len(m.Comments))
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	add(m.AuthorID)
	for _, l := range m.Likes {
		add(l.UserID)
	}
	for _, c := range m.Comments {
		add(c.AuthorID)
	}
	return ids
}

// NormalizeContent trims content; ok is false when nothing is left
func NormalizeContent(content string) (string, bool) {
	trimmed := strings.TrimSpace(content)
	return trimmed, trimmed != ""
}

// NormalizeImage maps a blank image reference to absent.
// Any other value is kept as sent.
func NormalizeImage(image *string) *string {
	if image == nil || strings.TrimSpace(*image) == "" {
		return nil
	}
	stored := *image
	return &stored
}

// CreateMemoryRequest body of POST /api/memories
type CreateMemoryRequest struct {
	Content string  `json:"content"`
	Image   *string `json:"image" binding:"omitempty,max=2048"`
}

// AddCommentRequest body of POST /api/memories/:id/comment
type AddCommentRequest struct {
	Content string `json:"content"`
}

// UserSummary author / commenter projection
type UserSummary struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	ProfilePic string `json:"profile_pic"`
}

// LikerSummary liker projection
type LikerSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// CommentResponse comment with resolved commenter
type CommentResponse struct {
	ID        uint64      `json:"id"`
	User      UserSummary `json:"user"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// MemoryResponse memory with resolved display fields
type MemoryResponse struct {
	ID        uint64            `json:"id"`
	User      UserSummary       `json:"user"`
	Content   string            `json:"content"`
	Image     *string           `json:"image"`
	Likes     []LikerSummary    `json:"likes"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt time.Time         `json:"created_at"`
}
