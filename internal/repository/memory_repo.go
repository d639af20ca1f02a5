package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lingochat/memories-backend/internal/common"
	"github.com/lingochat/memories-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemoryRepository is the Memory Store: persistence plus the per-memory
// atomic like-set and comment-append primitives
type MemoryRepository interface {
	Create(ctx context.Context, memory *domain.Memory) error
	FindByID(ctx context.Context, id uint64) (*domain.Memory, error)
	FindAuthorID(ctx context.Context, id uint64) (string, error)
	ListByAuthors(ctx context.Context, authorIDs []string, limit int) ([]*domain.Memory, error)
	ToggleLike(ctx context.Context, memoryID uint64, userID string) (bool, error)
	AppendComment(ctx context.Context, comment *domain.MemoryComment) error
	Delete(ctx context.Context, id uint64) error
}

type memoryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewMemoryRepository creates a new gorm backed MemoryRepository
func NewMemoryRepository(db *gorm.DB) MemoryRepository {
	return &memoryRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// translate maps gorm errors onto the domain taxonomy
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return common.ErrMemoryNotFound
	default:
		return common.Unavailable(err)
	}
}

// withAssociations preloads likes and comments in insertion order
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Likes", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func (r *memoryRepository) Create(ctx context.Context, memory *domain.Memory) error {
	memory.ID = 0
	if memory.CreatedAt.IsZero() {
		memory.CreatedAt = r.now()
	}
	memory.Likes = nil
	memory.Comments = nil
	return translate(r.db.WithContext(ctx).Create(memory).Error)
}

func (r *memoryRepository) FindByID(ctx context.Context, id uint64) (*domain.Memory, error) {
	var memory domain.Memory
	err := withAssociations(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&memory).Error
	if err != nil {
		return nil, translate(err)
	}
	return &memory, nil
}

// FindAuthorID loads only the owner of a memory
func (r *memoryRepository) FindAuthorID(ctx context.Context, id uint64) (string, error) {
	var memory domain.Memory
	err := r.db.WithContext(ctx).
		Select("id", "author_id").
		Where("id = ?", id).
		First(&memory).Error
	if err != nil {
		return "", translate(err)
	}
	return memory.AuthorID, nil
}

// ListByAuthors returns memories whose author is in authorIDs, newest first.
// Ties on created_at fall back to id so paging stays deterministic.
// limit <= 0 means no cap.
func (r *memoryRepository) ListByAuthors(ctx context.Context, authorIDs []string, limit int) ([]*domain.Memory, error) {
	memories := make([]*domain.Memory, 0)
	if len(authorIDs) == 0 {
		return memories, nil
	}

	query := withAssociations(r.db.WithContext(ctx)).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&memories).Error; err != nil {
		return nil, translate(err)
	}
	return memories, nil
}

// lockMemory takes a row lock on the parent memory for the rest of tx.
// sqlite has no row locks; its single writer gives the same serialization.
func lockMemory(tx *gorm.DB, id uint64) error {
	var memory domain.Memory
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", id).
		First(&memory).Error
}

// ToggleLike flips userID's membership in the like set and reports
// whether the user likes the memory afterwards
func (r *memoryRepository) ToggleLike(ctx context.Context, memoryID uint64, userID string) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockMemory(tx, memoryID); err != nil {
			return err
		}

		removed := tx.Where("memory_id = ? AND user_id = ?", memoryID, userID).Delete(&domain.MemoryLike{})
		if removed.Error != nil {
			return removed.Error
		}
		if removed.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := &domain.MemoryLike{MemoryID: memoryID, UserID: userID, CreatedAt: r.now()}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, translate(err)
	}
	return liked, nil
}

// AppendComment adds a comment at the end of the memory's thread
func (r *memoryRepository) AppendComment(ctx context.Context, comment *domain.MemoryComment) error {
	comment.ID = 0
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = r.now()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockMemory(tx, comment.MemoryID); err != nil {
			return err
		}
		return tx.Create(comment).Error
	})
	return translate(err)
}

// Delete removes a memory with its likes and comments
func (r *memoryRepository) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockMemory(tx, id); err != nil {
			return err
		}
		if err := tx.Where("memory_id = ?", id).Delete(&domain.MemoryLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("memory_id = ?", id).Delete(&domain.MemoryComment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Memory{}).Error
	})
	return translate(err)
}
