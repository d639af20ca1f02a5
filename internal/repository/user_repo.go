package repository

import (
	"context"

	"github.com/lingochat/memories-backend/internal/common"
	"github.com/lingochat/memories-backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository reads display fields and friend edges from the chat app's tables
type UserRepository interface {
	FindDisplayFields(ctx context.Context, userIDs []string) (map[string]domain.DisplayFields, error)
	FindFriendIDs(ctx context.Context, userID string) ([]string, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindDisplayFields resolves full name and profile picture per id.
// Unknown ids are absent from the result.
func (r *userRepository) FindDisplayFields(ctx context.Context, userIDs []string) (map[string]domain.DisplayFields, error) {
	result := make(map[string]domain.DisplayFields, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var users []domain.User
	if err := r.db.WithContext(ctx).
		Select("id", "full_name", "profile_pic").
		Where("id IN ?", userIDs).
		Find(&users).Error; err != nil {
		return nil, common.Unavailable(err)
	}

	for _, u := range users {
		result[u.ID] = domain.DisplayFields{FullName: u.FullName, ProfilePic: u.ProfilePic}
	}
	return result, nil
}

// FindFriendIDs returns the ids userID is friends with
func (r *userRepository) FindFriendIDs(ctx context.Context, userID string) ([]string, error) {
	ids := make([]string, 0)
	if err := r.db.WithContext(ctx).
		Model(&domain.Friendship{}).
		Where("user_id = ?", userID).
		Order("friend_id ASC").
		Pluck("friend_id", &ids).Error; err != nil {
		return nil, common.Unavailable(err)
	}
	return ids, nil
}
