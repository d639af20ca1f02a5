package migration

import (
	"github.com/lingochat/memories-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Run executes AutoMigrate for the memories tables and the identity tables they read.
// Safe to run repeatedly.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity (owned by the chat app, created here for standalone/dev use)
		&domain.User{},
		&domain.Friendship{},

		// Memories
		&domain.Memory{},
		&domain.MemoryLike{},
		&domain.MemoryComment{},
	)
}

// Seed inserts demo users and friendships when the users table is empty
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return seedUsers(db)
}

func seedUsers(db *gorm.DB) error {
	users := []domain.User{
		{ID: "demo-minji", FullName: "Minji Park", ProfilePic: "https://avatar.iran.liara.run/public/girl?username=minji"},
		{ID: "demo-lucas", FullName: "Lucas Moreno", ProfilePic: "https://avatar.iran.liara.run/public/boy?username=lucas"},
		{ID: "demo-yuki", FullName: "Yuki Tanaka", ProfilePic: "https://avatar.iran.liara.run/public/girl?username=yuki"},
		{ID: "demo-sam", FullName: "Sam Carter", ProfilePic: ""},
	}

	// 친구 관계는 양방향으로 저장
	pairs := [][2]string{
		{"demo-minji", "demo-lucas"},
		{"demo-minji", "demo-yuki"},
		{"demo-lucas", "demo-sam"},
	}
	friendships := make([]domain.Friendship, 0, len(pairs)*2)
	for _, p := range pairs {
		friendships = append(friendships,
			domain.Friendship{UserID: p[0], FriendID: p[1]},
			domain.Friendship{UserID: p[1], FriendID: p[0]},
		)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&friendships).Error
	})
}
