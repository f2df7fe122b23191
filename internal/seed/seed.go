// Package seed 清空并写入演示数据：三个用户，其中两个带帖子
package seed

import (
	"context"

	"go.uber.org/zap"

	"go-gin-gorm-crud/internal/domain"
)

type Summary struct {
	DeletedPosts int64 `json:"deletedPosts"`
	DeletedUsers int64 `json:"deletedUsers"`
	Users        int   `json:"users"`
	Posts        int   `json:"posts"`
}

func name(s string) *string { return &s }

// Users 演示数据；每次调用返回新切片，避免写回 ID 污染
func Users() []domain.User {
	return []domain.User{
		{
			Email: "alice@example.com",
			Name:  name("Alice Johnson"),
			Posts: []domain.Post{
				{
					Title:     "Getting Started with GORM",
					Content:   "GORM is a developer-friendly ORM for Go...",
					Published: true,
				},
				{
					Title:   "My Draft Post",
					Content: "This is a work in progress...",
				},
			},
		},
		{
			Email: "bob@example.com",
			Name:  name("Bob Smith"),
			Posts: []domain.Post{
				{
					Title:     "Gin Best Practices",
					Content:   "Here are some tips for building great Gin services...",
					Published: true,
				},
			},
		},
		{
			Email: "charlie@example.com",
			Name:  name("Charlie Brown"),
		},
	}
}

// Run 先删帖子再删用户，然后嵌套创建用户和帖子；整体在一个事务里
func Run(ctx context.Context, store domain.Store, log *zap.Logger) (Summary, error) {
	var sum Summary
	err := store.Tx(ctx, func(tx domain.Store) error {
		var err error
		if sum.DeletedPosts, err = tx.Posts().DeleteMany(ctx, domain.PostFilter{}); err != nil {
			return err
		}
		if sum.DeletedUsers, err = tx.Users().DeleteMany(ctx); err != nil {
			return err
		}
		for _, u := range Users() {
			if err := tx.Users().Create(ctx, &u); err != nil {
				return err
			}
			sum.Users++
			sum.Posts += len(u.Posts)
			log.Debug("seeded user", zap.Uint("id", u.ID), zap.Int("posts", len(u.Posts)))
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	log.Info("seed completed",
		zap.Int64("deleted_posts", sum.DeletedPosts),
		zap.Int64("deleted_users", sum.DeletedUsers),
		zap.Int("users", sum.Users),
		zap.Int("posts", sum.Posts),
	)
	return sum, nil
}
