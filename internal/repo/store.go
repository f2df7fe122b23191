package repo

import (
	"context"

	"gorm.io/gorm"

	"go-gin-gorm-crud/internal/domain"
)

type Store struct {
	db    *gorm.DB
	users *UserRepo
	posts *PostRepo
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, users: NewUserRepo(db), posts: NewPostRepo(db)}
}

func (s *Store) Users() domain.UserRepository { return s.users }
func (s *Store) Posts() domain.PostRepository { return s.posts }

// Tx 手动开事务（全局 Session 已关闭默认事务）
func (s *Store) Tx(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Migrate 建表；posts.author_id 外键随 Post 一起创建
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Post{})
}
