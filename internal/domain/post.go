package domain

import "context"

type Post struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Title     string  `gorm:"size:255;not null" json:"title"`
	Content   string  `gorm:"type:text;not null;default:''" json:"content"`
	Published bool    `gorm:"not null;default:false" json:"published"`
	AuthorID  uint    `gorm:"not null;index" json:"authorId"`
	Author    *Author `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Post) TableName() string { return "posts" }

// Author 是帖子读取时附带的作者投影，与 User 共用 users 表
type Author struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Name  *string `gorm:"size:191" json:"name"`
	Email string  `gorm:"size:191;not null" json:"email"`
}

func (Author) TableName() string { return "users" }

type PostPatch struct {
	Title     *string
	Content   *string
	Published *bool
}

func (p PostPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.Published != nil {
		cols["published"] = *p.Published
	}
	return cols
}

// PostFilter 为空字段不参与过滤；全空表示整表
type PostFilter struct {
	AuthorID  *uint
	Published *bool
}

type PostRepository interface {
	FindMany(ctx context.Context) ([]Post, error)
	FindByID(ctx context.Context, id uint) (*Post, error)
	Create(ctx context.Context, p *Post) error
	Update(ctx context.Context, id uint, p PostPatch) error
	Delete(ctx context.Context, id uint) error
	DeleteMany(ctx context.Context, f PostFilter) (int64, error)
	Count(ctx context.Context, f PostFilter) (int64, error)
}
