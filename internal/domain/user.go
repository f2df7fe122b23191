package domain

import "context"

type User struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Email string  `gorm:"size:191;not null" json:"email"`
	Name  *string `gorm:"size:191" json:"name"`
	Posts []Post  `gorm:"foreignKey:AuthorID" json:"posts"`
}

func (User) TableName() string { return "users" }

// UserPatch 仅包含需要修改的列；nil 表示保持不变，Name 为空串时写 NULL
type UserPatch struct {
	Email *string
	Name  *string
}

func (p UserPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Name != nil {
		if *p.Name == "" {
			cols["name"] = nil
		} else {
			cols["name"] = *p.Name
		}
	}
	return cols
}

type UserRepository interface {
	// FindMany 返回全部用户（含 posts），按 id 倒序
	FindMany(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, id uint, p UserPatch) error
	Delete(ctx context.Context, id uint) error
	DeleteMany(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}
