package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-gin-gorm-crud/internal/domain"
)

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

// withAuthor 只取作者的 id/name/email
func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("Author", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "email")
	})
}

func (r *PostRepo) FindMany(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	if err := withAuthor(r.db.WithContext(ctx)).Order("id").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID 查不到返回 (nil, nil)
func (r *PostRepo) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var p domain.Post
	err := withAuthor(r.db.WithContext(ctx)).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	// 作者只读，避免 gorm 顺带 upsert users
	return r.db.WithContext(ctx).Omit("Author").Create(p).Error
}

func (r *PostRepo) Update(ctx context.Context, id uint, p domain.PostPatch) error {
	cols := p.Columns()
	if len(cols) == 0 {
		return r.exists(ctx, id)
	}
	res := r.db.WithContext(ctx).Model(&domain.Post{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.exists(ctx, id)
	}
	return nil
}

func (r *PostRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostRepo) DeleteMany(ctx context.Context, f domain.PostFilter) (int64, error) {
	q := scopeFilter(r.db.WithContext(ctx), f)
	if f.AuthorID == nil && f.Published == nil {
		q = q.Session(&gorm.Session{AllowGlobalUpdate: true})
	}
	res := q.Delete(&domain.Post{})
	return res.RowsAffected, res.Error
}

func (r *PostRepo) Count(ctx context.Context, f domain.PostFilter) (int64, error) {
	var n int64
	err := scopeFilter(r.db.WithContext(ctx).Model(&domain.Post{}), f).Count(&n).Error
	return n, err
}

func (r *PostRepo) exists(ctx context.Context, id uint) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Post{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scopeFilter(q *gorm.DB, f domain.PostFilter) *gorm.DB {
	if f.AuthorID != nil {
		q = q.Where("author_id = ?", *f.AuthorID)
	}
	if f.Published != nil {
		q = q.Where("published = ?", *f.Published)
	}
	return q
}
