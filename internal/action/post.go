package action

import (
	"context"

	"go-gin-gorm-crud/internal/core/cache"
	"go-gin-gorm-crud/internal/core/refresh"
	"go-gin-gorm-crud/internal/domain"
)

const (
	msgPostRequired = "Title and author are required"
	msgPostNotFound = "Post not found"
	msgPostDeleted  = "Post deleted"
	msgFetchPosts   = "Failed to fetch posts"
	msgFetchPost    = "Failed to fetch post"
	msgCreatePost   = "Failed to create post"
	msgUpdatePost   = "Failed to update post"
	msgDeletePost   = "Failed to delete post"
)

// ListPosts 返回全部帖子（含作者 id/name/email）
func (a *Actions) ListPosts(ctx context.Context) Outcome[[]domain.Post] {
	const op = "listPosts"
	posts, err := cache.GetOrLoadJSON(a.cache, ctx, listKey(refresh.ViewPosts), a.ttl, a.store.Posts().FindMany)
	if err != nil {
		return finish(op, fail[[]domain.Post](a.storeFailed(op, err), msgFetchPosts))
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return finish(op, OK(posts))
}

func (a *Actions) GetPost(ctx context.Context, id uint) Outcome[domain.Post] {
	const op = "getPost"
	p, err := a.store.Posts().FindByID(ctx, id)
	if err != nil {
		return finish(op, fail[domain.Post](a.storeFailed(op, err), msgFetchPost))
	}
	if p == nil {
		return finish(op, NotFound[domain.Post](msgPostNotFound))
	}
	return finish(op, OK(*p))
}

func (a *Actions) CreatePost(ctx context.Context, in CreatePostInput) Outcome[domain.Post] {
	const op = "createPost"
	if err := a.validate.Struct(in); err != nil {
		a.invalid(op, err)
		return finish(op, Invalid[domain.Post](msgPostRequired))
	}
	p := &domain.Post{
		Title:     in.Title,
		Published: in.Published,
		AuthorID:  in.AuthorID,
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if err := a.store.Posts().Create(ctx, p); err != nil {
		return finish(op, fail[domain.Post](a.storeFailed(op, err), msgCreatePost))
	}
	a.stale(ctx)
	return a.reloadPost(ctx, op, p.ID, msgCreatePost)
}

// UpdatePost 只改提交了的字段；空标题忽略
func (a *Actions) UpdatePost(ctx context.Context, id uint, in UpdatePostInput) Outcome[domain.Post] {
	const op = "updatePost"
	patch := domain.PostPatch{
		Title:     nonEmpty(in.Title),
		Content:   in.Content,
		Published: in.Published,
	}
	if err := a.store.Posts().Update(ctx, id, patch); err != nil {
		return finish(op, fail[domain.Post](a.storeFailed(op, err), msgUpdatePost))
	}
	a.stale(ctx)
	return a.reloadPost(ctx, op, id, msgUpdatePost)
}

func (a *Actions) DeletePost(ctx context.Context, id uint) Outcome[struct{}] {
	const op = "deletePost"
	if err := a.store.Posts().Delete(ctx, id); err != nil {
		return finish(op, fail[struct{}](a.storeFailed(op, err), msgDeletePost))
	}
	a.stale(ctx)
	return finish(op, Done[struct{}](msgPostDeleted))
}

func (a *Actions) reloadPost(ctx context.Context, op string, id uint, msg string) Outcome[domain.Post] {
	p, err := a.store.Posts().FindByID(ctx, id)
	if err != nil {
		return finish(op, fail[domain.Post](a.storeFailed(op, err), msg))
	}
	if p == nil {
		return finish(op, fail[domain.Post](a.storeFailed(op, domain.ErrNotFound), msg))
	}
	return finish(op, OK(*p))
}
