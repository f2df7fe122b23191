package action

import (
	"context"

	"go-gin-gorm-crud/internal/domain"
)

type Stats struct {
	Users          int64 `json:"users"`
	Posts          int64 `json:"posts"`
	PublishedPosts int64 `json:"publishedPosts"`
}

func (a *Actions) Stats(ctx context.Context) Outcome[Stats] {
	const op = "stats"
	var (
		s   Stats
		err error
	)
	if s.Users, err = a.store.Users().Count(ctx); err != nil {
		return finish(op, fail[Stats](a.storeFailed(op, err), "Failed to fetch stats"))
	}
	if s.Posts, err = a.store.Posts().Count(ctx, domain.PostFilter{}); err != nil {
		return finish(op, fail[Stats](a.storeFailed(op, err), "Failed to fetch stats"))
	}
	published := true
	if s.PublishedPosts, err = a.store.Posts().Count(ctx, domain.PostFilter{Published: &published}); err != nil {
		return finish(op, fail[Stats](a.storeFailed(op, err), "Failed to fetch stats"))
	}
	return finish(op, OK(s))
}
