// Package action 是展示层与存储之间唯一的入口：每个用例一个方法，
// 统一返回 Outcome，写操作成功后通知相关视图过期。
package action

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-gin-gorm-crud/internal/core/cache"
	"go-gin-gorm-crud/internal/core/refresh"
	"go-gin-gorm-crud/internal/domain"
)

type Actions struct {
	store    domain.Store
	log      *zap.Logger
	cache    *cache.Cache
	ttl      time.Duration
	notifier refresh.Notifier
	validate *validator.Validate
}

type Option func(*Actions)

// WithCache 缓存 list 结果；失效由订阅 refresh 的 InvalidateCache 负责
func WithCache(c *cache.Cache, ttl time.Duration) Option {
	return func(a *Actions) {
		a.cache = c
		a.ttl = ttl
	}
}

func WithNotifier(n refresh.Notifier) Option {
	return func(a *Actions) { a.notifier = n }
}

func New(store domain.Store, log *zap.Logger, opts ...Option) *Actions {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Actions{
		store:    store,
		log:      log.Named("action"),
		ttl:      time.Minute,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// InvalidateCache 作为 refresh.Handler 订阅，删除对应视图的列表缓存
func (a *Actions) InvalidateCache(ctx context.Context, view string) {
	if err := a.cache.Invalidate(ctx, listKey(view)); err != nil {
		a.log.Warn("cache invalidate failed", zap.String("view", view), zap.Error(err))
	}
}

func listKey(view string) string { return view + ":list" }

// stale 帖子里嵌了作者、用户里嵌了帖子，任何写操作两个视图都要刷新
func (a *Actions) stale(ctx context.Context) {
	if a.notifier == nil {
		return
	}
	a.notifier.Stale(ctx, refresh.ViewPosts, refresh.ViewUsers)
}

// storeFailed 记录存储层错误；不记录用户输入
func (a *Actions) storeFailed(op string, err error) Kind {
	if errors.Is(err, domain.ErrNotFound) {
		a.log.Warn("record missing", zap.String("op", op))
		return KindNotFound
	}
	a.log.Error("store call failed", zap.String("op", op), zap.Error(err))
	return KindFailed
}

func (a *Actions) invalid(op string, err error) {
	a.log.Debug("validation failed", zap.String("op", op), zap.Error(err))
}

func fail[T any](kind Kind, msg string) Outcome[T] {
	return Outcome[T]{Error: msg, Kind: kind}
}

func finish[T any](op string, o Outcome[T]) Outcome[T] {
	actionTotal.WithLabelValues(op, string(o.Kind)).Inc()
	return o
}
