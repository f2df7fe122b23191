// Package refresh 通知展示层某个视图已过期，需要重新拉取
package refresh

import (
	"context"
	"sync"
)

const (
	ViewPosts = "posts"
	ViewUsers = "users"
	// ViewAll 订阅时使用，收到所有视图
	ViewAll = ""
)

type Handler func(ctx context.Context, view string)

type Notifier interface {
	Stale(ctx context.Context, views ...string)
}

type sub struct {
	view string
	fn   Handler
}

type Hub struct {
	mu   sync.RWMutex
	next int
	subs map[int]sub
}

func NewHub() *Hub { return &Hub{subs: map[int]sub{}} }

// Subscribe 返回取消订阅函数；回调在 Stale 的调用方 goroutine 中同步执行
func (h *Hub) Subscribe(view string, fn Handler) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = sub{view: view, fn: fn}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

func (h *Hub) Stale(ctx context.Context, views ...string) {
	if h == nil {
		return
	}
	h.mu.RLock()
	subs := make([]sub, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.RUnlock()

	for _, v := range views {
		for _, s := range subs {
			if s.view == ViewAll || s.view == v {
				s.fn(ctx, v)
			}
		}
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
