package domain

import (
	"context"
	"errors"
)

// ErrNotFound 写操作（更新/删除）命中 0 行
var ErrNotFound = errors.New("record not found")

// Store 聚合两个仓储；Tx 内的 Store 绑定同一个事务
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Tx(ctx context.Context, fn func(tx Store) error) error
}
