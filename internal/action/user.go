package action

import (
	"context"

	"go-gin-gorm-crud/internal/core/cache"
	"go-gin-gorm-crud/internal/core/refresh"
	"go-gin-gorm-crud/internal/domain"
)

const (
	msgEmailRequired = "Email is required"
	msgUserNotFound  = "User not found"
	msgUserDeleted   = "User deleted"
	msgFetchUsers    = "Failed to fetch users"
	msgFetchUser     = "Failed to fetch user"
	msgCreateUser    = "Failed to create user"
	msgUpdateUser    = "Failed to update user"
	msgDeleteUser    = "Failed to delete user"
)

// ListUsers 返回全部用户及其帖子，id 倒序
func (a *Actions) ListUsers(ctx context.Context) Outcome[[]domain.User] {
	const op = "listUsers"
	users, err := cache.GetOrLoadJSON(a.cache, ctx, listKey(refresh.ViewUsers), a.ttl, a.store.Users().FindMany)
	if err != nil {
		return finish(op, fail[[]domain.User](a.storeFailed(op, err), msgFetchUsers))
	}
	if users == nil {
		users = []domain.User{}
	}
	return finish(op, OK(users))
}

func (a *Actions) GetUser(ctx context.Context, id uint) Outcome[domain.User] {
	const op = "getUser"
	u, err := a.store.Users().FindByID(ctx, id)
	if err != nil {
		return finish(op, fail[domain.User](a.storeFailed(op, err), msgFetchUser))
	}
	if u == nil {
		return finish(op, NotFound[domain.User](msgUserNotFound))
	}
	return finish(op, OK(*u))
}

func (a *Actions) CreateUser(ctx context.Context, in CreateUserInput) Outcome[domain.User] {
	const op = "createUser"
	if err := a.validate.Struct(in); err != nil {
		a.invalid(op, err)
		return finish(op, Invalid[domain.User](msgEmailRequired))
	}
	u := &domain.User{Email: in.Email, Name: nonEmpty(in.Name)}
	if err := a.store.Users().Create(ctx, u); err != nil {
		return finish(op, fail[domain.User](a.storeFailed(op, err), msgCreateUser))
	}
	a.stale(ctx)
	return a.reloadUser(ctx, op, u.ID, msgCreateUser)
}

// UpdateUser 只改提交了的字段；空邮箱忽略，提交空名字则清空为 NULL
func (a *Actions) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) Outcome[domain.User] {
	const op = "updateUser"
	patch := domain.UserPatch{Email: nonEmpty(in.Email), Name: in.Name}
	if err := a.store.Users().Update(ctx, id, patch); err != nil {
		return finish(op, fail[domain.User](a.storeFailed(op, err), msgUpdateUser))
	}
	a.stale(ctx)
	return a.reloadUser(ctx, op, id, msgUpdateUser)
}

// DeleteUser 在同一事务内先删该用户的帖子再删用户；用户不存在则整体回滚
func (a *Actions) DeleteUser(ctx context.Context, id uint) Outcome[struct{}] {
	const op = "deleteUser"
	err := a.store.Tx(ctx, func(tx domain.Store) error {
		if _, err := tx.Posts().DeleteMany(ctx, domain.PostFilter{AuthorID: &id}); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return finish(op, fail[struct{}](a.storeFailed(op, err), msgDeleteUser))
	}
	a.stale(ctx)
	return finish(op, Done[struct{}](msgUserDeleted))
}

func (a *Actions) reloadUser(ctx context.Context, op string, id uint, msg string) Outcome[domain.User] {
	u, err := a.store.Users().FindByID(ctx, id)
	if err != nil {
		return finish(op, fail[domain.User](a.storeFailed(op, err), msg))
	}
	if u == nil {
		return finish(op, fail[domain.User](a.storeFailed(op, domain.ErrNotFound), msg))
	}
	return finish(op, OK(*u))
}
