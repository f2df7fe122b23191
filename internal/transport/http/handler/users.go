package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-crud/internal/action"
	"go-gin-gorm-crud/internal/domain"
	"go-gin-gorm-crud/internal/transport/http/ez"
)

type Users struct{ acts *action.Actions }

func NewUsers(acts *action.Actions) *Users { return &Users{acts: acts} }

func (*Users) Priority() int { return 20 }

// MountAPI /users 的 CRUD；删除用户会连带删除其帖子
func (h *Users) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api.Group("/users"))

	ez.Register(e, ez.Action[struct{}, []domain.User]{
		Method: http.MethodGet,
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) action.Outcome[[]domain.User] {
			return h.acts.ListUsers(c.Request.Context())
		},
	})

	ez.Register(e, ez.Action[struct{}, domain.User]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: ez.WithID(func(c *gin.Context, id uint, _ *struct{}) action.Outcome[domain.User] {
			return h.acts.GetUser(c.Request.Context(), id)
		}),
	})

	ez.Register(e, ez.Action[action.CreateUserInput, domain.User]{
		Method: http.MethodPost,
		Binder: ez.BindAuto,
		Handler: func(c *gin.Context, in *action.CreateUserInput) action.Outcome[domain.User] {
			return h.acts.CreateUser(c.Request.Context(), *in)
		},
	})

	ez.Register(e, ez.Action[action.UpdateUserInput, domain.User]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindAuto,
		Handler: ez.WithID(func(c *gin.Context, id uint, in *action.UpdateUserInput) action.Outcome[domain.User] {
			return h.acts.UpdateUser(c.Request.Context(), id, *in)
		}),
	})

	ez.Register(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: ez.WithID(func(c *gin.Context, id uint, _ *struct{}) action.Outcome[struct{}] {
			return h.acts.DeleteUser(c.Request.Context(), id)
		}),
	})
}
