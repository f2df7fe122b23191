package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-crud/internal/action"
	"go-gin-gorm-crud/internal/domain"
	"go-gin-gorm-crud/internal/transport/http/ez"
)

type Posts struct{ acts *action.Actions }

func NewPosts(acts *action.Actions) *Posts { return &Posts{acts: acts} }

func (*Posts) Priority() int { return 10 }

// MountAPI /posts 的 CRUD
func (h *Posts) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api.Group("/posts"))

	ez.Register(e, ez.Action[struct{}, []domain.Post]{
		Method: http.MethodGet,
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) action.Outcome[[]domain.Post] {
			return h.acts.ListPosts(c.Request.Context())
		},
	})

	ez.Register(e, ez.Action[struct{}, domain.Post]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: ez.WithID(func(c *gin.Context, id uint, _ *struct{}) action.Outcome[domain.Post] {
			return h.acts.GetPost(c.Request.Context(), id)
		}),
	})

	ez.Register(e, ez.Action[action.CreatePostInput, domain.Post]{
		Method: http.MethodPost,
		Binder: ez.BindAuto,
		Handler: func(c *gin.Context, in *action.CreatePostInput) action.Outcome[domain.Post] {
			return h.acts.CreatePost(c.Request.Context(), *in)
		},
	})

	ez.Register(e, ez.Action[action.UpdatePostInput, domain.Post]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindAuto,
		Handler: ez.WithID(func(c *gin.Context, id uint, in *action.UpdatePostInput) action.Outcome[domain.Post] {
			return h.acts.UpdatePost(c.Request.Context(), id, *in)
		}),
	})

	ez.Register(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: ez.WithID(func(c *gin.Context, id uint, _ *struct{}) action.Outcome[struct{}] {
			return h.acts.DeletePost(c.Request.Context(), id)
		}),
	})
}
