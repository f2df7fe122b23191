package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-crud/internal/action"
	"go-gin-gorm-crud/internal/transport/http/ez"
)

type Stats struct{ acts *action.Actions }

func NewStats(acts *action.Actions) *Stats { return &Stats{acts: acts} }

func (*Stats) Priority() int { return 30 }

func (h *Stats) MountAPI(api *gin.RouterGroup) {
	ez.Register(ez.New(api), ez.Action[struct{}, action.Stats]{
		Method: http.MethodGet,
		Path:   "/stats",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) action.Outcome[action.Stats] {
			return h.acts.Stats(c.Request.Context())
		},
	})
}
