// Package ez 把 action 层的用例一行注册成 gin 路由：绑定入参、调用、
// 以 Outcome 作为响应体（HTTP 状态码恒为 200，成功与否看 success 字段）。
package ez

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-crud/internal/action"
	mdw "go-gin-gorm-crud/internal/transport/http/middleware"
	resp "go-gin-gorm-crud/internal/transport/http/response"
)

const MsgInvalidID = "Invalid id"

// 绑定方式
type Binder string

const (
	BindAuto  Binder = "auto"  // 按 Content-Type 选择 JSON 或表单
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/posts"、"/posts/:id"
	Binder  Binder
	Handler func(c *gin.Context, in *I) action.Outcome[O]
}

func Register[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			c.Set(mdw.KeyOutcome, string(action.KindInvalid))
			c.JSON(http.StatusOK, bindError(err))
			return
		}
		o := a.Handler(c, &in)
		c.Set(mdw.KeyOutcome, string(o.Kind))
		c.JSON(http.StatusOK, o)
	}

	method := strings.ToUpper(a.Method)
	if method == "" {
		method = http.MethodPost
	}
	e.g.Handle(method, a.Path, h)
}

func bind(c *gin.Context, b Binder, in any) error {
	var err error
	switch b {
	case BindAuto:
		err = c.ShouldBind(in)
	case BindJSON:
		err = c.ShouldBindJSON(in)
	case BindQuery:
		err = c.ShouldBindQuery(in)
	default: // BindNone: 不绑定
	}
	// 空 body 当作空入参，交给 action 层校验
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func bindError(err error) resp.Resp {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return resp.Error(resp.CodeEntityTooLarge, "")
	}
	return resp.Error(resp.CodeBadRequest, "Invalid request body")
}

// WithID 解析 :id，非法时直接返回失败，不进入 action
func WithID[I any, O any](fn func(c *gin.Context, id uint, in *I) action.Outcome[O]) func(*gin.Context, *I) action.Outcome[O] {
	return func(c *gin.Context, in *I) action.Outcome[O] {
		id, ok := ParamID(c)
		if !ok {
			return action.Invalid[O](MsgInvalidID)
		}
		return fn(c, id, in)
	}
}

func ParamID(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
