// Package ez 路由声明表：每条路由显式写出 方法/路径/绑定方式/允许角色，
// 注册时统一套上 鉴权 → 绑定 → 执行 → 错误映射。
package ez

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homes-api/internal/core/errs"
	"homes-api/internal/domain"
	mdw "homes-api/internal/transport/http/middleware"
	resp "homes-api/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

type EZ struct {
	g     *gin.RouterGroup
	guard *mdw.Guard
	log   *zap.Logger
}

func New(g *gin.RouterGroup, guard *mdw.Guard, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, guard: guard, log: l}
}

// Action I 入参，O 出参
type Action[I any, O any] struct {
	Method string // "GET" | "POST" | "PUT" | "DELETE"
	Path   string // 例："/home/:id/inquire"
	Binder Binder
	// Roles 为空表示公开；非空时先过 guard，失败 403
	Roles []domain.UserType
	// Status 成功时的 HTTP 状态码，默认 200
	Status int
	// Nullable 为 true 时 data 允许输出 null
	Nullable bool
	Handler  func(c *gin.Context, in *I) (O, error)
}

// Register 在当前 EZ 下注册动作接口
func Register[I any, O any](e EZ, a Action[I, O]) {
	roles := append([]domain.UserType(nil), a.Roles...)
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}

	h := func(c *gin.Context) {
		// 1) 角色
		if len(roles) > 0 && (e.guard == nil || !e.guard.Authorize(c, roles)) {
			resp.Abort(c, resp.CodeForbidden, "Forbidden resource")
			return
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default:
		}
		if bindErr != nil {
			resp.Abort(c, resp.CodeBadRequest, bindErr.Error())
			return
		}

		// 3) 执行
		out, err := a.Handler(c, &in)

		// 4) 统一错误映射，内部原因只进日志
		if err != nil {
			code := errs.CodeOf(err)
			msg := errs.Public(err)
			if code >= http.StatusInternalServerError {
				e.log.Error("action failed",
					zap.String("method", c.Request.Method),
					zap.String("path", c.FullPath()),
					zap.String("rid", c.GetString(mdw.KeyRequestID)),
					zap.Error(err),
				)
				_ = c.Error(err)
			}
			resp.Abort(c, code, msg)
			return
		}
		if a.Nullable {
			c.JSON(status, resp.Raw(out))
			return
		}
		c.JSON(status, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}
