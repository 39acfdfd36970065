package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"homes-api/internal/core/auth"
	"homes-api/internal/core/config"
	"homes-api/internal/core/server"
	"homes-api/internal/service"
	"homes-api/internal/transport/http/dto"
	"homes-api/internal/transport/http/ez"
	"homes-api/internal/transport/http/handler"
	mdw "homes-api/internal/transport/http/middleware"
	resp "homes-api/internal/transport/http/response"
)

type Deps struct {
	Log   *zap.Logger
	HTTP  config.HTTP
	Mode  string
	JWT   *auth.JWTer
	Auth  *service.AuthService
	Homes *service.HomeService
	Users *service.UserService
	// Ready 可选，/health 时调用（如 DB ping）
	Ready func(ctx context.Context) error
}

func (d Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// base 两个 engine 共用的中间件链；limit 为限速中间件，按 engine 区分全局/按 IP
func base(d Deps, limit gin.HandlerFunc) *gin.Engine {
	l := d.logger()
	r := server.NewRouter(server.Options{Name: "homes-api", Mode: d.Mode})

	chain := []gin.HandlerFunc{mdw.RequestID()}
	if limit != nil {
		chain = append(chain, limit)
	}
	chain = append(chain,
		mdw.ConcurrencyLimit(d.HTTP.MaxConcurrency),
		mdw.MaxBodyBytes(d.HTTP.MaxBodyBytes),
		mdw.Timeout(time.Duration(d.HTTP.RequestTimeout)*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)
	r.Use(chain...)

	r.NoRoute(func(c *gin.Context) {
		resp.Abort(c, resp.CodeNotFound, "Cannot "+c.Request.Method+" "+c.Request.URL.Path)
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		if d.Ready != nil {
			if err := d.Ready(c.Request.Context()); err != nil {
				l.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, resp.Error(resp.CodeUnavailable, "not ready"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func NewAPIEngine(d Deps) (*gin.Engine, error) {
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}
	l := d.logger()

	var limit gin.HandlerFunc
	if d.HTTP.RateLimitRPS > 0 {
		limit = mdw.RateLimitPerIP(rate.Limit(d.HTTP.RateLimitRPS), max(1, d.HTTP.RateLimitBurst))
	}
	r := base(d, limit)
	r.Use(mdw.Identify(d.JWT))

	guard := mdw.NewGuard(d.JWT, d.Users, l)
	reg := &Registry{}
	reg.Register(
		handler.NewAuthHandler(d.Auth),
		handler.NewHomeHandler(d.Homes),
	)
	reg.MountAPI(ez.New(&r.RouterGroup, guard, l))
	return r, nil
}
