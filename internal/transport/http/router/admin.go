package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"homes-api/internal/domain"
	"homes-api/internal/transport/http/dto"
	"homes-api/internal/transport/http/ez"
	"homes-api/internal/transport/http/handler"
	mdw "homes-api/internal/transport/http/middleware"
)

func NewAdminEngine(d Deps) (*gin.Engine, error) {
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}
	l := d.logger()

	var limit gin.HandlerFunc
	if d.HTTP.RateLimitRPS > 0 {
		limit = mdw.RateLimit(rate.Limit(d.HTTP.RateLimitRPS), max(1, d.HTTP.RateLimitBurst))
	}
	r := base(d, limit)

	guard := mdw.NewGuard(d.JWT, d.Users, l)

	// 管理端 v1（统一要求 ADMIN 角色）
	admin := r.Group("/admin/v1")
	admin.Use(guard.Require(domain.UserAdmin))

	reg := &Registry{}
	reg.Register(handler.NewAdminHandler(d.Users, d.Auth))
	reg.MountAdmin(ez.New(admin, guard, l))
	return r, nil
}
