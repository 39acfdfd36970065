package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homes-api/internal/core/auth"
	"homes-api/internal/domain"
	resp "homes-api/internal/transport/http/response"
)

const (
	KeyClaims = "claims"
	KeyUser   = "user"
)

// UserLoader guard 每次请求都按 token 的 id 回库取用户
type UserLoader interface {
	Get(ctx context.Context, id string) (*domain.User, error)
}

type Guard struct {
	jwt   *auth.JWTer
	users UserLoader
	log   *zap.Logger
}

func NewGuard(j *auth.JWTer, users UserLoader, l *zap.Logger) *Guard {
	if l == nil {
		l = zap.NewNop()
	}
	return &Guard{jwt: j, users: users, log: l}
}

func bearer(c *gin.Context) (string, bool) {
	tok, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	tok = strings.TrimSpace(tok)
	return tok, ok && tok != ""
}

// Authorize roles 为空直接放行；否则 验签 → 回库 → 角色匹配，任何失败都只返回 false。
// 通过时把库里的用户和 claims 挂到 context。
func (g *Guard) Authorize(c *gin.Context, roles []domain.UserType) bool {
	if len(roles) == 0 {
		return true
	}
	tok, ok := bearer(c)
	if !ok {
		return false
	}
	claims, err := g.jwt.Parse(tok)
	if err != nil {
		if errors.Is(err, auth.ErrNoSecret) {
			g.log.Error("guard: jwt secret is not configured, denying request")
		}
		return false
	}
	u, err := g.users.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		g.log.Warn("guard: load user failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return false
	}
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.UserType == r {
			c.Set(KeyClaims, claims)
			c.Set(KeyUser, u)
			return true
		}
	}
	return false
}

// Require 整组路由使用（管理端）
func (g *Guard) Require(roles ...domain.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.Authorize(c, roles) {
			resp.Abort(c, resp.CodeForbidden, "Forbidden resource")
			return
		}
		c.Next()
	}
}

// Identify 每个请求都执行：有合法 token 时挂上 claims，没有或不合法时什么都不做。
// 只信任验签通过的载荷。
func Identify(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok, ok := bearer(c); ok {
			if claims, err := j.Parse(tok); err == nil {
				c.Set(KeyClaims, claims)
			}
		}
		c.Next()
	}
}

func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// CurrentUser 只有经过 guard 的路由才有
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(KeyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}
