// Package app 组装两个进程共用的依赖：DB、缓存、JWT、各 service。
package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"homes-api/internal/core/auth"
	"homes-api/internal/core/cache"
	"homes-api/internal/core/config"
	"homes-api/internal/core/database"
	"homes-api/internal/repo"
	"homes-api/internal/service"
	"homes-api/internal/transport/http/router"
)

type App struct {
	Cfg   *config.Config
	Log   *zap.Logger
	DB    *gorm.DB
	Cache *cache.Cache // redis.addr 为空时为 nil
	JWT   *auth.JWTer

	Auth  *service.AuthService
	Homes *service.HomeService
	Users *service.UserService
}

// New 打开 DB（可选 redis），按配置自动迁移并构造 service
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                l,
	})
	if err != nil {
		return nil, err
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, err
		}
		l.Info("automigrate done")
	}

	a := &App{Cfg: cfg, Log: l, DB: db}

	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := c.Ping(ctx); err != nil {
			// 缓存不可用不影响启动
			l.Warn("redis unavailable, home cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = c.Close()
		} else {
			a.Cache = c
			l.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	if cfg.JWT.Secret == "" {
		l.Error("jwt secret is empty: token issuance fails and protected routes deny")
	}
	if cfg.Auth.ProductSecret == "" {
		l.Warn("product secret is empty: privileged signup and key generation fail")
	}
	a.JWT = &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLSec) * time.Second,
	}

	users := repo.NewUserRepo(db)
	a.Auth = service.NewAuthService(users, a.JWT, auth.ProductKeyer{Secret: cfg.Auth.ProductSecret},
		service.AuthOptions{SigninUsesStoredRole: cfg.Auth.SigninUsesStoredRole}, l)
	a.Homes = service.NewHomeService(repo.NewHomeRepo(db), repo.NewMessageRepo(db), a.Cache,
		time.Duration(cfg.Redis.HomeTTLSec)*time.Second, l)
	a.Users = service.NewUserService(users, l)
	return a, nil
}

// RouterDeps 给 router 的依赖；http 为对应进程的 HTTP 配置
func (a *App) RouterDeps(http config.HTTP) router.Deps {
	mode := "debug"
	if a.Cfg.App.Env == "prod" || a.Cfg.App.Env == "production" {
		mode = "release"
	}
	return router.Deps{
		Log:   a.Log,
		HTTP:  http,
		Mode:  mode,
		JWT:   a.JWT,
		Auth:  a.Auth,
		Homes: a.Homes,
		Users: a.Users,
		Ready: a.Ping,
	}
}

func (a *App) Ping(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (a *App) Close() {
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	if err := database.Close(a.DB); err != nil {
		a.Log.Warn("close db", zap.Error(err))
	}
}
