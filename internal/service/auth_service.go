package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"homes-api/internal/core/auth"
	"homes-api/internal/core/errs"
	"homes-api/internal/domain"
	"homes-api/internal/repo"
	"homes-api/pkg/utils"
)

type SignupParams struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// AuthResult user 为完整记录，对外输出前由 dto 层裁剪
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthOptions struct {
	// 为 false 时 Signin 固定签发 BUYER token（与旧系统一致）
	SigninUsesStoredRole bool
}

type AuthService struct {
	users domain.UserRepository
	jwt   *auth.JWTer
	keys  auth.ProductKeyer
	opts  AuthOptions
	log   *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, keys auth.ProductKeyer, opts AuthOptions, l *zap.Logger) *AuthService {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuthService{users: users, jwt: jwter, keys: keys, opts: opts, log: l}
}

func (s *AuthService) issue(u *domain.User, userType domain.UserType) (string, error) {
	tok, err := s.jwt.Issue(u.ID, u.Name, string(userType))
	if errors.Is(err, auth.ErrNoSecret) {
		s.log.Error("jwt secret is not configured")
		return "", errs.Internal("There is no token detected from the server.", err)
	}
	if err != nil {
		return "", errs.Internal("issue token failed", err)
	}
	return tok, nil
}

// VerifyProductKey 非 BUYER 注册前调用
func (s *AuthService) VerifyProductKey(email string, userType domain.UserType, key string) error {
	if !userType.Privileged() {
		return nil
	}
	if strings.TrimSpace(key) == "" {
		return errs.Unauthorized("No valid Product Key")
	}
	ok, err := s.keys.Verify(email, string(userType), key)
	if errors.Is(err, auth.ErrNoProductSecret) {
		s.log.Error("product secret is not configured")
		return errs.Internal("There is no key detected from the server", err)
	}
	if err != nil {
		return errs.Internal("verify product key failed", err)
	}
	if !ok {
		return errs.Unauthorized("The Product Key is not valid.")
	}
	return nil
}

func (s *AuthService) Signup(ctx context.Context, p SignupParams, userType domain.UserType) (*AuthResult, error) {
	if !userType.Valid() {
		return nil, errs.BadRequest("invalid user type")
	}
	existing, err := s.users.FindByEmailOrPhone(ctx, p.Email, p.Phone)
	if err != nil {
		return nil, errs.Internal("db error", err)
	}
	if existing != nil {
		return nil, errs.Conflict("")
	}

	hash, err := utils.HashPassword(p.Password)
	if err != nil {
		return nil, errs.Internal("hash password failed", err)
	}
	u := &domain.User{
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		Password: hash,
		UserType: userType,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发注册撞唯一索引
		if repo.IsDupKey(err) {
			return nil, errs.Conflict("")
		}
		return nil, errs.Internal("create user failed", err)
	}
	s.log.Info("user signed up", zap.String("user_id", u.ID), zap.String("user_type", string(userType)))

	tok, err := s.issue(u, userType)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: tok}, nil
}

func (s *AuthService) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, errs.Internal("db error", err)
	}
	if u == nil {
		return nil, errs.Unauthorized("This user does not exist")
	}
	if !utils.CheckPassword(password, u.Password) {
		return nil, errs.Unauthorized("Invalid credentials")
	}

	// 旧系统登录一律签 BUYER，角色判断依赖 guard 回库查询；是否改为真实角色见配置
	role := domain.UserBuyer
	if s.opts.SigninUsesStoredRole {
		role = u.UserType
	}
	tok, err := s.issue(u, role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: tok}, nil
}

// GenerateProductKey 返回 {"<email> - <userType>": key}
func (s *AuthService) GenerateProductKey(email string, userType domain.UserType) (map[string]string, error) {
	if !userType.Valid() {
		return nil, errs.BadRequest("invalid user type")
	}
	key, err := s.keys.Generate(email, string(userType))
	if errors.Is(err, auth.ErrNoProductSecret) {
		s.log.Error("product secret is not configured")
		return nil, errs.Internal("There is no token detected from the server", err)
	}
	if err != nil {
		return nil, errs.Internal("generate product key failed", err)
	}
	return map[string]string{email + " - " + string(userType): key}, nil
}
