package service

import (
	"context"

	"go.uber.org/zap"

	"homes-api/internal/core/errs"
	"homes-api/internal/domain"
)

// UserService 管理端用户操作
type UserService struct {
	users domain.UserRepository
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, l *zap.Logger) *UserService {
	if l == nil {
		l = zap.NewNop()
	}
	return &UserService{users: users, log: l}
}

func (s *UserService) List(ctx context.Context, q string, offset, limit int, withDeleted bool) ([]domain.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, total, err := s.users.List(ctx, q, offset, limit, withDeleted)
	if err != nil {
		return nil, 0, errs.Internal("list users failed", err)
	}
	return users, total, nil
}

// Ban 软删除；被封禁用户的 token 在 guard 回库时失效
func (s *UserService) Ban(ctx context.Context, id string) error {
	ok, err := s.users.SoftDelete(ctx, id)
	if err != nil {
		return errs.Internal("ban user failed", err)
	}
	if !ok {
		return errs.NotFound("user not found")
	}
	s.log.Info("user banned", zap.String("user_id", id))
	return nil
}

// Get guard 回库用；找不到返回 (nil, nil)
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}
