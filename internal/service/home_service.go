package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"homes-api/internal/core/cache"
	"homes-api/internal/core/errs"
	"homes-api/internal/domain"
)

type CreateHomeParams struct {
	Address           string
	NumberOfBedrooms  int
	NumberOfBathrooms float64
	City              string
	Price             float64
	LandSize          float64
	PropertyType      domain.PropertyType
	ImageURLs         []string
}

// HomeSummary 列表项，只带一张封面图
type HomeSummary struct {
	Home  domain.Home
	Image string
}

type HomeService struct {
	homes    domain.HomeRepository
	messages domain.MessageRepository
	cache    *cache.Cache // 可为 nil
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewHomeService(homes domain.HomeRepository, messages domain.MessageRepository, c *cache.Cache, ttl time.Duration, l *zap.Logger) *HomeService {
	if l == nil {
		l = zap.NewNop()
	}
	return &HomeService{homes: homes, messages: messages, cache: c, cacheTTL: ttl, log: l}
}

func detailKey(id string) string { return "home:" + id }

func (s *HomeService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, detailKey(id)); err != nil {
		s.log.Warn("invalidate home cache failed", zap.String("home_id", id), zap.Error(err))
	}
}

// List 没有任何结果时返回 NotFound
func (s *HomeService) List(ctx context.Context, f domain.HomeFilter) ([]HomeSummary, error) {
	homes, err := s.homes.List(ctx, f)
	if err != nil {
		return nil, errs.Internal("list homes failed", err)
	}
	if len(homes) == 0 {
		return nil, errs.NotFound("")
	}
	ids := make([]string, len(homes))
	for i, h := range homes {
		ids[i] = h.ID
	}
	covers, err := s.homes.CoverImages(ctx, ids)
	if err != nil {
		return nil, errs.Internal("load cover images failed", err)
	}
	out := make([]HomeSummary, len(homes))
	for i, h := range homes {
		out[i] = HomeSummary{Home: h, Image: covers[h.ID].URL}
	}
	return out, nil
}

func (s *HomeService) GetByID(ctx context.Context, id string) (*domain.Home, error) {
	return cache.GetOrLoadJSON(s.cache, ctx, detailKey(id), s.cacheTTL, func(ctx context.Context) (*domain.Home, error) {
		h, err := s.homes.FindDetail(ctx, id)
		if err != nil {
			return nil, errs.Internal("get home failed", err)
		}
		if h == nil {
			return nil, errs.NotFound("")
		}
		return h, nil
	})
}

// Create 先写房源再批量写图片，两步之间没有事务
func (s *HomeService) Create(ctx context.Context, p CreateHomeParams, realtorID string) (*domain.Home, error) {
	h := &domain.Home{
		Address:           p.Address,
		NumberOfBedrooms:  p.NumberOfBedrooms,
		NumberOfBathrooms: p.NumberOfBathrooms,
		City:              p.City,
		Price:             p.Price,
		LandSize:          p.LandSize,
		PropertyType:      p.PropertyType,
		RealtorID:         realtorID,
	}
	if err := s.homes.Create(ctx, h); err != nil {
		return nil, errs.Internal("create home failed", err)
	}

	images := make([]domain.Image, len(p.ImageURLs))
	for i, u := range p.ImageURLs {
		images[i] = domain.Image{URL: u, HomeID: h.ID, Position: i}
	}
	if err := s.homes.CreateImages(ctx, images); err != nil {
		s.log.Error("home created without images", zap.String("home_id", h.ID), zap.Error(err))
		return nil, errs.Internal("create images failed", err)
	}
	s.log.Info("home created", zap.String("home_id", h.ID), zap.String("realtor_id", realtorID), zap.Int("images", len(images)))
	return h, nil
}

func (s *HomeService) Update(ctx context.Context, id string, ch domain.HomeChanges) (*domain.Home, error) {
	h, err := s.homes.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Internal("get home failed", err)
	}
	if h == nil {
		return nil, errs.NotFound("")
	}
	if err := s.homes.Update(ctx, id, ch.Columns()); err != nil {
		return nil, errs.Internal("update home failed", err)
	}
	s.invalidate(ctx, id)

	updated, err := s.homes.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Internal("get home failed", err)
	}
	if updated == nil {
		return nil, errs.NotFound("")
	}
	return updated, nil
}

// Delete 先删图片再删房源；房源是否存在在最后一步才判断
func (s *HomeService) Delete(ctx context.Context, id string) error {
	if err := s.homes.DeleteImages(ctx, id); err != nil {
		return errs.Internal("delete images failed", err)
	}
	ok, err := s.homes.Delete(ctx, id)
	if err != nil {
		return errs.Internal("delete home failed", err)
	}
	s.invalidate(ctx, id)
	if !ok {
		return errs.NotFound("The home with the ID : " + id + " cannot be found.")
	}
	return nil
}

// RealtorOf 房源的所属经纪人，用于 handler 层的归属校验
func (s *HomeService) RealtorOf(ctx context.Context, homeID string) (*domain.User, error) {
	u, err := s.homes.RealtorOf(ctx, homeID)
	if err != nil {
		return nil, errs.Internal("get realtor failed", err)
	}
	if u == nil {
		return nil, errs.NotFound("")
	}
	return u, nil
}

func (s *HomeService) Inquire(ctx context.Context, buyerID, homeID, message string) (*domain.Message, error) {
	realtor, err := s.RealtorOf(ctx, homeID)
	if err != nil {
		return nil, err
	}
	m := &domain.Message{
		Message:   message,
		HomeID:    homeID,
		RealtorID: realtor.ID,
		BuyerID:   buyerID,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, errs.Internal("create message failed", err)
	}
	return m, nil
}

func (s *HomeService) Messages(ctx context.Context, homeID string) ([]domain.Message, error) {
	out, err := s.messages.ListByHome(ctx, homeID)
	if err != nil {
		return nil, errs.Internal("list messages failed", err)
	}
	return out, nil
}
