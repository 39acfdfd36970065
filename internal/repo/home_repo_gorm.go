package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homes-api/internal/domain"
	"homes-api/pkg/utils"
)

type HomeRepo struct{ db *gorm.DB }

func NewHomeRepo(db *gorm.DB) *HomeRepo { return &HomeRepo{db: db} }

func (r *HomeRepo) Create(ctx context.Context, h *domain.Home) error {
	if h.ID == "" {
		h.ID = utils.NewID()
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(h).Error
}

func (r *HomeRepo) CreateImages(ctx context.Context, images []domain.Image) error {
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		if images[i].ID == "" {
			images[i].ID = utils.NewID()
		}
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

func (r *HomeRepo) List(ctx context.Context, f domain.HomeFilter) ([]domain.Home, error) {
	q := r.db.WithContext(ctx).Model(&domain.Home{})
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", string(f.PropertyType))
	}
	var homes []domain.Home
	if err := q.Order("created_at desc").Order("id").Find(&homes).Error; err != nil {
		return nil, err
	}
	return homes, nil
}

// CoverImages 每个房源取 position 最小的一张；Preload+Limit 是全局 limit，不能用
func (r *HomeRepo) CoverImages(ctx context.Context, homeIDs []string) (map[string]domain.Image, error) {
	out := make(map[string]domain.Image, len(homeIDs))
	if len(homeIDs) == 0 {
		return out, nil
	}
	var images []domain.Image
	err := r.db.WithContext(ctx).
		Where("home_id IN ?", homeIDs).
		Order("home_id").Order("position").Order("created_at").Order("id").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		if _, ok := out[img.HomeID]; !ok {
			out[img.HomeID] = img
		}
	}
	return out, nil
}

func (r *HomeRepo) FindByID(ctx context.Context, id string) (*domain.Home, error) {
	var h domain.Home
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// FindDetail 带全部图片与经纪人
func (r *HomeRepo) FindDetail(ctx context.Context, id string) (*domain.Home, error) {
	var h domain.Home
	err := r.db.WithContext(ctx).
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position").Order("created_at").Order("id")
		}).
		Preload("Realtor").
		First(&h, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HomeRepo) Update(ctx context.Context, id string, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Home{}).Where("id = ?", id).Updates(cols).Error
}

func (r *HomeRepo) DeleteImages(ctx context.Context, homeID string) error {
	return r.db.WithContext(ctx).Where("home_id = ?", homeID).Delete(&domain.Image{}).Error
}

func (r *HomeRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Home{})
	return res.RowsAffected > 0, res.Error
}

// RealtorOf 房源不存在或经纪人已被封禁时返回 (nil, nil)
func (r *HomeRepo) RealtorOf(ctx context.Context, homeID string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Joins("JOIN homes ON homes.realtor_id = users.id").
		Where("homes.id = ?", homeID).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
