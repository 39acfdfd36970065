package repo

import (
	"context"

	"gorm.io/gorm"

	"homes-api/internal/domain"
	"homes-api/pkg/utils"
)

type MessageRepo struct{ db *gorm.DB }

func NewMessageRepo(db *gorm.DB) *MessageRepo { return &MessageRepo{db: db} }

func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) error {
	if m.ID == "" {
		m.ID = utils.NewID()
	}
	return r.db.WithContext(ctx).Omit("Buyer").Create(m).Error
}

func (r *MessageRepo) ListByHome(ctx context.Context, homeID string) ([]domain.Message, error) {
	var out []domain.Message
	err := r.db.WithContext(ctx).
		Preload("Buyer", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		Where("home_id = ?", homeID).
		Order("created_at").Order("id").
		Find(&out).Error
	return out, err
}
