package domain

import "context"

// 约定：按主键/唯一键查找不到时返回 (nil, nil)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*User, error)
	List(ctx context.Context, q string, offset, limit int, withDeleted bool) ([]User, int64, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}

type HomeRepository interface {
	Create(ctx context.Context, h *Home) error
	CreateImages(ctx context.Context, images []Image) error
	List(ctx context.Context, f HomeFilter) ([]Home, error)
	CoverImages(ctx context.Context, homeIDs []string) (map[string]Image, error)
	FindByID(ctx context.Context, id string) (*Home, error)
	FindDetail(ctx context.Context, id string) (*Home, error)
	Update(ctx context.Context, id string, cols map[string]any) error
	DeleteImages(ctx context.Context, homeID string) error
	Delete(ctx context.Context, id string) (bool, error)
	RealtorOf(ctx context.Context, homeID string) (*User, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	ListByHome(ctx context.Context, homeID string) ([]Message, error)
}
