package repo

import (
	"gorm.io/gorm"

	"homes-api/internal/domain"
)

// Models 需要建表的全部模型，顺序即外键依赖顺序
func Models() []any {
	return []any{&domain.User{}, &domain.Home{}, &domain.Image{}, &domain.Message{}}
}

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }
