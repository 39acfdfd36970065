package domain

import (
	"time"

	"gorm.io/gorm"
)

type UserType string

const (
	UserBuyer   UserType = "BUYER"
	UserRealtor UserType = "REALTOR"
	UserAdmin   UserType = "ADMIN"
)

func (t UserType) Valid() bool {
	switch t {
	case UserBuyer, UserRealtor, UserAdmin:
		return true
	}
	return false
}

// Privileged 非 BUYER 注册需要 product key
func (t UserType) Privileged() bool { return t != UserBuyer }

func ParseUserType(s string) (UserType, bool) {
	t := UserType(s)
	return t, t.Valid()
}

type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Name      string         `gorm:"size:64;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Phone     string         `gorm:"uniqueIndex;size:32;not null" json:"phone"`
	Password  string         `gorm:"size:100;not null" json:"-"`
	UserType  UserType       `gorm:"column:user_type;size:16;not null;index" json:"user_type"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
