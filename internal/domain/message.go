package domain

import "time"

// Message 买家针对某个房源发给房源所属经纪人的咨询
type Message struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	HomeID    string    `gorm:"size:36;not null;index" json:"home_id"`
	RealtorID string    `gorm:"size:36;not null;index" json:"realtor_id"`
	BuyerID   string    `gorm:"size:36;not null;index" json:"buyer_id"`
	CreatedAt time.Time `json:"created_at"`

	Buyer *User `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
}

func (Message) TableName() string { return "messages" }
