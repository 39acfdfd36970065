package domain

import "time"

type PropertyType string

const (
	PropertyResidential PropertyType = "RESIDENTIAL"
	PropertyCondo       PropertyType = "CONDO"
)

func (t PropertyType) Valid() bool {
	return t == PropertyResidential || t == PropertyCondo
}

type Home struct {
	ID                string       `gorm:"primaryKey;size:36" json:"id"`
	Address           string       `gorm:"size:255;not null" json:"address"`
	NumberOfBedrooms  int          `gorm:"not null" json:"number_of_bedrooms"`
	NumberOfBathrooms float64      `gorm:"not null" json:"number_of_bathrooms"`
	City              string       `gorm:"size:128;not null;index" json:"city"`
	ListedDate        time.Time    `gorm:"autoCreateTime" json:"listed_date"`
	Price             float64      `gorm:"not null;index" json:"price"`
	LandSize          float64      `gorm:"not null" json:"land_size"`
	PropertyType      PropertyType `gorm:"column:property_type;size:16;not null;index" json:"property_type"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
	RealtorID         string       `gorm:"size:36;not null;index" json:"realtor_id"`

	Realtor *User   `gorm:"foreignKey:RealtorID" json:"realtor,omitempty"`
	Images  []Image `gorm:"foreignKey:HomeID" json:"images,omitempty"`
}

func (Home) TableName() string { return "homes" }

type Image struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	URL       string    `gorm:"column:url;size:1024;not null" json:"url"`
	HomeID    string    `gorm:"size:36;not null;index" json:"home_id"`
	Position  int       `gorm:"not null;default:0" json:"position"` // 创建时的顺序，0 为封面
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Image) TableName() string { return "images" }

// HomeFilter 各条件为 AND 关系，nil/空值表示不过滤
type HomeFilter struct {
	City         string
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType PropertyType
}

// HomeChanges 局部更新，只写非 nil 字段
type HomeChanges struct {
	Address           *string
	NumberOfBedrooms  *int
	NumberOfBathrooms *float64
	City              *string
	Price             *float64
	LandSize          *float64
	PropertyType      *PropertyType
}

// Columns 转成 gorm Updates 用的列映射
func (c HomeChanges) Columns() map[string]any {
	m := map[string]any{}
	if c.Address != nil {
		m["address"] = *c.Address
	}
	if c.NumberOfBedrooms != nil {
		m["number_of_bedrooms"] = *c.NumberOfBedrooms
	}
	if c.NumberOfBathrooms != nil {
		m["number_of_bathrooms"] = *c.NumberOfBathrooms
	}
	if c.City != nil {
		m["city"] = *c.City
	}
	if c.Price != nil {
		m["price"] = *c.Price
	}
	if c.LandSize != nil {
		m["land_size"] = *c.LandSize
	}
	if c.PropertyType != nil {
		m["property_type"] = string(*c.PropertyType)
	}
	return m
}
