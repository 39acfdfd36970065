// Package dto 入参定义与 持久化记录 → 对外响应 的显式映射。
// 对外字段统一 camelCase；created_at/updated_at/realtor_id/home_id 不输出。
package dto

import (
	"time"

	"homes-api/internal/domain"
	"homes-api/internal/service"
)

type ImageIn struct {
	URL string `json:"url" binding:"required"`
}

type CreateHomeIn struct {
	Address           string              `json:"address"           binding:"required"`
	NumberOfBedrooms  int                 `json:"numberOfBedrooms"  binding:"required,gt=0"`
	NumberOfBathrooms float64             `json:"numberOfBathrooms" binding:"required,gt=0"`
	City              string              `json:"city"              binding:"required"`
	Price             float64             `json:"price"             binding:"required,gt=0"`
	LandSize          float64             `json:"landSize"          binding:"required,gt=0"`
	PropertyType      domain.PropertyType `json:"propertyType"      binding:"required,oneof=RESIDENTIAL CONDO"`
	Images            []ImageIn           `json:"images"            binding:"dive"`
}

func (in CreateHomeIn) Params() service.CreateHomeParams {
	urls := make([]string, len(in.Images))
	for i, img := range in.Images {
		urls[i] = img.URL
	}
	return service.CreateHomeParams{
		Address:           in.Address,
		NumberOfBedrooms:  in.NumberOfBedrooms,
		NumberOfBathrooms: in.NumberOfBathrooms,
		City:              in.City,
		Price:             in.Price,
		LandSize:          in.LandSize,
		PropertyType:      in.PropertyType,
		ImageURLs:         urls,
	}
}

type UpdateHomeIn struct {
	Address           *string              `json:"address"           binding:"omitempty,min=1"`
	NumberOfBedrooms  *int                 `json:"numberOfBedrooms"  binding:"omitempty,gt=0"`
	NumberOfBathrooms *float64             `json:"numberOfBathrooms" binding:"omitempty,gt=0"`
	City              *string              `json:"city"              binding:"omitempty,min=1"`
	Price             *float64             `json:"price"             binding:"omitempty,gt=0"`
	LandSize          *float64             `json:"landSize"          binding:"omitempty,gt=0"`
	PropertyType      *domain.PropertyType `json:"propertyType"      binding:"omitempty,oneof=RESIDENTIAL CONDO"`
}

func (in UpdateHomeIn) Changes() domain.HomeChanges {
	return domain.HomeChanges{
		Address:           in.Address,
		NumberOfBedrooms:  in.NumberOfBedrooms,
		NumberOfBathrooms: in.NumberOfBathrooms,
		City:              in.City,
		Price:             in.Price,
		LandSize:          in.LandSize,
		PropertyType:      in.PropertyType,
	}
}

type HomeQuery struct {
	City         string   `form:"city"`
	MinPrice     *float64 `form:"minPrice"     binding:"omitempty,gte=0"`
	MaxPrice     *float64 `form:"maxPrice"     binding:"omitempty,gte=0"`
	PropertyType string   `form:"propertyType" binding:"omitempty,oneof=RESIDENTIAL CONDO"`
}

func (q HomeQuery) Filter() domain.HomeFilter {
	return domain.HomeFilter{
		City:         q.City,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		PropertyType: domain.PropertyType(q.PropertyType),
	}
}

type InquireIn struct {
	Message string `json:"message" binding:"required"`
}

type ImageOut struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type RealtorOut struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type HomeOut struct {
	ID                string              `json:"id"`
	Address           string              `json:"address"`
	NumberOfBedrooms  int                 `json:"numberOfBedrooms"`
	NumberOfBathrooms float64             `json:"numberOfBathrooms"`
	City              string              `json:"city"`
	ListedDate        time.Time           `json:"listedDate"`
	Price             float64             `json:"price"`
	LandSize          float64             `json:"landSize"`
	PropertyType      domain.PropertyType `json:"propertyType"`
	// 列表：封面图；详情：全部图片 + 经纪人
	Image   *string     `json:"image,omitempty"`
	Images  []ImageOut  `json:"images,omitempty"`
	Realtor *RealtorOut `json:"realtor,omitempty"`
}

func baseHome(h *domain.Home) HomeOut {
	return HomeOut{
		ID:                h.ID,
		Address:           h.Address,
		NumberOfBedrooms:  h.NumberOfBedrooms,
		NumberOfBathrooms: h.NumberOfBathrooms,
		City:              h.City,
		ListedDate:        h.ListedDate,
		Price:             h.Price,
		LandSize:          h.LandSize,
		PropertyType:      h.PropertyType,
	}
}

// Home 创建/更新/删除的返回，不带图片
func Home(h *domain.Home) HomeOut { return baseHome(h) }

// HomeSummaries 列表每项一张封面，没有图片时 image 为空串
func HomeSummaries(in []service.HomeSummary) []HomeOut {
	out := make([]HomeOut, len(in))
	for i := range in {
		o := baseHome(&in[i].Home)
		img := in[i].Image
		o.Image = &img
		out[i] = o
	}
	return out
}

func HomeDetail(h *domain.Home) HomeOut {
	o := baseHome(h)
	o.Images = make([]ImageOut, len(h.Images))
	for i, img := range h.Images {
		o.Images[i] = ImageOut{ID: img.ID, URL: img.URL}
	}
	if h.Realtor != nil {
		o.Realtor = &RealtorOut{Name: h.Realtor.Name, Email: h.Realtor.Email, Phone: h.Realtor.Phone}
	}
	return o
}
