package dto

import (
	"time"

	"homes-api/internal/core/auth"
	"homes-api/internal/domain"
	"homes-api/internal/service"
)

type SignupIn struct {
	Name       string `json:"name"       binding:"required"`
	Phone      string `json:"phone"      binding:"required,phone"`
	Email      string `json:"email"      binding:"required,email"`
	Password   string `json:"password"   binding:"required,min=5,max=72"`
	ProductKey string `json:"productKey" binding:"omitempty,min=1"`
}

func (in SignupIn) Params() service.SignupParams {
	return service.SignupParams{Name: in.Name, Email: in.Email, Phone: in.Phone, Password: in.Password}
}

type SigninIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ProductKeyIn struct {
	Email    string `json:"email"    binding:"required"`
	UserType string `json:"userType" binding:"required,oneof=BUYER REALTOR ADMIN"`
}

type UserOut struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	UserType domain.UserType `json:"userType"`
}

func User(u *domain.User) UserOut {
	return UserOut{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, UserType: u.UserType}
}

type AuthOut struct {
	User  UserOut `json:"user"`
	Token string  `json:"token"`
}

func Auth(r *service.AuthResult) AuthOut {
	return AuthOut{User: User(r.User), Token: r.Token}
}

// MeOut token 载荷，字段名与 token 保持一致
type MeOut struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	UserType string `json:"user_type"`
	Iat      int64  `json:"iat"`
	Exp      int64  `json:"exp"`
}

type AdminUserOut struct {
	UserOut
	CreatedAt time.Time  `json:"createdAt"`
	BannedAt  *time.Time `json:"bannedAt,omitempty"`
}

func AdminUser(u *domain.User) AdminUserOut {
	out := AdminUserOut{UserOut: User(u), CreatedAt: u.CreatedAt}
	if u.DeletedAt.Valid {
		t := u.DeletedAt.Time
		out.BannedAt = &t
	}
	return out
}

type BuyerOut struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type MessageOut struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Buyer     *BuyerOut `json:"buyer,omitempty"`
}

func Message(m *domain.Message) MessageOut {
	out := MessageOut{ID: m.ID, Message: m.Message, CreatedAt: m.CreatedAt}
	if m.Buyer != nil {
		out.Buyer = &BuyerOut{Name: m.Buyer.Name, Email: m.Buyer.Email, Phone: m.Buyer.Phone}
	}
	return out
}

func Messages(in []domain.Message) []MessageOut {
	out := make([]MessageOut, len(in))
	for i := range in {
		out[i] = Message(&in[i])
	}
	return out
}

func Me(c *auth.Claims) *MeOut {
	out := &MeOut{ID: c.UserID, Name: c.Name, UserType: c.UserType}
	if c.IssuedAt != nil {
		out.Iat = c.IssuedAt.Unix()
	}
	if c.ExpiresAt != nil {
		out.Exp = c.ExpiresAt.Unix()
	}
	return out
}
