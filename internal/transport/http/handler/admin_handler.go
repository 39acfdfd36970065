package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homes-api/internal/domain"
	"homes-api/internal/service"
	"homes-api/internal/transport/http/dto"
	"homes-api/internal/transport/http/ez"
)

// AdminHandler 挂在 /admin/v1，分组已要求 ADMIN
type AdminHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

func NewAdminHandler(users *service.UserService, auth *service.AuthService) *AdminHandler {
	return &AdminHandler{users: users, auth: auth}
}

type listUsersQ struct {
	Offset      int    `form:"offset,default=0"`
	Limit       int    `form:"limit,default=20"`
	Q           string `form:"q"`            // 按 email/name 模糊搜
	WithDeleted bool   `form:"with_deleted"` // 是否包含已封禁
}

type listUsersOut struct {
	Total int64              `json:"total"`
	Items []dto.AdminUserOut `json:"items"`
}

func (h *AdminHandler) MountAdmin(e ez.EZ) {
	ez.Register(e, ez.Action[listUsersQ, listUsersOut]{
		Method:  http.MethodGet,
		Path:    "/users",
		Binder:  ez.BindQuery,
		Handler: h.listUsers,
	})
	ez.Register(e, ez.Action[struct{}, gin.H]{
		Method:  http.MethodPost,
		Path:    "/users/:id/ban",
		Binder:  ez.BindNone,
		Handler: h.ban,
	})
	ez.Register(e, ez.Action[dto.ProductKeyIn, map[string]string]{
		Method:  http.MethodPost,
		Path:    "/keys",
		Binder:  ez.BindJSON,
		Status:  http.StatusCreated,
		Handler: h.key,
	})
}

func (h *AdminHandler) listUsers(c *gin.Context, in *listUsersQ) (listUsersOut, error) {
	us, total, err := h.users.List(c.Request.Context(), in.Q, in.Offset, in.Limit, in.WithDeleted)
	if err != nil {
		return listUsersOut{}, err
	}
	out := listUsersOut{Total: total, Items: make([]dto.AdminUserOut, len(us))}
	for i := range us {
		out.Items[i] = dto.AdminUser(&us[i])
	}
	return out, nil
}

func (h *AdminHandler) ban(c *gin.Context, _ *struct{}) (gin.H, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}
	if err := h.users.Ban(c.Request.Context(), id); err != nil {
		return nil, err
	}
	return gin.H{"id": id}, nil
}

func (h *AdminHandler) key(_ *gin.Context, in *dto.ProductKeyIn) (map[string]string, error) {
	return h.auth.GenerateProductKey(in.Email, domain.UserType(in.UserType))
}
