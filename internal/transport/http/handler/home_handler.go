package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homes-api/internal/core/errs"
	"homes-api/internal/domain"
	"homes-api/internal/service"
	"homes-api/internal/transport/http/dto"
	"homes-api/internal/transport/http/ez"
	mdw "homes-api/internal/transport/http/middleware"
)

type HomeHandler struct {
	homes *service.HomeService
}

func NewHomeHandler(homes *service.HomeService) *HomeHandler {
	return &HomeHandler{homes: homes}
}

func (h *HomeHandler) Priority() int { return 20 }

func (h *HomeHandler) MountAPI(e ez.EZ) {
	realtor := []domain.UserType{domain.UserRealtor}

	ez.Register(e, ez.Action[dto.HomeQuery, []dto.HomeOut]{
		Method:  http.MethodGet,
		Path:    "/home",
		Binder:  ez.BindQuery,
		Handler: h.list,
	})
	ez.Register(e, ez.Action[struct{}, dto.HomeOut]{
		Method:  http.MethodGet,
		Path:    "/home/:id",
		Binder:  ez.BindNone,
		Handler: h.get,
	})
	ez.Register(e, ez.Action[dto.CreateHomeIn, dto.HomeOut]{
		Method:  http.MethodPost,
		Path:    "/home",
		Binder:  ez.BindJSON,
		Roles:   realtor,
		Status:  http.StatusCreated,
		Handler: h.create,
	})
	ez.Register(e, ez.Action[dto.UpdateHomeIn, dto.HomeOut]{
		Method:  http.MethodPut,
		Path:    "/home/:id",
		Binder:  ez.BindJSON,
		Roles:   realtor,
		Handler: h.update,
	})
	ez.Register(e, ez.Action[struct{}, gin.H]{
		Method:  http.MethodDelete,
		Path:    "/home/:id",
		Binder:  ez.BindNone,
		Roles:   realtor,
		Handler: h.delete,
	})
	ez.Register(e, ez.Action[dto.InquireIn, dto.MessageOut]{
		Method:  http.MethodPost,
		Path:    "/home/:id/inquire",
		Binder:  ez.BindJSON,
		Roles:   []domain.UserType{domain.UserBuyer},
		Status:  http.StatusCreated,
		Handler: h.inquire,
	})
	ez.Register(e, ez.Action[struct{}, []dto.MessageOut]{
		Method:  http.MethodGet,
		Path:    "/home/:id/messages",
		Binder:  ez.BindNone,
		Roles:   realtor,
		Handler: h.messages,
	})
}

func (h *HomeHandler) list(c *gin.Context, in *dto.HomeQuery) ([]dto.HomeOut, error) {
	out, err := h.homes.List(c.Request.Context(), in.Filter())
	if err != nil {
		return nil, err
	}
	return dto.HomeSummaries(out), nil
}

func (h *HomeHandler) get(c *gin.Context, _ *struct{}) (dto.HomeOut, error) {
	id, err := pathID(c)
	if err != nil {
		return dto.HomeOut{}, err
	}
	home, err := h.homes.GetByID(c.Request.Context(), id)
	if err != nil {
		return dto.HomeOut{}, err
	}
	return dto.HomeDetail(home), nil
}

func (h *HomeHandler) create(c *gin.Context, in *dto.CreateHomeIn) (dto.HomeOut, error) {
	u, ok := mdw.CurrentUser(c)
	if !ok {
		return dto.HomeOut{}, errs.Unauthorized("")
	}
	home, err := h.homes.Create(c.Request.Context(), in.Params(), u.ID)
	if err != nil {
		return dto.HomeOut{}, err
	}
	return dto.Home(home), nil
}

// ensureOwner 房源所属经纪人必须是当前用户，否则 401
func (h *HomeHandler) ensureOwner(c *gin.Context, homeID string) error {
	u, ok := mdw.CurrentUser(c)
	if !ok {
		return errs.Unauthorized("")
	}
	realtor, err := h.homes.RealtorOf(c.Request.Context(), homeID)
	if err != nil {
		return err
	}
	if realtor.ID != u.ID {
		return errs.Unauthorized("")
	}
	return nil
}

func (h *HomeHandler) update(c *gin.Context, in *dto.UpdateHomeIn) (dto.HomeOut, error) {
	id, err := pathID(c)
	if err != nil {
		return dto.HomeOut{}, err
	}
	if err := h.ensureOwner(c, id); err != nil {
		return dto.HomeOut{}, err
	}
	home, err := h.homes.Update(c.Request.Context(), id, in.Changes())
	if err != nil {
		return dto.HomeOut{}, err
	}
	return dto.Home(home), nil
}

func (h *HomeHandler) delete(c *gin.Context, _ *struct{}) (gin.H, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}
	if err := h.ensureOwner(c, id); err != nil {
		return nil, err
	}
	if err := h.homes.Delete(c.Request.Context(), id); err != nil {
		return nil, err
	}
	return gin.H{"id": id}, nil
}

func (h *HomeHandler) inquire(c *gin.Context, in *dto.InquireIn) (dto.MessageOut, error) {
	id, err := pathID(c)
	if err != nil {
		return dto.MessageOut{}, err
	}
	u, ok := mdw.CurrentUser(c)
	if !ok {
		return dto.MessageOut{}, errs.Unauthorized("")
	}
	m, err := h.homes.Inquire(c.Request.Context(), u.ID, id, in.Message)
	if err != nil {
		return dto.MessageOut{}, err
	}
	return dto.Message(m), nil
}

func (h *HomeHandler) messages(c *gin.Context, _ *struct{}) ([]dto.MessageOut, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}
	if err := h.ensureOwner(c, id); err != nil {
		return nil, err
	}
	msgs, err := h.homes.Messages(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return dto.Messages(msgs), nil
}
