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

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Priority() int { return 10 }

func (h *AuthHandler) MountAPI(e ez.EZ) {
	ez.Register(e, ez.Action[dto.SignupIn, dto.AuthOut]{
		Method:  http.MethodPost,
		Path:    "/auth/signup/:userType",
		Binder:  ez.BindJSON,
		Status:  http.StatusCreated,
		Handler: h.signup,
	})
	ez.Register(e, ez.Action[dto.SigninIn, dto.AuthOut]{
		Method:  http.MethodPost,
		Path:    "/auth/signin",
		Binder:  ez.BindJSON,
		Handler: h.signin,
	})
	// 旧系统中该接口未加角色限制，保持公开；管理端另有受保护的 /keys
	ez.Register(e, ez.Action[dto.ProductKeyIn, map[string]string]{
		Method:  http.MethodPost,
		Path:    "/auth/key",
		Binder:  ez.BindJSON,
		Status:  http.StatusCreated,
		Handler: h.key,
	})
	ez.Register(e, ez.Action[struct{}, *dto.MeOut]{
		Method:   http.MethodGet,
		Path:     "/auth/me",
		Binder:   ez.BindNone,
		Nullable: true,
		Handler:  h.me,
	})
}

func (h *AuthHandler) signup(c *gin.Context, in *dto.SignupIn) (dto.AuthOut, error) {
	userType, ok := domain.ParseUserType(c.Param("userType"))
	if !ok {
		return dto.AuthOut{}, errs.BadRequest("Validation failed (enum string is expected)")
	}
	if err := h.auth.VerifyProductKey(in.Email, userType, in.ProductKey); err != nil {
		return dto.AuthOut{}, err
	}
	res, err := h.auth.Signup(c.Request.Context(), in.Params(), userType)
	if err != nil {
		return dto.AuthOut{}, err
	}
	return dto.Auth(res), nil
}

func (h *AuthHandler) signin(c *gin.Context, in *dto.SigninIn) (dto.AuthOut, error) {
	res, err := h.auth.Signin(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		return dto.AuthOut{}, err
	}
	return dto.Auth(res), nil
}

func (h *AuthHandler) key(_ *gin.Context, in *dto.ProductKeyIn) (map[string]string, error) {
	return h.auth.GenerateProductKey(in.Email, domain.UserType(in.UserType))
}

// me 没有合法 token 时 data 为 null
func (h *AuthHandler) me(c *gin.Context, _ *struct{}) (*dto.MeOut, error) {
	claims, ok := mdw.CurrentClaims(c)
	if !ok {
		return nil, nil
	}
	return dto.Me(claims), nil
}
