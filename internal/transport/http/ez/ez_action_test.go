package ez_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"homes-api/internal/core/errs"
	"homes-api/internal/domain"
	"homes-api/internal/transport/http/ez"
)

func init() { gin.SetMode(gin.TestMode) }

type pingIn struct {
	Name string `json:"name" binding:"required"`
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	r := gin.New()
	e := ez.New(&r.RouterGroup, nil, nil)

	ez.Register(e, ez.Action[pingIn, string]{
		Method: http.MethodPost,
		Path:   "/ping",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(_ *gin.Context, in *pingIn) (string, error) {
			switch in.Name {
			case "missing":
				return "", errs.NotFound("no such thing")
			case "boom":
				return "", errs.Internal("ping failed", errors.New("dsn=secret"))
			case "raw":
				return "", errors.New("driver: bad connection")
			}
			return "hello " + in.Name, nil
		},
	})
	ez.Register(e, ez.Action[struct{}, string]{
		Method:  http.MethodGet,
		Path:    "/private",
		Roles:   []domain.UserType{domain.UserAdmin},
		Handler: func(*gin.Context, *struct{}) (string, error) { return "secret", nil },
	})

	w := serve(r, http.MethodPost, "/ping", `{"name":"bob"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"code":0,"msg":"OK","data":"hello bob"}`, w.Body.String())

	w = serve(r, http.MethodPost, "/ping", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/ping", `{"name":"missing"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no such thing")

	w = serve(r, http.MethodPost, "/ping", `{"name":"boom"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "ping failed")
	assert.NotContains(t, w.Body.String(), "secret")

	w = serve(r, http.MethodPost, "/ping", `{"name":"raw"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")
	assert.NotContains(t, w.Body.String(), "driver")

	// 声明了角色但没有 guard 时拒绝
	w = serve(r, http.MethodGet, "/private", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}
