package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"homes-api/internal/core/auth"
	"homes-api/internal/core/config"
	"homes-api/internal/core/database/dbtest"
	"homes-api/internal/domain"
	"homes-api/internal/repo"
	"homes-api/internal/service"
	"homes-api/internal/transport/http/router"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type harness struct {
	t     *testing.T
	db    *gorm.DB
	api   *gin.Engine
	admin *gin.Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := dbtest.Open(t)
	users := repo.NewUserRepo(db)
	jwter := &auth.JWTer{Secret: []byte("jwt-secret"), Issuer: "homes-api", TTL: time.Hour}
	d := router.Deps{
		HTTP:  config.HTTP{RequestTimeout: 5},
		Mode:  gin.TestMode,
		JWT:   jwter,
		Auth:  service.NewAuthService(users, jwter, auth.ProductKeyer{Secret: "product-secret"}, service.AuthOptions{}, nil),
		Homes: service.NewHomeService(repo.NewHomeRepo(db), repo.NewMessageRepo(db), nil, 0, nil),
		Users: service.NewUserService(users, nil),
	}
	api, err := router.NewAPIEngine(d)
	require.NoError(t, err)
	admin, err := router.NewAdminEngine(d)
	require.NoError(t, err)
	return &harness{t: t, db: db, api: api, admin: admin}
}

func (h *harness) do(r http.Handler, method, path, token string, body any) (int, envelope) {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type authOut struct {
	User struct {
		ID       string `json:"id"`
		UserType string `json:"userType"`
	} `json:"user"`
	Token string `json:"token"`
}

func (h *harness) productKey(email, userType string) string {
	code, env := h.do(h.api, http.MethodPost, "/auth/key", "", map[string]string{"email": email, "userType": userType})
	require.Equal(h.t, http.StatusCreated, code)
	m := decode[map[string]string](h.t, env.Data)
	key, ok := m[email+" - "+userType]
	require.True(h.t, ok)
	return key
}

func (h *harness) signup(userType, email, phone string) authOut {
	body := map[string]string{"name": "N " + email, "email": email, "phone": phone, "password": "pass1234"}
	if userType != "BUYER" {
		body["productKey"] = h.productKey(email, userType)
	}
	code, env := h.do(h.api, http.MethodPost, "/auth/signup/"+userType, "", body)
	require.Equal(h.t, http.StatusCreated, code, env.Msg)
	return decode[authOut](h.t, env.Data)
}

var williamStreet = map[string]any{
	"address":           "2345 William Str",
	"city":              "Toronto",
	"price":             1500000,
	"propertyType":      "RESIDENTIAL",
	"numberOfBedrooms":  3,
	"numberOfBathrooms": 2.5,
	"landSize":          5000,
	"images":            []map[string]string{{"url": "url1"}},
}

type homeOut struct {
	ID     string  `json:"id"`
	City   string  `json:"city"`
	Price  float64 `json:"price"`
	Image  *string `json:"image"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Realtor *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"realtor"`
}

func TestSignupAndSignin(t *testing.T) {
	h := newHarness(t)

	code, env := h.do(h.api, http.MethodPost, "/auth/signup/REALTOR", "", map[string]string{
		"name": "R", "email": "r@example.com", "phone": "416-555-0100", "password": "pass1234",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "No valid Product Key", env.Msg)

	code, _ = h.do(h.api, http.MethodPost, "/auth/signup/REALTOR", "", map[string]string{
		"name": "R", "email": "r@example.com", "phone": "416-555-0100", "password": "pass1234", "productKey": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = h.do(h.api, http.MethodPost, "/auth/signup/ALIEN", "", map[string]string{
		"name": "R", "email": "r@example.com", "phone": "416-555-0100", "password": "pass1234",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = h.do(h.api, http.MethodPost, "/auth/signup/BUYER", "", map[string]string{
		"name": "B", "email": "b@example.com", "phone": "not a phone", "password": "pass1234",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	r := h.signup("REALTOR", "r@example.com", "416-555-0100")
	assert.Equal(t, "REALTOR", r.User.UserType)
	assert.NotEmpty(t, r.Token)

	code, _ = h.do(h.api, http.MethodPost, "/auth/signup/BUYER", "", map[string]string{
		"name": "dup", "email": "r@example.com", "phone": "416-555-0199", "password": "pass1234",
	})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = h.do(h.api, http.MethodPost, "/auth/signin", "", map[string]string{"email": "r@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = h.do(h.api, http.MethodPost, "/auth/signin", "", map[string]string{"email": "x@example.com", "password": "pass1234"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = h.do(h.api, http.MethodPost, "/auth/signin", "", map[string]string{"email": "r@example.com", "password": "pass1234"})
	require.Equal(t, http.StatusOK, code)
	in := decode[authOut](t, env.Data)
	assert.Equal(t, r.User.ID, in.User.ID)

	code, env = h.do(h.api, http.MethodGet, "/auth/me", in.Token, nil)
	require.Equal(t, http.StatusOK, code)
	me := decode[map[string]any](t, env.Data)
	assert.Equal(t, r.User.ID, me["id"])
	assert.Equal(t, "BUYER", me["user_type"])
	assert.NotZero(t, me["exp"])

	code, env = h.do(h.api, http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null", string(env.Data))
}

func TestHomeLifecycle(t *testing.T) {
	h := newHarness(t)
	realtor := h.signup("REALTOR", "realtor@example.com", "4165550100")
	other := h.signup("REALTOR", "other@example.com", "4165550101")
	buyer := h.signup("BUYER", "buyer@example.com", "4165550102")

	code, _ := h.do(h.api, http.MethodGet, "/home", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env := h.do(h.api, http.MethodPost, "/home", "", williamStreet)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Forbidden resource", env.Msg)
	code, _ = h.do(h.api, http.MethodPost, "/home", buyer.Token, williamStreet)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = h.do(h.api, http.MethodPost, "/home", realtor.Token, williamStreet)
	require.Equal(t, http.StatusCreated, code, env.Msg)
	created := decode[homeOut](t, env.Data)

	var stored domain.Home
	require.NoError(t, h.db.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, realtor.User.ID, stored.RealtorID)
	var images []domain.Image
	require.NoError(t, h.db.Where("home_id = ?", created.ID).Find(&images).Error)
	require.Len(t, images, 1)
	assert.Equal(t, "url1", images[0].URL)

	code, env = h.do(h.api, http.MethodGet, "/home?city=Toronto&minPrice=1000000&propertyType=RESIDENTIAL", "", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[[]homeOut](t, env.Data)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Image)
	assert.Equal(t, "url1", *list[0].Image)
	assert.Nil(t, list[0].Images)

	code, _ = h.do(h.api, http.MethodGet, "/home?propertyType=CASTLE", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = h.do(h.api, http.MethodGet, "/home/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = h.do(h.api, http.MethodGet, "/home/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, code)
	detail := decode[homeOut](t, env.Data)
	require.Len(t, detail.Images, 1)
	require.NotNil(t, detail.Realtor)
	assert.Equal(t, "realtor@example.com", detail.Realtor.Email)
	assert.NotContains(t, string(env.Data), "password")
	assert.NotContains(t, string(env.Data), "realtor_id")

	update := map[string]any{"price": 1400000}
	code, _ = h.do(h.api, http.MethodPut, "/home/"+created.ID, other.Token, update)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, env = h.do(h.api, http.MethodPut, "/home/"+created.ID, realtor.Token, update)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1400000.0, decode[homeOut](t, env.Data).Price)

	code, _ = h.do(h.api, http.MethodPost, "/home/"+created.ID+"/inquire", realtor.Token, map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = h.do(h.api, http.MethodPost, "/home/"+created.ID+"/inquire", buyer.Token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = h.do(h.api, http.MethodPost, "/home/"+created.ID+"/inquire", buyer.Token, map[string]string{"message": "Is it available?"})
	require.Equal(t, http.StatusCreated, code)

	code, _ = h.do(h.api, http.MethodGet, "/home/"+created.ID+"/messages", other.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, env = h.do(h.api, http.MethodGet, "/home/"+created.ID+"/messages", realtor.Token, nil)
	require.Equal(t, http.StatusOK, code)
	msgs := decode[[]map[string]any](t, env.Data)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Is it available?", msgs[0]["message"])
	assert.Equal(t, "buyer@example.com", msgs[0]["buyer"].(map[string]any)["email"])

	code, _ = h.do(h.api, http.MethodDelete, "/home/"+created.ID, other.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = h.do(h.api, http.MethodDelete, "/home/"+created.ID, realtor.Token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = h.do(h.api, http.MethodDelete, "/home/"+created.ID, realtor.Token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	var n int64
	require.NoError(t, h.db.Model(&domain.Image{}).Where("home_id = ?", created.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSigninTokenStillActsWithStoredRole(t *testing.T) {
	h := newHarness(t)
	h.signup("REALTOR", "realtor@example.com", "4165550100")

	_, env := h.do(h.api, http.MethodPost, "/auth/signin", "", map[string]string{"email": "realtor@example.com", "password": "pass1234"})
	tok := decode[authOut](t, env.Data).Token

	code, _ := h.do(h.api, http.MethodPost, "/home", tok, williamStreet)
	assert.Equal(t, http.StatusCreated, code)
}

func TestAdmin(t *testing.T) {
	h := newHarness(t)
	admin := h.signup("ADMIN", "admin@example.com", "4165550001")
	buyer := h.signup("BUYER", "buyer@example.com", "4165550002")
	realtor := h.signup("REALTOR", "realtor@example.com", "4165550003")

	code, _ := h.do(h.admin, http.MethodGet, "/admin/v1/users", buyer.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := h.do(h.admin, http.MethodGet, "/admin/v1/users?limit=2", admin.Token, nil)
	require.Equal(t, http.StatusOK, code)
	page := decode[struct {
		Total int64            `json:"total"`
		Items []map[string]any `json:"items"`
	}](t, env.Data)
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Items, 2)

	code, env = h.do(h.admin, http.MethodPost, "/admin/v1/keys", admin.Token, map[string]string{"email": "new@example.com", "userType": "REALTOR"})
	require.Equal(t, http.StatusCreated, code)
	assert.Contains(t, decode[map[string]string](t, env.Data), "new@example.com - REALTOR")

	_, env = h.do(h.api, http.MethodPost, "/home", realtor.Token, williamStreet)
	homeID := decode[homeOut](t, env.Data).ID

	code, _ = h.do(h.admin, http.MethodPost, "/admin/v1/users/"+buyer.User.ID+"/ban", admin.Token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = h.do(h.admin, http.MethodPost, "/admin/v1/users/"+buyer.User.ID+"/ban", admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	// 被封禁用户的旧 token 不再通过 guard
	code, _ = h.do(h.api, http.MethodPost, "/home/"+homeID+"/inquire", buyer.Token, map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = h.do(h.admin, http.MethodGet, "/admin/v1/users?with_deleted=true&q=buyer", admin.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "bannedAt")
}

func TestHealthMetricsAndNoRoute(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.api.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	h.api.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")

	code, env := h.do(h.api, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, 404, env.Code)
}
