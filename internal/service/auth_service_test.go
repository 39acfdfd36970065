package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"homes-api/internal/core/auth"
	"homes-api/internal/core/database/dbtest"
	"homes-api/internal/core/errs"
	"homes-api/internal/domain"
	"homes-api/internal/repo"
	"homes-api/internal/service"
)

const (
	jwtSecret     = "jwt-secret"
	productSecret = "product-secret"
)

func newJWTer(secret string) *auth.JWTer {
	return &auth.JWTer{Secret: []byte(secret), Issuer: "homes-api", TTL: time.Hour}
}

func newAuthService(t *testing.T, opts service.AuthOptions) (*service.AuthService, *repo.UserRepo) {
	t.Helper()
	users := repo.NewUserRepo(dbtest.Open(t))
	svc := service.NewAuthService(users, newJWTer(jwtSecret), auth.ProductKeyer{Secret: productSecret}, opts, nil)
	return svc, users
}

var laith = service.SignupParams{Name: "Laith", Email: "laith@example.com", Phone: "416 555 1234", Password: "pass1234"}

func TestSignup_StoresHashAndIssuesToken(t *testing.T) {
	svc, users := newAuthService(t, service.AuthOptions{})
	ctx := context.Background()

	res, err := svc.Signup(ctx, laith, domain.UserRealtor)
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.NotEmpty(t, res.Token)

	stored, err := users.FindByID(ctx, res.User.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, laith.Password, stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(laith.Password)))
	assert.Equal(t, domain.UserRealtor, stored.UserType)

	c, err := newJWTer(jwtSecret).Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, c.UserID)
	assert.Equal(t, "Laith", c.Name)
	assert.Equal(t, "REALTOR", c.UserType)
}

func TestSignup_Conflict(t *testing.T) {
	svc, _ := newAuthService(t, service.AuthOptions{})
	ctx := context.Background()

	_, err := svc.Signup(ctx, laith, domain.UserBuyer)
	require.NoError(t, err)

	_, err = svc.Signup(ctx, laith, domain.UserBuyer)
	assert.Equal(t, http.StatusConflict, errs.CodeOf(err))

	samePhone := laith
	samePhone.Email = "someone@example.com"
	_, err = svc.Signup(ctx, samePhone, domain.UserBuyer)
	assert.Equal(t, http.StatusConflict, errs.CodeOf(err))
}

func TestSignup_InvalidUserType(t *testing.T) {
	svc, _ := newAuthService(t, service.AuthOptions{})
	_, err := svc.Signup(context.Background(), laith, domain.UserType("ALIEN"))
	assert.Equal(t, http.StatusBadRequest, errs.CodeOf(err))
}

func TestSignup_MissingJWTSecret(t *testing.T) {
	users := repo.NewUserRepo(dbtest.Open(t))
	svc := service.NewAuthService(users, newJWTer(""), auth.ProductKeyer{}, service.AuthOptions{}, nil)

	_, err := svc.Signup(context.Background(), laith, domain.UserBuyer)
	assert.Equal(t, http.StatusInternalServerError, errs.CodeOf(err))
	assert.ErrorIs(t, err, auth.ErrNoSecret)
}

func TestSignin(t *testing.T) {
	svc, _ := newAuthService(t, service.AuthOptions{})
	ctx := context.Background()
	created, err := svc.Signup(ctx, laith, domain.UserRealtor)
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Signin(ctx, "nobody@example.com", "pass1234")
		assert.Equal(t, http.StatusUnauthorized, errs.CodeOf(err))
	})
	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Signin(ctx, laith.Email, "wrong")
		assert.Equal(t, http.StatusUnauthorized, errs.CodeOf(err))
	})
	t.Run("success tags BUYER", func(t *testing.T) {
		res, err := svc.Signin(ctx, laith.Email, laith.Password)
		require.NoError(t, err)
		c, err := newJWTer(jwtSecret).Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, created.User.ID, c.UserID)
		assert.Equal(t, "BUYER", c.UserType)
	})
}

func TestSignin_StoredRoleOption(t *testing.T) {
	svc, _ := newAuthService(t, service.AuthOptions{SigninUsesStoredRole: true})
	ctx := context.Background()
	_, err := svc.Signup(ctx, laith, domain.UserRealtor)
	require.NoError(t, err)

	res, err := svc.Signin(ctx, laith.Email, laith.Password)
	require.NoError(t, err)
	c, err := newJWTer(jwtSecret).Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "REALTOR", c.UserType)
}

func TestProductKeyFlow(t *testing.T) {
	svc, _ := newAuthService(t, service.AuthOptions{})

	out, err := svc.GenerateProductKey("r@example.com", domain.UserRealtor)
	require.NoError(t, err)
	key, ok := out["r@example.com - REALTOR"]
	require.True(t, ok)

	assert.NoError(t, svc.VerifyProductKey("r@example.com", domain.UserRealtor, key))
	assert.NoError(t, svc.VerifyProductKey("r@example.com", domain.UserBuyer, ""))

	err = svc.VerifyProductKey("r@example.com", domain.UserRealtor, "")
	assert.Equal(t, http.StatusUnauthorized, errs.CodeOf(err))
	assert.EqualError(t, err, "No valid Product Key")

	err = svc.VerifyProductKey("other@example.com", domain.UserRealtor, key)
	assert.Equal(t, http.StatusUnauthorized, errs.CodeOf(err))

	err = svc.VerifyProductKey("r@example.com", domain.UserAdmin, key)
	assert.Equal(t, http.StatusUnauthorized, errs.CodeOf(err))
}

func TestProductKey_NoSecret(t *testing.T) {
	users := repo.NewUserRepo(dbtest.Open(t))
	svc := service.NewAuthService(users, newJWTer(jwtSecret), auth.ProductKeyer{}, service.AuthOptions{}, nil)

	_, err := svc.GenerateProductKey("r@example.com", domain.UserRealtor)
	assert.Equal(t, http.StatusInternalServerError, errs.CodeOf(err))

	err = svc.VerifyProductKey("r@example.com", domain.UserRealtor, "some-key")
	assert.Equal(t, http.StatusInternalServerError, errs.CodeOf(err))
}

type failingUsers struct {
	domain.UserRepository
	err error
}

func (f failingUsers) FindByEmail(context.Context, string) (*domain.User, error) { return nil, f.err }
func (f failingUsers) FindByEmailOrPhone(context.Context, string, string) (*domain.User, error) {
	return nil, f.err
}

func TestAuth_DBErrorsAreInternal(t *testing.T) {
	boom := errors.New("connection reset")
	svc := service.NewAuthService(failingUsers{err: boom}, newJWTer(jwtSecret), auth.ProductKeyer{}, service.AuthOptions{}, nil)

	_, err := svc.Signup(context.Background(), laith, domain.UserBuyer)
	assert.Equal(t, http.StatusInternalServerError, errs.CodeOf(err))
	assert.ErrorIs(t, err, boom)

	_, err = svc.Signin(context.Background(), laith.Email, laith.Password)
	assert.Equal(t, http.StatusInternalServerError, errs.CodeOf(err))
}
