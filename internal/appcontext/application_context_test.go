package appcontext

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ccfreem/sickfits/internal/config"
	"github.com/ccfreem/sickfits/internal/infra/cache"
	"github.com/ccfreem/sickfits/internal/infra/event"
	"github.com/ccfreem/sickfits/internal/infra/payment"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Env:                    "development",
		LogLevel:               "error",
		ServerPort:             "0",
		GrpcPort:               "0",
		AppSecret:              "a-secret-that-is-long-enough-for-hs256",
		FrontendURL:            "http://localhost:7777",
		DbDriver:               "memory",
		PermissionConfig:       "../../config/permission.yaml",
		CheckoutResumeInterval: time.Minute,
		AdminEmail:             "Admin@Example.com",
		AdminName:              "admin",
		AdminPassword:          "hunter2",
	}
}

func TestInMemoryApplicationContext(t *testing.T) {
	app, err := NewApplicationContext(memoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, app.Shutdown(context.Background())) })

	require.Nil(t, app.DbConn)
	require.IsType(t, &cache.MemoryCache{}, app.Cache)
	require.IsType(t, event.NopPublisher{}, app.Publisher)
	require.IsType(t, &payment.SandboxGateway{}, app.Gateway)
	require.NotNil(t, app.CheckoutResumer)

	admin, err := app.UserService.GetUserByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	require.True(t, admin.Permissions.Contains(model.PermissionAdmin))

	rec := httptest.NewRecorder()
	app.HttpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	body := `{"query":"mutation { signin(email: \"admin@example.com\", password: \"hunter2\") { permissions } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	app.HttpServer.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "PERMISSIONUPDATE")
	require.NotEmpty(t, rec.Result().Cookies())
}

func TestSeedIsIdempotent(t *testing.T) {
	app, err := NewApplicationContext(memoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, app.Shutdown(context.Background())) })

	require.NoError(t, app.dbInit())
	users, err := app.DbDao.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestApplicationContextRejectsBadConfig(t *testing.T) {
	cf := memoryConfig()
	cf.AppSecret = ""
	_, err := NewApplicationContext(cf)
	require.Error(t, err)

	cf = memoryConfig()
	cf.Env = "production"
	_, err = NewApplicationContext(cf)
	require.ErrorContains(t, err, "STRIPE_SECRET_KEY")
}
