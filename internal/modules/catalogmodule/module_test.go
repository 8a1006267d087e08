package catalogmodule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/filmadmin/internal/apiroutes"
	"github.com/mantonx/filmadmin/internal/config"
	"github.com/mantonx/filmadmin/internal/database"
	"github.com/mantonx/filmadmin/internal/modules/modulemanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := database.Open(config.DatabaseConfig{Type: "sqlite", DatabasePath: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	m := New()
	assert.Equal(t, modulemanager.HealthStateUnknown, m.HealthCheck(context.Background()).Status)

	cfg := config.DefaultConfig()
	cfg.Catalog.DateLayouts = []string{"02.01.2006"}

	require.NoError(t, m.Migrate(db))
	require.NoError(t, m.Init(db, cfg))

	router := gin.New()
	routes := apiroutes.New()
	m.RegisterRoutes(router, routes)
	assert.Greater(t, routes.Len(), 30)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/person", strings.NewReader(
		`{"firstName":"Jean","lastName":"Reno","birthDate":"30.07.1948","birthPlace":"Casablanca","description":"Actor"}`)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"birthDate":"1948-07-30"`)

	health := m.HealthCheck(context.Background())
	assert.Equal(t, modulemanager.HealthStateHealthy, health.Status)
	assert.Contains(t, health.Details, "transactions")
}

func TestModuleIsRegistered(t *testing.T) {
	module, ok := modulemanager.Registry.GetModule(ModuleID)
	require.True(t, ok)
	assert.True(t, module.Core())
	assert.Equal(t, ModuleName, module.Name())
}

func TestDateLayoutsFollowConfigReload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := database.Open(config.DatabaseConfig{Type: "sqlite", DatabasePath: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	oldConfig := config.DefaultConfig()
	oldConfig.Catalog.DateLayouts = []string{"02.01.2006"}

	m := New()
	require.NoError(t, m.Migrate(db))
	require.NoError(t, m.Init(db, oldConfig))

	router := gin.New()
	m.RegisterRoutes(router, apiroutes.New())

	createPerson := func(birthDate string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/person", strings.NewReader(
			`{"firstName":"Jean","lastName":"Reno","birthDate":"`+birthDate+`","birthPlace":"Casablanca","description":"Actor"}`)))
		return w
	}

	newConfig := config.DefaultConfig()
	newConfig.Catalog.DateLayouts = []string{"01/02/2006"}
	m.OnConfigChange(oldConfig, newConfig)

	w := createPerson("07/30/1948")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"birthDate":"1948-07-30"`)

	w = createPerson("30.07.1948")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BirthDate")
}

func TestInitWithoutConfigUsesDefaults(t *testing.T) {
	db, err := database.Open(config.DatabaseConfig{Type: "sqlite", DatabasePath: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	m := New()
	require.NoError(t, m.Init(db, nil))
	require.NotNil(t, m.Services())
	assert.Equal(t, "15s", m.gateway.TransactionStats()["timeout"])
}
