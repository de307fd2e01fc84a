package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/user-order-service/config"
	appuser "github.com/oksasatya/user-order-service/internal/application"
	"github.com/oksasatya/user-order-service/internal/container"
	"github.com/oksasatya/user-order-service/internal/domain/entity"
	"github.com/oksasatya/user-order-service/internal/domain/repository"
	"github.com/oksasatya/user-order-service/internal/domain/repository/mocks"
	handlers "github.com/oksasatya/user-order-service/internal/interface/http"
	"github.com/oksasatya/user-order-service/internal/router/modules"
	"github.com/oksasatya/user-order-service/pkg/helpers"
	"github.com/oksasatya/user-order-service/pkg/validation"
)

func newEngine(t *testing.T, tokens *helpers.TokenManager) (*gin.Engine, *mocks.MockUserRepository) {
	t.Helper()
	return newLimitedEngine(t, tokens, nil, 10)
}

func newLimitedEngine(t *testing.T, tokens *helpers.TokenManager, rdb *redis.Client, perMinute int) (*gin.Engine, *mocks.MockUserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	repo := mocks.NewMockUserRepository(gomock.NewController(t))
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := handlers.NewUserHandler(appuser.NewService(repo, nil, nil, "", logger, bcrypt.MinCost), logger, "postgres")

	engine := gin.New()
	reg := NewRegistry(engine)
	reg.Add(modules.NewUserModule(h, rdb, tokens, perMinute, false))
	reg.Add(modules.NewDebugModule(nil))
	reg.RegisterAll()
	return engine, repo
}

func TestRoutesMountedUnderAPI(t *testing.T) {
	engine, repo := newEngine(t, nil)
	repo.EXPECT().List(gomock.Any()).Return([]entity.User{}, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDebugVarsExposesCounters(t *testing.T) {
	engine, _ := newEngine(t, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var vars map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vars))
	assert.Contains(t, vars, "users_created")
	assert.Contains(t, vars, "orders_added")
}

func TestWritesRequireTokenWhenEnabled(t *testing.T) {
	tm := helpers.NewTokenManager("secret", time.Hour, "user-order-service")
	engine, repo := newEngine(t, tm)
	repo.EXPECT().List(gomock.Any()).Return([]entity.User{}, nil)
	repo.EXPECT().Delete(gomock.Any(), int64(1)).Return(&entity.User{UserID: 1}, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Equal(t, http.StatusOK, w.Code, "reads stay open")

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _, err := tm.GenerateToken("ops")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodDelete, "/api/users/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWritesLimitedPerTokenSubject(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	tm := helpers.NewTokenManager("secret", time.Hour, "user-order-service")
	engine, repo := newLimitedEngine(t, tm, rdb, 2)
	repo.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil, repository.ErrUserNotFound).Times(2)

	token, _, err := tm.GenerateToken("ops")
	require.NoError(t, err)

	codes := make([]int, 0, 3)
	for _, addr := range []string{"198.51.100.1:1000", "198.51.100.2:1000", "198.51.100.3:1000"} {
		req := httptest.NewRequest(http.MethodDelete, "/api/users/1", nil)
		req.RemoteAddr = addr
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)
}

func TestNewUserRepositoryRequiresClient(t *testing.T) {
	_, err := NewUserRepository(&config.Config{StoreDriver: config.DriverMongo})
	assert.Error(t, err)
	_, err = NewUserRepository(&config.Config{StoreDriver: config.DriverPostgres})
	assert.Error(t, err)
	_, err = NewUserRepository(&config.Config{StoreDriver: "sqlite"})
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestNewUserServiceWithoutBroker(t *testing.T) {
	container.SetConfig(&config.Config{ESUsersIndex: "users", BcryptCost: 4})
	container.SetRabbitPub(nil)
	svc := NewUserService(mocks.NewMockUserRepository(gomock.NewController(t)))
	assert.Nil(t, svc.Events)
	assert.Equal(t, 4, svc.BcryptCost)
}

func TestModuleNames(t *testing.T) {
	assert.Equal(t, "users", modules.NewUserModule(nil, nil, nil, 10, false).Name())
	assert.Equal(t, "debug", modules.NewDebugModule(nil).Name())
}
