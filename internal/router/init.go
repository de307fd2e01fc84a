package router

import (
	"fmt"

	"github.com/oksasatya/user-order-service/config"
	appuser "github.com/oksasatya/user-order-service/internal/application"
	"github.com/oksasatya/user-order-service/internal/container"
	repouser "github.com/oksasatya/user-order-service/internal/domain/repository"
	mongoinfra "github.com/oksasatya/user-order-service/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/user-order-service/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/user-order-service/internal/interface/http"
	"github.com/oksasatya/user-order-service/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *appuser.Service
	Handler *handlers.UserHandler
}

// NewUserRepository picks the store implementation named by cfg.StoreDriver.
func NewUserRepository(cfg *config.Config) (repouser.UserRepository, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		if container.GetMongo() == nil {
			return nil, fmt.Errorf("mongo client not initialized")
		}
		return mongoinfra.NewUserRepository(container.GetMongo(), cfg.MongoDatabase), nil
	case config.DriverPostgres:
		if container.GetPGPool() == nil {
			return nil, fmt.Errorf("postgres pool not initialized")
		}
		return pginfra.NewUserRepository(container.GetPGPool()), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// NewUserService wires the service from container singletons. Shared by the server and usersctl.
func NewUserService(repo repouser.UserRepository) *appuser.Service {
	cfg := container.GetConfig()
	var events appuser.EventPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		events = pub
	}
	return appuser.NewService(
		repo,
		events,
		container.GetES(),
		cfg.ESUsersIndex,
		container.GetLogger(),
		cfg.BcryptCost,
	)
}

func buildUserDeps() (UserModuleDeps, error) {
	cfg := container.GetConfig()
	repo, err := NewUserRepository(cfg)
	if err != nil {
		return UserModuleDeps{}, err
	}
	service := NewUserService(repo)
	handler := handlers.NewUserHandler(service, container.GetLogger(), cfg.StoreDriver)

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}, nil
}

// InitModules initializes all application modules and registers them with the router registry.
// Call once during startup, after the container is populated.
func InitModules(r *Registry) error {
	cfg := container.GetConfig()
	userDeps, err := buildUserDeps()
	if err != nil {
		return err
	}
	r.Add(modules.NewUserModule(userDeps.Handler, container.GetRedis(), container.GetTokenManager(), cfg.RateLimitPerMinute, cfg.RateLimitBypassPrivate))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetRedis()))
	}
	return nil
}
