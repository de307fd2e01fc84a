// Package bootstrap connects the infrastructure named by the config and
// publishes it through the container. Shared by the server and usersctl.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-order-service/config"
	"github.com/oksasatya/user-order-service/internal/container"
	mongoinfra "github.com/oksasatya/user-order-service/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/user-order-service/internal/infrastructure/postgres"
	"github.com/oksasatya/user-order-service/pkg/helpers"
)

// Options selects the optional side systems a binary needs.
type Options struct {
	Redis  bool
	Rabbit bool
	Search bool
	GCS    bool
}

// Init connects the configured store (fatal on failure for the caller) and
// the requested side systems. A side system that is configured but unreachable
// is logged and left nil. The returned cleanup closes everything that was opened.
func Init(ctx context.Context, cfg *config.Config, logger *logrus.Logger, opts Options) (func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := mongoinfra.NewClient(ctx, cfg.MongoURI, cfg.MongoConnectTimeout)
		if err != nil {
			return cleanup, err
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		if err := mongoinfra.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase)); err != nil {
			return cleanup, err
		}
		container.SetMongo(client)
	case config.DriverPostgres:
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return cleanup, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return cleanup, err
		}
		closers = append(closers, pool.Close)
		container.SetPGPool(pool)
	default:
		return cleanup, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	logger.WithField("driver", cfg.StoreDriver).Info("store connected")

	if opts.Redis && cfg.RedisAddr != "" {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable; rate limiting disabled")
		} else {
			closers = append(closers, func() { _ = rdb.Close() })
			container.SetRedis(rdb)
		}
	}

	if opts.Rabbit && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue, cfg.AppName)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; events disabled")
		} else {
			closers = append(closers, pub.Close)
			container.SetRabbitPub(pub)
		}
	}

	if opts.Search && len(cfg.ESAddrs()) > 0 {
		es, err := helpers.NewESClient(helpers.ESOptions{
			Addrs:    cfg.ESAddrs(),
			Username: cfg.ElasticsearchUser,
			Password: cfg.ElasticsearchPass,
		})
		if err == nil {
			err = helpers.EnsureUsersIndex(ctx, es, cfg.ESUsersIndex)
		}
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable; search disabled")
		} else {
			container.SetES(es)
		}
	}

	if opts.GCS && cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs client init failed")
		} else {
			closers = append(closers, func() { _ = gcs.Close() })
			container.SetGCS(gcs)
		}
	}

	if cfg.AuthEnabled {
		container.SetTokenManager(NewTokenManager(cfg))
	}

	return cleanup, nil
}

// NewTokenManager builds the bearer token manager; the issuer is the app name.
func NewTokenManager(cfg *config.Config) *helpers.TokenManager {
	return helpers.NewTokenManager(cfg.AuthTokenSecret, cfg.AuthTokenTTL, cfg.AppName)
}
