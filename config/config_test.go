package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("BCRYPT_COST", "")
	cfg := Load()

	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "users", cfg.ESUsersIndex)
	assert.False(t, cfg.AuthEnabled)
	assert.Empty(t, cfg.ESAddrs())
}

func TestLoadOverridesAndFallbacks(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("AUTH_TOKEN_TTL", "90m")
	t.Setenv("ELASTICSEARCH_ADDRS", " http://es1:9200, ,http://es2:9200 ")
	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 90*time.Minute, cfg.AuthTokenTTL)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ESAddrs())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}
