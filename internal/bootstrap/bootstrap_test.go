package bootstrap

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-order-service/config"
)

func TestInitRejectsUnknownDriver(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cleanup, err := Init(context.Background(), &config.Config{StoreDriver: "sqlite"}, logger, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
	cleanup()
}

func TestNewTokenManagerRoundTrip(t *testing.T) {
	tm := NewTokenManager(&config.Config{AppName: "svc", AuthTokenSecret: "s", AuthTokenTTL: time.Minute})
	token, exp, err := tm.GenerateToken("ops")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "svc", claims.Issuer)
}
