package mongo_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-order-service/internal/domain/entity"
	"github.com/oksasatya/user-order-service/internal/domain/repository"
	mongoinfra "github.com/oksasatya/user-order-service/internal/infrastructure/mongo"
)

func newTestRepo(t *testing.T) *mongoinfra.UserRepository {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set; skipping mongo integration test")
	}

	ctx := context.Background()
	client, err := mongoinfra.NewClient(ctx, uri, 5*time.Second)
	require.NoError(t, err)

	database := "user_orders_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	require.NoError(t, mongoinfra.EnsureIndexes(ctx, client.Database(database)))

	t.Cleanup(func() {
		_ = client.Database(database).Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return mongoinfra.NewUserRepository(client, database)
}

func sampleUser(id int64, name string) *entity.User {
	return &entity.User{
		UserID:   id,
		UserName: name,
		Password: "hashed",
		FullName: entity.FullName{FirstName: "Jane", LastName: "Doe"},
		Age:      30,
		Email:    name + "@example.com",
		IsActive: true,
		Hobbies:  []string{"chess"},
		Address:  entity.Address{Street: "1 Main St", City: "Springfield", Country: "US"},
	}
}

func TestUserRepository_Lifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleUser(1, "jane")))

	err := repo.Create(ctx, sampleUser(1, "other"))
	assert.ErrorIs(t, err, repository.ErrUserAlreadyExists)

	err = repo.Create(ctx, sampleUser(2, "jane"))
	assert.ErrorIs(t, err, repository.ErrUserAlreadyExists)

	got, err := repo.GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "jane", got.UserName)
	assert.Empty(t, got.Orders)

	require.NoError(t, repo.AddOrder(ctx, 1, entity.Order{ProductName: "pen", Price: 10, Quantity: 2}))
	require.NoError(t, repo.AddOrder(ctx, 1, entity.Order{ProductName: "ink", Price: 5, Quantity: 1}))

	orders, err := repo.ListOrders(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, "25.00", entity.TotalPrice(orders).StringFixed(2))

	age := 31
	updated, err := repo.Update(ctx, 1, entity.UserPatch{Age: &age})
	require.NoError(t, err)
	assert.Equal(t, 31, updated.Age)
	assert.Len(t, updated.Orders, 2)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	deleted, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.UserID)

	_, err = repo.Delete(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_MissingUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetByUserID(ctx, 404)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.ListOrders(ctx, 404)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	err = repo.AddOrder(ctx, 404, entity.Order{ProductName: "x", Price: 1, Quantity: 1})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	name := "ghost"
	_, err = repo.Update(ctx, 404, entity.UserPatch{UserName: &name})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
