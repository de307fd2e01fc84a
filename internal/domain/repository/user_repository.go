package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/user-order-service/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/mock_user_repository.go -package=mocks . UserRepository

var (
	ErrUserNotFound      = errors.New("User not found")
	ErrUserAlreadyExists = errors.New("User already exists")
)

// UserRepository defines the interface for user-related database operations.
// Every method is a single store call; existence is reported through
// ErrUserNotFound and uniqueness violations through ErrUserAlreadyExists.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	List(ctx context.Context) ([]entity.User, error)
	GetByUserID(ctx context.Context, userID int64) (*entity.User, error)
	// Update applies the patch to the matching user and returns the updated record.
	Update(ctx context.Context, userID int64, patch entity.UserPatch) (*entity.User, error)
	// Delete removes the matching user and returns the removed record.
	Delete(ctx context.Context, userID int64) (*entity.User, error)
	AddOrder(ctx context.Context, userID int64, order entity.Order) error
	ListOrders(ctx context.Context, userID int64) ([]entity.Order, error)
	Ping(ctx context.Context) error
}
