package application

import (
	"context"
	"errors"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-order-service/internal/domain/entity"
	repo "github.com/oksasatya/user-order-service/internal/domain/repository"
	"github.com/oksasatya/user-order-service/pkg/helpers"
)

var ErrInvalidUserID = errors.New("Invalid userId")

type Service struct {
	Repo         repo.UserRepository
	Events       EventPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
	Logger       *logrus.Logger
	BcryptCost   int
}

func NewService(repo repo.UserRepository, events EventPublisher, es *elasticsearch.Client, esUsersIndex string, logger *logrus.Logger, bcryptCost int) *Service {
	return &Service{
		Repo:         repo,
		Events:       events,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		Logger:       logger,
		BcryptCost:   bcryptCost,
	}
}

// CreateUser hashes the password and inserts the user. Uniqueness is enforced by the store.
func (s *Service) CreateUser(ctx context.Context, u entity.User) (*entity.User, error) {
	hash, err := helpers.HashPassword(u.Password, s.BcryptCost)
	if err != nil {
		return nil, err
	}
	u.Password = hash
	if u.Hobbies == nil {
		u.Hobbies = []string{}
	}
	if u.Orders == nil {
		u.Orders = []entity.Order{}
	}
	if err := s.Repo.Create(ctx, &u); err != nil {
		return nil, err
	}
	usersCreated.Add(1)

	_ = s.indexUser(ctx, &u)
	s.publish(ctx, newUserEvent(EventUserCreated, &u))

	out := entity.Sanitize(u)
	return &out, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return entity.SanitizeAll(users), nil
}

func (s *Service) GetUser(ctx context.Context, userID int64) (*entity.User, error) {
	if userID < 1 {
		return nil, ErrInvalidUserID
	}
	u, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := entity.Sanitize(*u)
	return &out, nil
}

// UpdateUser applies a partial update in a single store call. A new password is re-hashed.
func (s *Service) UpdateUser(ctx context.Context, userID int64, patch entity.UserPatch) (*entity.User, error) {
	if userID < 1 {
		return nil, ErrInvalidUserID
	}
	if patch.Password != nil {
		hash, err := helpers.HashPassword(*patch.Password, s.BcryptCost)
		if err != nil {
			return nil, err
		}
		patch.Password = &hash
	}
	u, err := s.Repo.Update(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	if u.UserID != userID {
		_ = s.deleteUserIndex(ctx, userID)
	}
	_ = s.indexUser(ctx, u)
	s.publish(ctx, newUserEvent(EventUserUpdated, u))

	out := entity.Sanitize(*u)
	return &out, nil
}

// DeleteUser removes the user and returns the removed record.
func (s *Service) DeleteUser(ctx context.Context, userID int64) (*entity.User, error) {
	if userID < 1 {
		return nil, ErrInvalidUserID
	}
	u, err := s.Repo.Delete(ctx, userID)
	if err != nil {
		return nil, err
	}
	usersDeleted.Add(1)

	_ = s.deleteUserIndex(ctx, userID)
	s.publish(ctx, newUserEvent(EventUserDeleted, u))

	out := entity.Sanitize(*u)
	return &out, nil
}

func (s *Service) AddOrder(ctx context.Context, userID int64, order entity.Order) error {
	if userID < 1 {
		return ErrInvalidUserID
	}
	if err := s.Repo.AddOrder(ctx, userID, order); err != nil {
		return err
	}
	ordersAdded.Add(1)

	if s.Events != nil {
		if u, err := s.Repo.GetByUserID(ctx, userID); err == nil {
			ev := newUserEvent(EventOrderAdded, u)
			ev.Order = &order
			s.publish(ctx, ev)
		} else if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("load user for order event failed")
		}
	}
	return nil
}

func (s *Service) ListOrders(ctx context.Context, userID int64) ([]entity.Order, error) {
	if userID < 1 {
		return nil, ErrInvalidUserID
	}
	orders, err := s.Repo.ListOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	return orders, nil
}

// TotalPrice sums price * quantity over the user's orders.
func (s *Service) TotalPrice(ctx context.Context, userID int64) (decimal.Decimal, error) {
	orders, err := s.ListOrders(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return entity.TotalPrice(orders), nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.Repo.Ping(ctx)
}
