package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/oksasatya/user-order-service/internal/domain/entity"
	"github.com/oksasatya/user-order-service/internal/domain/repository"
)

type fullNameDocument struct {
	FirstName string `bson:"firstName"`
	LastName  string `bson:"lastName"`
}

type addressDocument struct {
	Street  string `bson:"street"`
	City    string `bson:"city"`
	Country string `bson:"country"`
}

type orderDocument struct {
	ProductName string  `bson:"productName"`
	Price       float64 `bson:"price"`
	Quantity    int     `bson:"quantity"`
}

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	UserID   int64              `bson:"userId"`
	UserName string             `bson:"userName"`
	Password string             `bson:"password"`
	FullName fullNameDocument   `bson:"fullName"`
	Age      int                `bson:"age"`
	Email    string             `bson:"email"`
	IsActive bool               `bson:"isActivate"`
	Hobbies  []string           `bson:"hobbies"`
	Address  addressDocument    `bson:"address"`
	Orders   []orderDocument    `bson:"orders"`
}

type UserRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewUserRepository(client *mongo.Client, database string) *UserRepository {
	return &UserRepository{client: client, coll: client.Database(database).Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if _, err := r.coll.InsertOne(ctx, toDocument(*u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "userId", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	out := make([]entity.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDocument(d))
	}
	return out, nil
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID int64) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, byUserID(userID)).Decode(&doc); err != nil {
		return nil, mapFindErr(err, "find user")
	}
	u := fromDocument(doc)
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, userID int64, patch entity.UserPatch) (*entity.User, error) {
	if patch.IsEmpty() {
		return r.GetByUserID(ctx, userID)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userDocument
	err := r.coll.FindOneAndUpdate(ctx, byUserID(userID), bson.D{{Key: "$set", Value: setFields(patch)}}, opts).Decode(&doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrUserAlreadyExists
		}
		return nil, mapFindErr(err, "update user")
	}
	u := fromDocument(doc)
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, userID int64) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOneAndDelete(ctx, byUserID(userID)).Decode(&doc); err != nil {
		return nil, mapFindErr(err, "delete user")
	}
	u := fromDocument(doc)
	return &u, nil
}

func (r *UserRepository) AddOrder(ctx context.Context, userID int64, order entity.Order) error {
	res, err := r.coll.UpdateOne(ctx, byUserID(userID), bson.D{{Key: "$push", Value: bson.D{{Key: "orders", Value: toOrderDocument(order)}}}})
	if err != nil {
		return fmt.Errorf("push order: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListOrders(ctx context.Context, userID int64) ([]entity.Order, error) {
	var doc userDocument
	opts := options.FindOne().SetProjection(bson.D{{Key: "orders", Value: 1}})
	if err := r.coll.FindOne(ctx, byUserID(userID), opts).Decode(&doc); err != nil {
		return nil, mapFindErr(err, "find orders")
	}
	return fromOrderDocuments(doc.Orders), nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func byUserID(userID int64) bson.D {
	return bson.D{{Key: "userId", Value: userID}}
}

func mapFindErr(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrUserNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func setFields(p entity.UserPatch) bson.D {
	set := bson.D{}
	if p.UserID != nil {
		set = append(set, bson.E{Key: "userId", Value: *p.UserID})
	}
	if p.UserName != nil {
		set = append(set, bson.E{Key: "userName", Value: *p.UserName})
	}
	if p.Password != nil {
		set = append(set, bson.E{Key: "password", Value: *p.Password})
	}
	if p.FullName != nil {
		set = append(set, bson.E{Key: "fullName", Value: fullNameDocument(*p.FullName)})
	}
	if p.Age != nil {
		set = append(set, bson.E{Key: "age", Value: *p.Age})
	}
	if p.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *p.Email})
	}
	if p.IsActive != nil {
		set = append(set, bson.E{Key: "isActivate", Value: *p.IsActive})
	}
	if p.Hobbies != nil {
		set = append(set, bson.E{Key: "hobbies", Value: p.Hobbies})
	}
	if p.Address != nil {
		set = append(set, bson.E{Key: "address", Value: addressDocument(*p.Address)})
	}
	if p.Orders != nil {
		set = append(set, bson.E{Key: "orders", Value: toOrderDocuments(p.Orders)})
	}
	return set
}

func toDocument(u entity.User) userDocument {
	hobbies := u.Hobbies
	if hobbies == nil {
		hobbies = []string{}
	}
	return userDocument{
		UserID:   u.UserID,
		UserName: u.UserName,
		Password: u.Password,
		FullName: fullNameDocument(u.FullName),
		Age:      u.Age,
		Email:    u.Email,
		IsActive: u.IsActive,
		Hobbies:  hobbies,
		Address:  addressDocument(u.Address),
		// always an array so $push never hits a null field
		Orders: toOrderDocuments(u.Orders),
	}
}

func fromDocument(d userDocument) entity.User {
	hobbies := d.Hobbies
	if hobbies == nil {
		hobbies = []string{}
	}
	return entity.User{
		UserID:   d.UserID,
		UserName: d.UserName,
		Password: d.Password,
		FullName: entity.FullName(d.FullName),
		Age:      d.Age,
		Email:    d.Email,
		IsActive: d.IsActive,
		Hobbies:  hobbies,
		Address:  entity.Address(d.Address),
		Orders:   fromOrderDocuments(d.Orders),
	}
}

func toOrderDocument(o entity.Order) orderDocument {
	return orderDocument(o)
}

func toOrderDocuments(orders []entity.Order) []orderDocument {
	out := make([]orderDocument, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDocument(o))
	}
	return out
}

func fromOrderDocuments(docs []orderDocument) []entity.Order {
	out := make([]entity.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, entity.Order(d))
	}
	return out
}

var _ repository.UserRepository = (*UserRepository)(nil)
