package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/user-order-service/internal/domain/entity"
	"github.com/oksasatya/user-order-service/internal/domain/repository"
)

const uniqueViolation = "23505"

const userColumns = `user_id, user_name, password, first_name, last_name, age, email,
	is_active, hobbies, street, city, country, orders`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, u.UserID, u.UserName, u.Password, u.FullName.FirstName, u.FullName.LastName, u.Age, u.Email,
		u.IsActive, nonNilStrings(u.Hobbies), u.Address.Street, u.Address.City, u.Address.Country, nonNilOrders(u.Orders))
	if err != nil {
		return mapWriteErr(err, "insert user")
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID int64) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapReadErr(err, "query user")
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, userID int64, patch entity.UserPatch) (*entity.User, error) {
	sets, args := updateClauses(patch)
	if len(sets) == 0 {
		return r.GetByUserID(ctx, userID)
	}
	args = append(args, userID)
	query := `UPDATE users SET ` + strings.Join(sets, ", ") + `, updated_at = now()
		WHERE user_id = $` + strconv.Itoa(len(args)) + `
		RETURNING ` + userColumns

	u, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, mapWriteErr(err, "update user")
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, userID int64) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `DELETE FROM users WHERE user_id = $1 RETURNING `+userColumns, userID)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapReadErr(err, "delete user")
	}
	return u, nil
}

func (r *UserRepository) AddOrder(ctx context.Context, userID int64, order entity.Order) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET orders = orders || $2::jsonb, updated_at = now()
		WHERE user_id = $1
	`, userID, []entity.Order{order})
	if err != nil {
		return fmt.Errorf("append order: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListOrders(ctx context.Context, userID int64) ([]entity.Order, error) {
	var orders []entity.Order
	if err := r.pool.QueryRow(ctx, `SELECT orders FROM users WHERE user_id = $1`, userID).Scan(&orders); err != nil {
		return nil, mapReadErr(err, "query orders")
	}
	return nonNilOrders(orders), nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.UserID, &u.UserName, &u.Password, &u.FullName.FirstName, &u.FullName.LastName,
		&u.Age, &u.Email, &u.IsActive, &u.Hobbies, &u.Address.Street, &u.Address.City, &u.Address.Country,
		&u.Orders); err != nil {
		return nil, err
	}
	u.Hobbies = nonNilStrings(u.Hobbies)
	u.Orders = nonNilOrders(u.Orders)
	return u, nil
}

// updateClauses builds "col = $n" fragments for every field present in the patch.
func updateClauses(p entity.UserPatch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}
	if p.UserID != nil {
		add("user_id", *p.UserID)
	}
	if p.UserName != nil {
		add("user_name", *p.UserName)
	}
	if p.Password != nil {
		add("password", *p.Password)
	}
	if p.FullName != nil {
		add("first_name", p.FullName.FirstName)
		add("last_name", p.FullName.LastName)
	}
	if p.Age != nil {
		add("age", *p.Age)
	}
	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.IsActive != nil {
		add("is_active", *p.IsActive)
	}
	if p.Hobbies != nil {
		add("hobbies", p.Hobbies)
	}
	if p.Address != nil {
		add("street", p.Address.Street)
		add("city", p.Address.City)
		add("country", p.Address.Country)
	}
	if p.Orders != nil {
		add("orders", p.Orders)
	}
	return sets, args
}

func mapReadErr(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrUserNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func mapWriteErr(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrUserAlreadyExists
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilOrders(o []entity.Order) []entity.Order {
	if o == nil {
		return []entity.Order{}
	}
	return o
}

var _ repository.UserRepository = (*UserRepository)(nil)
