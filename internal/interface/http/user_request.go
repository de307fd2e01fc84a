package handlers

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/oksasatya/user-order-service/internal/domain/entity"
)

// StringList accepts either a JSON string or an array of strings. A single
// string becomes a one-element list.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return errors.New("hobbies must be a string or an array of strings")
	}
	if arr == nil {
		arr = []string{}
	}
	*l = arr
	return nil
}

type fullNameRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type addressRequest struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	Country string `json:"country" binding:"required"`
}

type orderRequest struct {
	ProductName string   `json:"productName" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Quantity    int      `json:"quantity" binding:"required,min=1"`
}

type createUserRequest struct {
	UserID   int64           `json:"userId" binding:"required,min=1"`
	UserName string          `json:"userName" binding:"required"`
	Password string          `json:"password" binding:"required,maxbytes=72"`
	FullName fullNameRequest `json:"fullName"`
	Age      int             `json:"age" binding:"required,min=1"`
	Email    string          `json:"email" binding:"required,email"`
	IsActive *bool           `json:"isActivate"`
	Hobbies  StringList      `json:"hobbies" binding:"required,dive,required"`
	Address  addressRequest  `json:"address"`
	Orders   []orderRequest  `json:"orders" binding:"omitempty,dive"`
}

// updateUserRequest validates only the fields that are present.
type updateUserRequest struct {
	UserID   *int64           `json:"userId" binding:"omitnil,min=1"`
	UserName *string          `json:"userName" binding:"omitnil,min=1"`
	Password *string          `json:"password" binding:"omitnil,min=1,maxbytes=72"`
	FullName *fullNameRequest `json:"fullName"`
	Age      *int             `json:"age" binding:"omitnil,min=1"`
	Email    *string          `json:"email" binding:"omitnil,email"`
	IsActive *bool            `json:"isActivate"`
	Hobbies  StringList       `json:"hobbies" binding:"omitempty,dive,required"`
	Address  *addressRequest  `json:"address"`
	Orders   []orderRequest   `json:"orders" binding:"omitempty,dive"`
}

func (o orderRequest) toEntity() entity.Order {
	var price float64
	if o.Price != nil {
		price = *o.Price
	}
	return entity.Order{ProductName: o.ProductName, Price: price, Quantity: o.Quantity}
}

func toOrders(in []orderRequest) []entity.Order {
	out := make([]entity.Order, 0, len(in))
	for _, o := range in {
		out = append(out, o.toEntity())
	}
	return out
}

func (r createUserRequest) toEntity() entity.User {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return entity.User{
		UserID:   r.UserID,
		UserName: r.UserName,
		Password: r.Password,
		FullName: entity.FullName{FirstName: r.FullName.FirstName, LastName: r.FullName.LastName},
		Age:      r.Age,
		Email:    r.Email,
		IsActive: active,
		Hobbies:  []string(r.Hobbies),
		Address:  entity.Address{Street: r.Address.Street, City: r.Address.City, Country: r.Address.Country},
		Orders:   toOrders(r.Orders),
	}
}

func (r updateUserRequest) toPatch() entity.UserPatch {
	p := entity.UserPatch{
		UserID:   r.UserID,
		UserName: r.UserName,
		Password: r.Password,
		Age:      r.Age,
		Email:    r.Email,
		IsActive: r.IsActive,
	}
	if r.FullName != nil {
		p.FullName = &entity.FullName{FirstName: r.FullName.FirstName, LastName: r.FullName.LastName}
	}
	if r.Address != nil {
		p.Address = &entity.Address{Street: r.Address.Street, City: r.Address.City, Country: r.Address.Country}
	}
	if r.Hobbies != nil {
		p.Hobbies = []string(r.Hobbies)
	}
	if r.Orders != nil {
		p.Orders = toOrders(r.Orders)
	}
	return p
}
