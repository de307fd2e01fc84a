package templates

import (
	"time"

	"github.com/shopspring/decimal"
)

type Option func(*EmailData)

func WithUser(userID int64, userName string) Option {
	return func(d *EmailData) {
		d.UserID = userID
		d.UserName = userName
	}
}

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		d.TimeAt = t.UTC()
		d.Time = t.UTC().Format("02 Jan 2006 15:04 MST")
	}
}

// WithOrder fills the order fields; amounts are formatted with two decimals.
func WithOrder(productName string, price float64, quantity int) Option {
	return func(d *EmailData) {
		p := decimal.NewFromFloat(price)
		d.ProductName = productName
		d.Price = p.StringFixed(2)
		d.Quantity = quantity
		d.Subtotal = p.Mul(decimal.NewFromInt(int64(quantity))).StringFixed(2)
	}
}

// NewEmailData builds the common fields and applies opts in order.
func NewEmailData(appName, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{AppName: appName, Type: typ, Name: name, Email: email}
	WithTime(time.Now())(&d)
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
