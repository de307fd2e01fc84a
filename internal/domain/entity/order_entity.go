package entity

import "github.com/shopspring/decimal"

// Order is a line item embedded in a User. It has no identity of its own.
type Order struct {
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Subtotal is price * quantity.
func (o Order) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(o.Price).Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// TotalPrice sums price * quantity over orders. Empty or nil yields zero.
func TotalPrice(orders []Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Subtotal())
	}
	return total
}
