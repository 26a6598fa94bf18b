package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultPlatform = "PC"

type Cart struct {
	OwnerID string
	Items   []LineItem
}

type LineItem struct {
	ID       string
	Title    string
	Price    Money
	Image    string
	Platform string
	Quantity int

	CreatedAt time.Time
}

// LineTotal is price × quantity.
func (li LineItem) LineTotal() Money {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ProductRef is what a catalog hands to the cart when a product is added.
type ProductRef struct {
	ID       string
	Title    string
	Price    Money
	Image    string
	Platform string
}
