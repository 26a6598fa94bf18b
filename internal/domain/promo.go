package domain

import "github.com/shopspring/decimal"

type PromoKind string

const (
	// PromoPercent discounts a percentage of subtotal+shipping+tax.
	PromoPercent PromoKind = "percent"
	// PromoFixed discounts a fixed amount, never below a zero total.
	PromoFixed PromoKind = "fixed"
)

type PromoRule struct {
	Code  string
	Kind  PromoKind
	Value decimal.Decimal
}

type PricingSnapshot struct {
	Subtotal  Money
	Shipping  Money
	Tax       Money
	Discount  Money
	Total     Money
	PromoCode string
}
