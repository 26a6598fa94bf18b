// Package pricing computes cart totals. Everything here is pure: the same
// items and promo rule always produce the same snapshot.
package pricing

import (
	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	DefaultShippingFlat = decimal.RequireFromString("5.99")
	DefaultTaxRate      = decimal.RequireFromString("0.10")

	hundred = decimal.NewFromInt(100)
)

type Engine struct {
	currency     currency.Unit
	shippingFlat decimal.Decimal
	taxRate      decimal.Decimal
}

func NewEngine(cur currency.Unit, shippingFlat, taxRate decimal.Decimal) *Engine {
	return &Engine{
		currency:     cur,
		shippingFlat: shippingFlat,
		taxRate:      taxRate,
	}
}

func DefaultEngine() *Engine {
	return NewEngine(currency.USD, DefaultShippingFlat, DefaultTaxRate)
}

func (e *Engine) Currency() currency.Unit {
	return e.currency
}

// Calculate derives the pricing snapshot for items. A nil promo means no discount.
func (e *Engine) Calculate(items []domain.LineItem, promo *domain.PromoRule) domain.PricingSnapshot {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Amount.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = e.shippingFlat
	}

	tax := subtotal.Mul(e.taxRate)
	gross := subtotal.Add(shipping).Add(tax)

	discount := Discount(promo, gross)
	total := decimal.Max(decimal.Zero, gross.Sub(discount))

	snapshot := domain.PricingSnapshot{
		Subtotal: e.money(subtotal),
		Shipping: e.money(shipping),
		Tax:      e.money(tax),
		Discount: e.money(discount),
		Total:    e.money(total),
	}
	if promo != nil {
		snapshot.PromoCode = promo.Code
	}

	return snapshot
}

// Discount returns the amount rule takes off gross, clamped to [0, gross].
func Discount(rule *domain.PromoRule, gross decimal.Decimal) decimal.Decimal {
	if rule == nil || !gross.IsPositive() {
		return decimal.Zero
	}

	var d decimal.Decimal
	switch rule.Kind {
	case domain.PromoPercent:
		d = gross.Mul(rule.Value).Div(hundred)
	case domain.PromoFixed:
		d = rule.Value
	default:
		return decimal.Zero
	}

	if d.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(d, gross)
}

func (e *Engine) money(amount decimal.Decimal) domain.Money {
	return domain.NewMoney(amount, e.currency)
}
