package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, cur currency.Unit) Money {
	return Money{Amount: amount, Currency: cur}
}

func ZeroMoney(cur currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: cur}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

func (m Money) Sub(other Money) Money {
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}
}

func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(factor), Currency: m.Currency}
}

// Format renders the amount with two fixed decimals, e.g. "$27.99".
func (m Money) Format() string {
	return symbol(m.Currency) + m.Amount.StringFixed(2)
}

func symbol(cur currency.Unit) string {
	switch cur {
	case currency.USD:
		return "$"
	case currency.EUR:
		return "€"
	case currency.GBP:
		return "£"
	default:
		return cur.String() + " "
	}
}
