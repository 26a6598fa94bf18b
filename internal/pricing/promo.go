package pricing

import (
	"fmt"
	"strings"

	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/shopspring/decimal"
)

const HireSami = "HIRE_SAMI"

type PromoBook struct {
	rules map[string]domain.PromoRule
}

// NewPromoBook indexes rules by their normalized code.
func NewPromoBook(rules ...domain.PromoRule) (*PromoBook, error) {
	book := &PromoBook{rules: make(map[string]domain.PromoRule, len(rules))}

	for _, rule := range rules {
		code := NormalizeCode(rule.Code)
		if code == "" {
			return nil, fmt.Errorf("promo code is empty")
		}
		if _, exists := book.rules[code]; exists {
			return nil, fmt.Errorf("promo code[%s] is duplicated", code)
		}
		if err := validateRule(rule); err != nil {
			return nil, fmt.Errorf("promo code[%s]: %w", code, err)
		}

		rule.Code = code
		book.rules[code] = rule
	}

	return book, nil
}

func DefaultPromoBook() *PromoBook {
	book, err := NewPromoBook(DefaultRules()...)
	if err != nil {
		panic(err)
	}
	return book
}

func DefaultRules() []domain.PromoRule {
	return []domain.PromoRule{
		{Code: HireSami, Kind: domain.PromoPercent, Value: decimal.NewFromInt(100)},
	}
}

func (b *PromoBook) Lookup(code string) (domain.PromoRule, bool) {
	rule, ok := b.rules[NormalizeCode(code)]
	return rule, ok
}

func (b *PromoBook) Len() int {
	return len(b.rules)
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validateRule(rule domain.PromoRule) error {
	if rule.Value.IsNegative() {
		return fmt.Errorf("value is negative")
	}

	switch rule.Kind {
	case domain.PromoPercent:
		if rule.Value.GreaterThan(hundred) {
			return fmt.Errorf("percent value %s is above 100", rule.Value)
		}
	case domain.PromoFixed:
	default:
		return fmt.Errorf("kind[%s] is not supported", rule.Kind)
	}

	return nil
}
