package pricing_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/nikolayk812/neon-eshop/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestEngine_Calculate(t *testing.T) {
	hireSami := &domain.PromoRule{Code: pricing.HireSami, Kind: domain.PromoPercent, Value: decimal.NewFromInt(100)}
	fiveOff := &domain.PromoRule{Code: "FIVE", Kind: domain.PromoFixed, Value: decimal.NewFromInt(5)}
	tenOff := &domain.PromoRule{Code: "TENOFF", Kind: domain.PromoFixed, Value: decimal.NewFromInt(10)}
	tenPercent := &domain.PromoRule{Code: "TEN", Kind: domain.PromoPercent, Value: decimal.NewFromInt(10)}

	tests := []struct {
		name  string
		items []domain.LineItem
		promo *domain.PromoRule

		wantSubtotal string
		wantShipping string
		wantTax      string
		wantDiscount string
		wantTotal    string
	}{
		{
			name:         "empty cart: all zero",
			wantSubtotal: "0",
			wantShipping: "0",
			wantTax:      "0",
			wantDiscount: "0",
			wantTotal:    "0",
		},
		{
			name:         "single item quantity 2: ok",
			items:        []domain.LineItem{lineItem("1", "10", 2)},
			wantSubtotal: "20",
			wantShipping: "5.99",
			wantTax:      "2",
			wantDiscount: "0",
			wantTotal:    "27.99",
		},
		{
			name:         "several items: ok",
			items:        []domain.LineItem{lineItem("1", "59.99", 1), lineItem("2", "49.99", 3)},
			wantSubtotal: "209.96",
			wantShipping: "5.99",
			wantTax:      "20.996",
			wantDiscount: "0",
			wantTotal:    "236.946",
		},
		{
			name:         "full waiver promo: total zero",
			items:        []domain.LineItem{lineItem("1", "10", 2)},
			promo:        hireSami,
			wantSubtotal: "20",
			wantShipping: "5.99",
			wantTax:      "2",
			wantDiscount: "27.99",
			wantTotal:    "0",
		},
		{
			name:         "full waiver promo on empty cart: nothing to discount",
			promo:        hireSami,
			wantSubtotal: "0",
			wantShipping: "0",
			wantTax:      "0",
			wantDiscount: "0",
			wantTotal:    "0",
		},
		{
			name:         "fixed promo: subtracted",
			items:        []domain.LineItem{lineItem("1", "10", 2)},
			promo:        fiveOff,
			wantSubtotal: "20",
			wantShipping: "5.99",
			wantTax:      "2",
			wantDiscount: "5",
			wantTotal:    "22.99",
		},
		{
			name:         "fixed promo above gross: clamped to zero total",
			items:        []domain.LineItem{lineItem("1", "1", 1)},
			promo:        tenOff,
			wantSubtotal: "1",
			wantShipping: "5.99",
			wantTax:      "0.1",
			wantDiscount: "7.09",
			wantTotal:    "0",
		},
		{
			name:         "percent promo: ok",
			items:        []domain.LineItem{lineItem("1", "100", 1)},
			promo:        tenPercent,
			wantSubtotal: "100",
			wantShipping: "5.99",
			wantTax:      "10",
			wantDiscount: "11.599",
			wantTotal:    "104.391",
		},
	}

	engine := pricing.DefaultEngine()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Calculate(tt.items, tt.promo)

			assertAmount(t, tt.wantSubtotal, got.Subtotal)
			assertAmount(t, tt.wantShipping, got.Shipping)
			assertAmount(t, tt.wantTax, got.Tax)
			assertAmount(t, tt.wantDiscount, got.Discount)
			assertAmount(t, tt.wantTotal, got.Total)

			if tt.promo != nil {
				assert.Equal(t, tt.promo.Code, got.PromoCode)
			} else {
				assert.Empty(t, got.PromoCode)
			}
		})
	}
}

func TestEngine_FullWaiverAlwaysZeroesTotal(t *testing.T) {
	engine := pricing.DefaultEngine()
	rule, ok := pricing.DefaultPromoBook().Lookup(pricing.HireSami)
	require.True(t, ok)

	for range 50 {
		items := randomItems(gofakeit.IntRange(1, 6))

		got := engine.Calculate(items, &rule)

		gross := got.Subtotal.Amount.Add(got.Shipping.Amount).Add(got.Tax.Amount)
		assert.True(t, got.Total.Amount.IsZero(), "total %s", got.Total.Amount)
		assert.True(t, got.Discount.Amount.Equal(gross), "discount %s gross %s", got.Discount.Amount, gross)
	}
}

func TestEngine_SubtotalIsOrderIndependent(t *testing.T) {
	engine := pricing.DefaultEngine()

	for range 50 {
		items := randomItems(gofakeit.IntRange(0, 8))

		want := decimal.Zero
		for _, item := range items {
			want = want.Add(item.Price.Amount.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		shuffled := make([]domain.LineItem, len(items))
		copy(shuffled, items)
		gofakeit.ShuffleAnySlice(shuffled)

		assert.True(t, engine.Calculate(items, nil).Subtotal.Amount.Equal(want))
		assert.True(t, engine.Calculate(shuffled, nil).Subtotal.Amount.Equal(want))
	}
}

func TestEngine_Currency(t *testing.T) {
	engine := pricing.NewEngine(currency.EUR, decimal.NewFromInt(3), decimal.RequireFromString("0.2"))

	got := engine.Calculate([]domain.LineItem{lineItem("1", "10", 1)}, nil)

	assert.Equal(t, currency.EUR, engine.Currency())
	assert.Equal(t, currency.EUR, got.Total.Currency)
	assertAmount(t, "15", got.Total)
}

func lineItem(id, price string, quantity int) domain.LineItem {
	return domain.LineItem{
		ID:       id,
		Title:    gofakeit.BookTitle(),
		Price:    domain.NewMoney(decimal.RequireFromString(price), currency.USD),
		Image:    gofakeit.URL(),
		Platform: domain.DefaultPlatform,
		Quantity: quantity,
	}
}

func randomItems(n int) []domain.LineItem {
	items := make([]domain.LineItem, 0, n)
	for range n {
		items = append(items, domain.LineItem{
			ID:       gofakeit.UUID(),
			Title:    gofakeit.BookTitle(),
			Price:    domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 100)), currency.USD),
			Platform: domain.DefaultPlatform,
			Quantity: gofakeit.IntRange(1, 5),
		})
	}
	return items
}

func assertAmount(t *testing.T, want string, got domain.Money) {
	t.Helper()

	assert.True(t, decimal.RequireFromString(want).Equal(got.Amount), "want %s, got %s", want, got.Amount)
}
