package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/nikolayk812/neon-eshop/internal/port"
	"github.com/nikolayk812/neon-eshop/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"golang.org/x/text/currency"
)

type cartRepositorySuite struct {
	suite.Suite

	repo      port.CartRepository
	pool      *pgxpool.Pool
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres container tests are skipped in short mode")
	}

	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var err error
	suite.container, suite.pool, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.repo = repository.NewCart(suite.pool)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *cartRepositorySuite) TestSaveCart() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		cart      domain.Cart
		wantError string
	}{
		{
			name: "save cart with items: ok",
			cart: domain.Cart{
				OwnerID: gofakeit.UUID(),
				Items:   []domain.LineItem{randomLineItem(), randomLineItem(), randomLineItem()},
			},
		},
		{
			name: "save empty cart: ok",
			cart: domain.Cart{OwnerID: gofakeit.UUID()},
		},
		{
			name:      "save with empty owner ID: error",
			cart:      domain.Cart{Items: []domain.LineItem{randomLineItem()}},
			wantError: "ownerID is empty",
		},
		{
			name: "save item with zero price amount: ok",
			cart: domain.Cart{
				OwnerID: gofakeit.UUID(),
				Items: []domain.LineItem{{
					ID:       gofakeit.UUID(),
					Title:    gofakeit.BookTitle(),
					Price:    domain.Money{Amount: decimal.Zero, Currency: randomCurrency()},
					Platform: domain.DefaultPlatform,
					Quantity: 1,
				}},
			},
		},
		{
			name: "save item with zero quantity: error",
			cart: domain.Cart{
				OwnerID: "owner-zero-qty",
				Items: []domain.LineItem{{
					ID:       "1",
					Price:    randomMoney(),
					Quantity: 0,
				}},
			},
			wantError: "validateItems: item[1]: quantity 0 is not positive",
		},
		{
			name: "save item with quantity above int32: ok",
			cart: domain.Cart{
				OwnerID: gofakeit.UUID(),
				Items: []domain.LineItem{{
					ID:       gofakeit.UUID(),
					Title:    gofakeit.BookTitle(),
					Price:    randomMoney(),
					Platform: domain.DefaultPlatform,
					Quantity: 1<<32 + 1,
				}},
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			err := suite.repo.SaveCart(ctx, tt.cart)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			// Verify the items round-trip in order
			cart, err := suite.repo.GetCart(ctx, tt.cart.OwnerID)
			require.NoError(t, err)

			require.Len(t, cart.Items, len(tt.cart.Items))
			for i, expectedItem := range tt.cart.Items {
				assertLineItem(t, expectedItem, cart.Items[i])
			}
		})
	}
}

func (suite *cartRepositorySuite) TestSaveCartReplacesItems() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	first := []domain.LineItem{randomLineItem(), randomLineItem()}
	require.NoError(t, suite.repo.SaveCart(ctx, domain.Cart{OwnerID: ownerID, Items: first}))

	second := []domain.LineItem{first[1], randomLineItem()}
	second[0].Quantity += 3
	require.NoError(t, suite.repo.SaveCart(ctx, domain.Cart{OwnerID: ownerID, Items: second}))

	cart, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assertLineItem(t, second[0], cart.Items[0])
	assertLineItem(t, second[1], cart.Items[1])
}

func (suite *cartRepositorySuite) TestGetCart() {
	defer suite.deleteAll()

	tests := []struct {
		name       string
		ownerID    string
		setupItems []domain.LineItem
		wantError  string
	}{
		{
			name:       "get cart with items: ok",
			ownerID:    gofakeit.UUID(),
			setupItems: []domain.LineItem{randomLineItem(), randomLineItem()},
		},
		{
			name:    "get unknown cart: empty",
			ownerID: gofakeit.UUID(),
		},
		{
			name:      "get cart with empty owner ID: error",
			ownerID:   "",
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if len(tt.setupItems) > 0 {
				err := suite.repo.SaveCart(ctx, domain.Cart{OwnerID: tt.ownerID, Items: tt.setupItems})
				require.NoError(t, err)
			}

			cart, err := suite.repo.GetCart(ctx, tt.ownerID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.ownerID, cart.OwnerID)
			assert.Len(t, cart.Items, len(tt.setupItems))

			for i, expectedItem := range tt.setupItems {
				assertLineItem(t, expectedItem, cart.Items[i])
				assert.False(t, cart.Items[i].CreatedAt.IsZero())
			}
		})
	}
}

func (suite *cartRepositorySuite) TestSaveCartWithTx() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txRepo := repository.NewCartWithTx(tx)
	require.NoError(t, txRepo.SaveCart(ctx, domain.Cart{OwnerID: ownerID, Items: []domain.LineItem{randomLineItem()}}))

	require.NoError(t, tx.Rollback(ctx))

	cart, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func (suite *cartRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_items CASCADE")
	suite.NoError(err)
}

func randomLineItem() domain.LineItem {
	return domain.LineItem{
		ID:       gofakeit.UUID(),
		Title:    gofakeit.BookTitle(),
		Price:    randomMoney(),
		Image:    gofakeit.URL(),
		Platform: gofakeit.RandomString([]string{"PC", "PlayStation 5", "Xbox Series X", "Nintendo Switch"}),
		Quantity: gofakeit.IntRange(1, 9),
	}
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)),
		Currency: randomCurrency(),
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

func assertLineItem(t *testing.T, expected, actual domain.LineItem) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	// Ignore the CreatedAt field in LineItem
	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.LineItem{}, "CreatedAt"),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}
