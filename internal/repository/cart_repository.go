package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/neon-eshop/internal/db"
	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/nikolayk812/neon-eshop/internal/port"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q  *db.Queries
	tx txBeginner
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:  db.New(pool),
		tx: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q: db.New(tx),
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	dbCartItems, err := r.q.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCart: %w", err)
	}

	items, err := mapGetCartRowsToDomain(dbCartItems)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapGetCartRowsToDomain: %w", err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   items,
	}, nil
}

func (r *cartRepository) SaveCart(ctx context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if err := validateItems(cart.Items); err != nil {
		return fmt.Errorf("validateItems: %w", err)
	}

	now := time.Now().UTC()

	return inTx(ctx, r.tx, r.q, func(q *db.Queries) error {
		if _, err := q.DeleteCart(ctx, cart.OwnerID); err != nil {
			return fmt.Errorf("q.DeleteCart: %w", err)
		}

		for i, item := range cart.Items {
			createdAt := item.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}

			err := q.AddItem(ctx, db.AddItemParams{
				OwnerID:       cart.OwnerID,
				ProductID:     item.ID,
				Title:         item.Title,
				PriceAmount:   item.Price.Amount,
				PriceCurrency: item.Price.Currency.String(),
				Image:         item.Image,
				Platform:      item.Platform,
				Quantity:      int64(item.Quantity),
				Position:      int32(i),
				CreatedAt:     createdAt,
			})
			if err != nil {
				return fmt.Errorf("q.AddItem[%s]: %w", item.ID, err)
			}
		}

		return nil
	})
}

func mapGetCartRowToDomain(row db.GetCartRow) (domain.LineItem, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.LineItem{
		ID:        row.ProductID,
		Title:     row.Title,
		Price:     domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Image:     row.Image,
		Platform:  row.Platform,
		Quantity:  int(row.Quantity),
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapGetCartRowsToDomain(rows []db.GetCartRow) ([]domain.LineItem, error) {
	var items []domain.LineItem

	for _, row := range rows {
		item, err := mapGetCartRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
