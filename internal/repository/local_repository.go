package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/nikolayk812/neon-eshop/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	_ "modernc.org/sqlite"
)

// CartKeyPrefix namespaces cart entries in the key/value table.
const CartKeyPrefix = "gta6_cart:"

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);`

// storedItem is the JSON shape of one persisted line item.
type storedItem struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Price    json.Number `json:"price"`
	Image    string      `json:"image"`
	Platform string      `json:"platform"`
	Quantity int         `json:"quantity"`
}

type localCartRepository struct {
	db       *sql.DB
	currency currency.Unit
}

// OpenSQLite opens (creating if needed) the local key/value database at path.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	// sqlite allows a single writer at a time
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.ExecContext(ctx, kvSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return sqlDB, nil
}

// NewLocalCart stores each cart as one JSON array under the key CartKeyPrefix+ownerID.
// Prices are persisted as bare numbers, so the currency is fixed per store.
func NewLocalCart(sqlDB *sql.DB, cur currency.Unit) (port.CartRepository, error) {
	if sqlDB == nil {
		return nil, fmt.Errorf("db is nil")
	}

	return &localCartRepository{
		db:       sqlDB,
		currency: cur,
	}, nil
}

func (r *localCartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, CartKeyPrefix+ownerID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{OwnerID: ownerID}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("db.QueryRow: %w", err)
	}

	items, err := r.decode([]byte(raw))
	if err != nil {
		return domain.Cart{}, fmt.Errorf("decode: %w", err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   items,
	}, nil
}

func (r *localCartRepository) SaveCart(ctx context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if err := validateItems(cart.Items); err != nil {
		return fmt.Errorf("validateItems: %w", err)
	}

	raw, err := encode(cart.Items)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		CartKeyPrefix+cart.OwnerID, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

func encode(items []domain.LineItem) ([]byte, error) {
	stored := make([]storedItem, 0, len(items))
	for _, item := range items {
		stored = append(stored, storedItem{
			ID:       item.ID,
			Title:    item.Title,
			Price:    json.Number(item.Price.Amount.String()),
			Image:    item.Image,
			Platform: item.Platform,
			Quantity: item.Quantity,
		})
	}

	return json.Marshal(stored)
}

func (r *localCartRepository) decode(raw []byte) ([]domain.LineItem, error) {
	var stored []storedItem
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	items := make([]domain.LineItem, 0, len(stored))
	for _, s := range stored {
		amount, err := decimal.NewFromString(s.Price.String())
		if err != nil {
			return nil, fmt.Errorf("item[%s] price[%s]: %w", s.ID, s.Price, err)
		}

		items = append(items, domain.LineItem{
			ID:       s.ID,
			Title:    s.Title,
			Price:    domain.NewMoney(amount, r.currency),
			Image:    s.Image,
			Platform: s.Platform,
			Quantity: s.Quantity,
		})
	}

	if err := validateItems(items); err != nil {
		return nil, err
	}

	return items, nil
}
