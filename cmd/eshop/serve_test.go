package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/nikolayk812/neon-eshop/internal/config"
	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestOpenRepository_Local(t *testing.T) {
	ctx := t.Context()

	sc := config.StorageConfig{Driver: config.DriverLocal, Path: filepath.Join(t.TempDir(), "nested", "eshop.db")}
	repo, closeRepo, err := openRepository(ctx, sc, currency.USD)
	require.NoError(t, err)
	defer closeRepo()

	item := domain.LineItem{
		ID:       "1",
		Title:    "Neon Racers: Miami Nights",
		Price:    domain.NewMoney(decimal.RequireFromString("39.99"), currency.USD),
		Platform: domain.DefaultPlatform,
		Quantity: 2,
	}
	require.NoError(t, repo.SaveCart(ctx, domain.Cart{OwnerID: "owner", Items: []domain.LineItem{item}}))

	got, err := repo.GetCart(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestOpenRepository_UnsupportedDriver(t *testing.T) {
	_, _, err := openRepository(t.Context(), config.StorageConfig{Driver: "redis"}, currency.USD)
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, version+"\n", out.String())
}
