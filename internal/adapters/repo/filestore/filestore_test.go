package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomasrv/modastore/internal/domain"
)

func TestCartRepoRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	repo := NewCartRepo(path)
	ctx := context.Background()

	items := []domain.CartItem{
		{
			Product: domain.Product{
				ID: 1, Name: "Hoodie", Category: "hoodies", Price: 55, DiscountPrice: 45,
				InStock: true,
				Images:  []string{"/img/hoodie.jpg"},
				Sizes:   []domain.SizeOption{{Size: "M", Available: true}},
				Color:   []domain.ColorOption{{Color: "black", ColorCode: "#111827"}},
			},
			Size: "M", Quantity: 2, Color: "black", ColorCode: "#111827",
		},
		{Product: domain.Product{ID: 2, Name: "Cap", Price: 15}, Size: "onesize", Quantity: 1},
	}
	require.NoError(t, repo.Save(ctx, items))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestCartRepoMissingFileIsEmpty(t *testing.T) {
	repo := NewCartRepo(filepath.Join(t.TempDir(), "nope.json"))
	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCartRepoCorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got, err := NewCartRepo(path).Load(context.Background())
	assert.Error(t, err)
	assert.Empty(t, got)
}

func TestCartRepoSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cart.json")
	require.NoError(t, NewCartRepo(path).Save(context.Background(), nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cart.json", entries[0].Name())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(data))
}

func TestFavoritesRepoRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	repo := NewFavoritesRepo(path)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, []int64{3, 1, 2}))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, got)
}

func TestFavoritesRepoCorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	require.NoError(t, os.WriteFile(path, []byte("[["), 0o644))

	got, err := NewFavoritesRepo(path).Load(context.Background())
	assert.Error(t, err)
	assert.Empty(t, got)
}
