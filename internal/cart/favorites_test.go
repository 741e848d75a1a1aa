package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomasrv/modastore/internal/adapters/repo/memory"
	"github.com/tomasrv/modastore/internal/cart"
)

func TestFavoritesToggle(t *testing.T) {
	repo := memory.NewFavoritesRepo()
	ctx := context.Background()
	f := cart.NewFavorites(ctx, repo)

	assert.True(t, f.Toggle(ctx, 7))
	assert.True(t, f.Has(7))
	assert.True(t, f.Toggle(ctx, 3))
	assert.Equal(t, []int64{7, 3}, f.IDs())

	assert.False(t, f.Toggle(ctx, 7))
	assert.False(t, f.Has(7))
	assert.Equal(t, []int64{3}, f.IDs())
}

func TestFavoritesRoundTrip(t *testing.T) {
	repo := memory.NewFavoritesRepo()
	ctx := context.Background()
	f := cart.NewFavorites(ctx, repo)
	f.Toggle(ctx, 1)
	f.Toggle(ctx, 2)

	reborn := cart.NewFavorites(ctx, repo)
	assert.Equal(t, f.IDs(), reborn.IDs())
}

func TestFavoritesPersistFailureKeepsMemoryState(t *testing.T) {
	repo := memory.NewFavoritesRepo()
	ctx := context.Background()
	f := cart.NewFavorites(ctx, repo)
	repo.SaveErr = errors.New("quota exceeded")

	f.Toggle(ctx, 9)
	assert.True(t, f.Has(9))
}
