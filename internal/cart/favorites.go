package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/tomasrv/modastore/internal/domain"
)

// Favorites is the device-local set of favorited product ids, persisted the
// same way as the cart: whole record on every mutation, empty on a missing or
// unreadable record.
type Favorites struct {
	mu   sync.Mutex
	repo domain.FavoritesRepository
	ids  []int64
}

func NewFavorites(ctx context.Context, repo domain.FavoritesRepository) *Favorites {
	f := &Favorites{repo: repo}
	ids, err := repo.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("favorites: rehydrate failed, starting empty")
		ids = nil
	}
	f.ids = ids
	return f
}

// Toggle flips the favorite state of a product and reports the new state.
func (f *Favorites) Toggle(ctx context.Context, productID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, id := range f.ids {
		if id == productID {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			f.persistLocked(ctx)
			return false
		}
	}
	f.ids = append(f.ids, productID)
	f.persistLocked(ctx)
	return true
}

func (f *Favorites) Has(productID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.ids {
		if id == productID {
			return true
		}
	}
	return false
}

// IDs returns the favorited product ids in insertion order.
func (f *Favorites) IDs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]int64, len(f.ids))
	copy(cp, f.ids)
	return cp
}

func (f *Favorites) persistLocked(ctx context.Context) {
	if err := f.repo.Save(ctx, f.ids); err != nil {
		log.Warn().Err(err).Msg("favorites: persist failed, keeping in-memory state")
	}
}
