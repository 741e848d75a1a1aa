// Package cart holds the device-local shopping cart state: a single shared,
// mutex-serialized collection of lines, persisted through a repository after
// every mutation and rehydrated on startup.
package cart

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/tomasrv/modastore/internal/domain"
)

// Observer receives a snapshot of the cart after every mutation, synchronously,
// so every view of the same store stays consistent within one tick.
type Observer func(items []domain.CartItem)

// Store is the authoritative cart for one device. All mutations run under a
// single mutex: each one is a read-modify-write of the whole collection and an
// interleaving would break the one-line-per-variant invariant.
//
// Persistence failures are deliberately non-fatal: the in-memory state stays
// authoritative for the session and the error is only logged. Worst case the
// cart is forgotten on the next reload, never mid-session.
type Store struct {
	mu    sync.Mutex
	repo  domain.CartRepository
	items []domain.CartItem

	subs    map[int]Observer
	nextSub int
}

// NewStore rehydrates the cart from the repository. A missing or unreadable
// record starts an empty cart; rehydration is never an error.
func NewStore(ctx context.Context, repo domain.CartRepository) *Store {
	s := &Store{repo: repo, subs: map[int]Observer{}}
	items, err := repo.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("cart: rehydrate failed, starting empty")
		items = nil
	}
	s.items = items
	return s
}

// Add merges the given quantity into the line identified by (product id, size,
// normalized color), or appends a new line carrying the exact values passed
// in. An existing line keeps its own color/colorCode. A non-positive quantity
// or an empty size is a caller error and a no-op.
func (s *Store) Add(ctx context.Context, p domain.Product, size string, qty int, color, colorCode string) {
	if qty <= 0 || strings.TrimSpace(size) == "" {
		return
	}
	s.mu.Lock()
	key := domain.VariantKey(p.ID, size, color)
	merged := false
	for i := range s.items {
		if s.items[i].Key() == key {
			s.items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, domain.CartItem{
			Product:   p,
			Size:      size,
			Quantity:  qty,
			Color:     color,
			ColorCode: colorCode,
		})
	}
	s.commitLocked(ctx)
}

// RemoveSize drops every line for the given product and size, regardless of
// color. Color-agnostic removal is the store's contract: callers wanting a
// single color gone must rebuild from a filtered snapshot. No-op on no match.
func (s *Store) RemoveSize(ctx context.Context, productID int64, size string) {
	s.mu.Lock()
	kept := s.items[:0]
	removed := false
	for _, it := range s.items {
		if it.Product.ID == productID && it.Size == size {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	if !removed {
		s.mu.Unlock()
		return
	}
	s.commitLocked(ctx)
}

// SetQuantity replaces the quantity of every line matching (product id, size),
// color-agnostic like RemoveSize. A target of zero or less removes the lines
// entirely; a quantity below one is never stored. No-op on no match.
func (s *Store) SetQuantity(ctx context.Context, productID int64, size string, qty int) {
	if qty <= 0 {
		s.RemoveSize(ctx, productID, size)
		return
	}
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].Product.ID == productID && s.items[i].Size == size {
			s.items[i].Quantity = qty
			changed = true
		}
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	s.commitLocked(ctx)
}

// Clear empties the cart unconditionally and persists the empty record.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.commitLocked(ctx)
}

// Items returns a copy of the current lines.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Count is the total number of units across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Total is the monetary value of the cart: Σ effective unit price × quantity.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ItemsTotal(s.items)
}

// Subscribe registers an observer and returns its unsubscribe func.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// commitLocked persists the collection and notifies observers. It is entered
// with the mutex held and releases it; observers run outside the lock so they
// may call back into the store.
func (s *Store) commitLocked(ctx context.Context) {
	if err := s.repo.Save(ctx, s.items); err != nil {
		log.Warn().Err(err).Int("lines", len(s.items)).Msg("cart: persist failed, keeping in-memory state")
	}
	snap := s.snapshotLocked()
	obs := make([]Observer, 0, len(s.subs))
	for _, fn := range s.subs {
		obs = append(obs, fn)
	}
	s.mu.Unlock()
	for _, fn := range obs {
		fn(snap)
	}
}

func (s *Store) snapshotLocked() []domain.CartItem {
	cp := make([]domain.CartItem, len(s.items))
	copy(cp, s.items)
	return cp
}
