// Package memory holds throwaway in-memory repositories: fakes for tests and
// a no-disk option for callers that do not want the cart to survive restarts.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tomasrv/modastore/internal/domain"
)

type CartRepo struct {
	mu    sync.Mutex
	items []domain.CartItem

	// LoadErr/SaveErr make the repo fail on demand in tests.
	LoadErr error
	SaveErr error
	Saves   int
}

func NewCartRepo() *CartRepo { return &CartRepo{} }

func (r *CartRepo) Load(ctx context.Context) ([]domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	cp := make([]domain.CartItem, len(r.items))
	copy(cp, r.items)
	return cp, nil
}

func (r *CartRepo) Save(ctx context.Context, items []domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	cp := make([]domain.CartItem, len(items))
	copy(cp, items)
	r.items = cp
	r.Saves++
	return nil
}

type FavoritesRepo struct {
	mu  sync.Mutex
	ids []int64

	SaveErr error
}

func NewFavoritesRepo() *FavoritesRepo { return &FavoritesRepo{} }

func (r *FavoritesRepo) Load(ctx context.Context) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]int64, len(r.ids))
	copy(cp, r.ids)
	return cp, nil
}

func (r *FavoritesRepo) Save(ctx context.Context, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	cp := make([]int64, len(ids))
	copy(cp, ids)
	r.ids = cp
	return nil
}

type ProductRepo struct {
	mu       sync.Mutex
	nextID   int64
	products []domain.Product
}

func NewProductRepo() *ProductRepo { return &ProductRepo{nextID: 1} }

func (r *ProductRepo) Save(ctx context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	} else if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products[i] = *p
			return nil
		}
	}
	r.products = append(r.products, *p)
	return nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Product{}
	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
			continue
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		if f.BestSeller != nil && p.BestSeller != *f.BestSeller {
			continue
		}
		if f.InStock != nil && p.InStock != *f.InStock {
			continue
		}
		out = append(out, p)
	}
	switch f.Sort {
	case "price_asc":
		sort.Slice(out, func(i, j int) bool { return out[i].EffectivePrice() < out[j].EffectivePrice() })
	case "price_desc":
		sort.Slice(out, func(i, j int) bool { return out[i].EffectivePrice() > out[j].EffectivePrice() })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out, int64(len(out)), nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ProductRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]struct{}{}
	cats := []string{}
	for _, p := range r.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		cats = append(cats, p.Category)
	}
	sort.Strings(cats)
	return cats, nil
}

type OrderRepo struct {
	mu     sync.Mutex
	orders []domain.Order

	SaveErr error
}

func NewOrderRepo() *OrderRepo { return &OrderRepo{} }

func (r *OrderRepo) Save(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	for i := range r.orders {
		if r.orders[i].ID == o.ID {
			r.orders[i] = *o
			return nil
		}
	}
	r.orders = append(r.orders, *o)
	return nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *OrderRepo) List(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Order{}
	for _, o := range r.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

type CustomerRepo struct {
	mu        sync.Mutex
	customers []domain.Customer
}

func NewCustomerRepo() *CustomerRepo { return &CustomerRepo{} }

func (r *CustomerRepo) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := strings.ToLower(strings.TrimSpace(email))
	for _, c := range r.customers {
		if c.Email == e {
			cp := c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *CustomerRepo) Save(ctx context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	for i := range r.customers {
		if r.customers[i].ID == c.ID {
			r.customers[i] = *c
			return nil
		}
	}
	r.customers = append(r.customers, *c)
	return nil
}
