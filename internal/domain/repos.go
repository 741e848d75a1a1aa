package domain

import (
	"context"

	"github.com/google/uuid"
)

type ProductRepo interface {
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	Delete(ctx context.Context, id int64) error
	DistinctCategories(ctx context.Context) ([]string, error)
}

type OrderRepo interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, status OrderStatus) ([]Order, error)
}

type CustomerRepo interface {
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Save(ctx context.Context, c *Customer) error
}
