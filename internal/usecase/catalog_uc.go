package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/tomasrv/modastore/internal/domain"
)

type CatalogUC struct {
	Products domain.ProductRepo
}

func (uc *CatalogUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	return uc.Products.List(ctx, f)
}

func (uc *CatalogUC) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, errors.New("invalid product id")
	}
	return uc.Products.FindByID(ctx, id)
}

func (uc *CatalogUC) Create(ctx context.Context, p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product name required")
	}
	if p.Price < 0 {
		return errors.New("negative price")
	}
	return uc.Products.Save(ctx, p)
}

func (uc *CatalogUC) Update(ctx context.Context, p *domain.Product) error {
	if p.ID <= 0 {
		return errors.New("invalid product id")
	}
	return uc.Products.Save(ctx, p)
}

func (uc *CatalogUC) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("invalid product id")
	}
	return uc.Products.Delete(ctx, id)
}

func (uc *CatalogUC) Categories(ctx context.Context) ([]string, error) {
	return uc.Products.DistinctCategories(ctx)
}
