package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tomasrv/modastore/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Save(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	var list []domain.Product
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if f.BestSeller != nil {
		q = q.Where("best_seller = ?", *f.BestSeller)
	}
	if f.InStock != nil {
		q = q.Where("in_stock = ?", *f.InStock)
	}
	if f.Query != "" {
		like := "%" + strings.TrimSpace(f.Query) + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	switch f.Sort {
	case "price_desc":
		q = q.Order("CASE WHEN discount_price > 0 THEN discount_price ELSE price END desc")
	case "price_asc":
		q = q.Order("CASE WHEN discount_price > 0 THEN discount_price ELSE price END asc")
	case "newest":
		q = q.Order("created_at desc")
	default:
		q = q.Order("name asc")
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	offset := (f.Page - 1) * f.PageSize
	if err := q.Offset(offset).Limit(f.PageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	cats := []string{}
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Distinct("category").Where("category <> ''").Order("category asc").Pluck("category", &cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}
