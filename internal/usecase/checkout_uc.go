package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/tomasrv/modastore/internal/domain"
)

type CheckoutUC struct {
	Orders    domain.OrderRepo
	Customers domain.CustomerRepo
}

type CustomerDetails struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Submit turns a cart snapshot into a persisted order. Line prices are
// captured here with the same effective-price rule the cart total uses.
// Clearing the cart afterwards is the caller's job, and only on success.
func (uc *CheckoutUC) Submit(ctx context.Context, items []domain.CartItem, d CustomerDetails) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if strings.TrimSpace(d.Email) == "" || strings.TrimSpace(d.Name) == "" {
		return nil, errors.New("email and name required")
	}

	o := &domain.Order{
		ID:         uuid.New(),
		Status:     domain.OrderStatusPending,
		Email:      strings.ToLower(strings.TrimSpace(d.Email)),
		Name:       d.Name,
		Phone:      d.Phone,
		Address:    d.Address,
		City:       d.City,
		PostalCode: d.PostalCode,
	}
	if uc.Customers != nil {
		if id, err := uc.upsertCustomer(ctx, d); err == nil {
			o.CustomerID = &id
		}
	}
	for _, it := range items {
		o.Items = append(o.Items, domain.OrderItem{
			ID:        uuid.New(),
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Size:      it.Size,
			Color:     it.Color,
			Qty:       it.Quantity,
			UnitPrice: it.Product.EffectivePrice(),
		})
	}
	o.Total = domain.ItemsTotal(items)

	if err := uc.Orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *CheckoutUC) upsertCustomer(ctx context.Context, d CustomerDetails) (uuid.UUID, error) {
	c, err := uc.Customers.FindByEmail(ctx, d.Email)
	if errors.Is(err, domain.ErrNotFound) {
		c = &domain.Customer{ID: uuid.New(), Email: d.Email, Name: d.Name, Phone: d.Phone}
		if err := uc.Customers.Save(ctx, c); err != nil {
			return uuid.Nil, err
		}
		return c.ID, nil
	}
	if err != nil {
		return uuid.Nil, err
	}
	return c.ID, nil
}
