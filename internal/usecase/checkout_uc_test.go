package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomasrv/modastore/internal/adapters/repo/memory"
	"github.com/tomasrv/modastore/internal/domain"
	"github.com/tomasrv/modastore/internal/usecase"
)

func snapshot() []domain.CartItem {
	return []domain.CartItem{
		{
			Product:  domain.Product{ID: 1, Name: "Oversize Tee", Price: 10},
			Size:     "M",
			Quantity: 3,
			Color:    "red",
		},
		{
			Product:  domain.Product{ID: 2, Name: "Hoodie", Price: 55, DiscountPrice: 45},
			Size:     "L",
			Quantity: 1,
		},
	}
}

func TestSubmitBuildsOrderFromSnapshot(t *testing.T) {
	orders := memory.NewOrderRepo()
	customers := memory.NewCustomerRepo()
	uc := &usecase.CheckoutUC{Orders: orders, Customers: customers}

	o, err := uc.Submit(context.Background(), snapshot(), usecase.CustomerDetails{
		Email: "Ana@Example.com", Name: "Ana", Phone: "123", Address: "Calle 1", City: "Rosario", PostalCode: "2000",
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 2)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.Equal(t, "ana@example.com", o.Email)

	// Line prices come from the effective-price rule, discount preferred.
	assert.InDelta(t, 10, o.Items[0].UnitPrice, 1e-9)
	assert.InDelta(t, 45, o.Items[1].UnitPrice, 1e-9)
	assert.Equal(t, 3, o.Items[0].Qty)
	assert.Equal(t, "red", o.Items[0].Color)
	assert.InDelta(t, 75, o.Total, 1e-9)

	saved, err := orders.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.InDelta(t, o.Total, saved.Total, 1e-9)

	c, err := customers.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, o.CustomerID)
	assert.Equal(t, c.ID, *o.CustomerID)
}

func TestSubmitReusesExistingCustomer(t *testing.T) {
	orders := memory.NewOrderRepo()
	customers := memory.NewCustomerRepo()
	uc := &usecase.CheckoutUC{Orders: orders, Customers: customers}
	ctx := context.Background()

	first, err := uc.Submit(ctx, snapshot(), usecase.CustomerDetails{Email: "ana@example.com", Name: "Ana"})
	require.NoError(t, err)
	second, err := uc.Submit(ctx, snapshot(), usecase.CustomerDetails{Email: "ana@example.com", Name: "Ana"})
	require.NoError(t, err)

	require.NotNil(t, first.CustomerID)
	require.NotNil(t, second.CustomerID)
	assert.Equal(t, *first.CustomerID, *second.CustomerID)
}

func TestSubmitEmptyCart(t *testing.T) {
	uc := &usecase.CheckoutUC{Orders: memory.NewOrderRepo(), Customers: memory.NewCustomerRepo()}
	_, err := uc.Submit(context.Background(), nil, usecase.CustomerDetails{Email: "a@b.c", Name: "A"})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestSubmitMissingDetails(t *testing.T) {
	uc := &usecase.CheckoutUC{Orders: memory.NewOrderRepo(), Customers: memory.NewCustomerRepo()}
	_, err := uc.Submit(context.Background(), snapshot(), usecase.CustomerDetails{Name: "A"})
	assert.Error(t, err)
	_, err = uc.Submit(context.Background(), snapshot(), usecase.CustomerDetails{Email: "a@b.c"})
	assert.Error(t, err)
}

func TestSubmitRepoFailure(t *testing.T) {
	orders := memory.NewOrderRepo()
	orders.SaveErr = errors.New("db down")
	uc := &usecase.CheckoutUC{Orders: orders, Customers: memory.NewCustomerRepo()}
	_, err := uc.Submit(context.Background(), snapshot(), usecase.CustomerDetails{Email: "a@b.c", Name: "A"})
	assert.Error(t, err)
}
