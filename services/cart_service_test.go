package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/AryanYadav09/Ecommerce/models"
)

func TestAddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("NewCart", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewCartService(carts, zap.NewNop())

		carts.On("GetCart", ctx, "user-1").Return(nil, nil)
		carts.On("SaveCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil)

		cart, serr := svc.AddToCart(ctx, "user-1", "prod-1", "M")

		assert.Nil(t, serr)
		assert.Equal(t, 1, cart.Items["prod-1"]["M"])
	})

	t.Run("IncrementsExisting", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewCartService(carts, zap.NewNop())

		existing := &models.Cart{
			UserID: "user-1",
			Items:  models.CartData{"prod-1": {"M": 2}},
		}
		carts.On("GetCart", ctx, "user-1").Return(existing, nil)
		carts.On("SaveCart", ctx, existing).Return(nil)

		cart, serr := svc.AddToCart(ctx, "user-1", "prod-1", "M")

		assert.Nil(t, serr)
		assert.Equal(t, 3, cart.Items["prod-1"]["M"])
	})

	t.Run("SizesTrackedIndependently", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewCartService(carts, zap.NewNop())

		existing := &models.Cart{
			UserID: "user-1",
			Items:  models.CartData{"prod-1": {"M": 2}},
		}
		carts.On("GetCart", ctx, "user-1").Return(existing, nil)
		carts.On("SaveCart", ctx, existing).Return(nil)

		cart, serr := svc.AddToCart(ctx, "user-1", "prod-1", "L")

		assert.Nil(t, serr)
		assert.Equal(t, 2, cart.Items["prod-1"]["M"])
		assert.Equal(t, 1, cart.Items["prod-1"]["L"])
	})

	t.Run("MissingFields", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewCartService(carts, zap.NewNop())

		_, serr := svc.AddToCart(ctx, "user-1", "", "M")
		assert.Equal(t, 400, serr.StatusCode)

		_, serr = svc.AddToCart(ctx, "user-1", "prod-1", "")
		assert.Equal(t, 400, serr.StatusCode)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewCartService(carts, zap.NewNop())

		carts.On("GetCart", ctx, "user-1").Return(nil, errors.New("redis down"))

		_, serr := svc.AddToCart(ctx, "user-1", "prod-1", "M")
		assert.Equal(t, 500, serr.StatusCode)
	})
}

func TestUpdateCart(t *testing.T) {
	ctx := context.Background()

	t.Run("SetsQuantity", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewCartService(carts, zap.NewNop())

		existing := &models.Cart{
			UserID: "user-1",
			Items:  models.CartData{"prod-1": {"M": 2}},
		}
		carts.On("GetCart", ctx, "user-1").Return(existing, nil)
		carts.On("SaveCart", ctx, existing).Return(nil)

		cart, serr := svc.UpdateCart(ctx, "user-1", "prod-1", "M", 5)

		assert.Nil(t, serr)
		assert.Equal(t, 5, cart.Items["prod-1"]["M"])
	})

	t.Run("ZeroRemovesEntry", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewCartService(carts, zap.NewNop())

		existing := &models.Cart{
			UserID: "user-1",
			Items:  models.CartData{"prod-1": {"M": 2, "L": 1}},
		}
		carts.On("GetCart", ctx, "user-1").Return(existing, nil)
		carts.On("SaveCart", ctx, existing).Return(nil)

		cart, serr := svc.UpdateCart(ctx, "user-1", "prod-1", "M", 0)

		assert.Nil(t, serr)
		_, ok := cart.Items["prod-1"]["M"]
		assert.False(t, ok)
		assert.Equal(t, 1, cart.Items["prod-1"]["L"])
	})

	t.Run("LastSizeRemovesItem", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewCartService(carts, zap.NewNop())

		existing := &models.Cart{
			UserID: "user-1",
			Items:  models.CartData{"prod-1": {"M": 2}},
		}
		carts.On("GetCart", ctx, "user-1").Return(existing, nil)
		carts.On("SaveCart", ctx, existing).Return(nil)

		cart, serr := svc.UpdateCart(ctx, "user-1", "prod-1", "M", 0)

		assert.Nil(t, serr)
		_, ok := cart.Items["prod-1"]
		assert.False(t, ok)
	})

	t.Run("NegativeQuantityRejected", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewCartService(carts, zap.NewNop())

		_, serr := svc.UpdateCart(ctx, "user-1", "prod-1", "M", -1)
		assert.Equal(t, 400, serr.StatusCode)
	})
}

func TestGetCart(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyCartForNewUser", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewCartService(carts, zap.NewNop())

		carts.On("GetCart", ctx, "user-1").Return(nil, nil)

		cart, serr := svc.GetCart(ctx, "user-1")

		assert.Nil(t, serr)
		assert.NotNil(t, cart.Items)
		assert.Empty(t, cart.Items)
	})
}
