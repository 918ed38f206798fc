package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/AryanYadav09/Ecommerce/models"
	"github.com/AryanYadav09/Ecommerce/repository"
)

// CartService manages the per-user cart, a two-level sparse table of
// product id -> size -> quantity.
type CartService interface {
	AddToCart(ctx context.Context, userID, itemID, size string) (*models.Cart, *ServiceError)
	UpdateCart(ctx context.Context, userID, itemID, size string, quantity int) (*models.Cart, *ServiceError)
	GetCart(ctx context.Context, userID string) (*models.Cart, *ServiceError)
}

type cartServiceImpl struct {
	carts  repository.CartRepository
	logger *zap.Logger
}

func NewCartService(carts repository.CartRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, logger: logger}
}

// load returns the user's cart, creating an empty one when none is stored.
func (s *cartServiceImpl) load(ctx context.Context, userID string) (*models.Cart, *ServiceError) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: models.CartData{}}
	}
	if cart.Items == nil {
		cart.Items = models.CartData{}
	}
	return cart, nil
}

func (s *cartServiceImpl) AddToCart(ctx context.Context, userID, itemID, size string) (*models.Cart, *ServiceError) {
	if itemID == "" || size == "" {
		return nil, &ServiceError{StatusCode: 400, Message: "Item id and size are required"}
	}

	cart, serr := s.load(ctx, userID)
	if serr != nil {
		return nil, serr
	}

	cart.Items.Add(itemID, size)

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Unable to add to cart"}
	}
	return cart, nil
}

func (s *cartServiceImpl) UpdateCart(ctx context.Context, userID, itemID, size string, quantity int) (*models.Cart, *ServiceError) {
	if itemID == "" || size == "" {
		return nil, &ServiceError{StatusCode: 400, Message: "Item id and size are required"}
	}
	if quantity < 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "Quantity must be non-negative"}
	}

	cart, serr := s.load(ctx, userID)
	if serr != nil {
		return nil, serr
	}

	cart.Items.Set(itemID, size, quantity)

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Unable to update cart"}
	}
	return cart, nil
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) (*models.Cart, *ServiceError) {
	return s.load(ctx, userID)
}
