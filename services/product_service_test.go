package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/AryanYadav09/Ecommerce/models"
)

func TestAddReview(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	productID := uuid.New()

	t.Run("UpsertAndRecomputeStats", func(t *testing.T) {
		products := new(MockProductRepository)
		svc := NewProductService(products, zap.NewNop())

		products.On("FindByID", ctx, productID).Return(&models.Product{ID: productID}, nil)
		products.On("UpsertReview", ctx, mock.AnythingOfType("*models.Review")).Return(nil)
		products.On("FindReviews", ctx, productID).Return([]models.Review{
			{Rating: 5}, {Rating: 4},
		}, nil)
		products.On("UpdateReviewStats", ctx, productID, 4.5, 2).Return(nil)

		result, serr := svc.AddReview(ctx, userID, "Asha", &AddReviewRequest{
			ProductID: productID,
			Rating:    5,
			Comment:   "Great fit",
		})

		assert.Nil(t, serr)
		assert.Equal(t, 4.5, result.AverageRating)
		assert.Equal(t, 2, result.TotalReviews)
		products.AssertCalled(t, "UpdateReviewStats", ctx, productID, 4.5, 2)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		products := new(MockProductRepository)
		svc := NewProductService(products, zap.NewNop())

		products.On("FindByID", ctx, productID).Return(nil, errors.New("record not found"))

		_, serr := svc.AddReview(ctx, userID, "Asha", &AddReviewRequest{ProductID: productID, Rating: 4})

		assert.Equal(t, 404, serr.StatusCode)
		products.AssertNotCalled(t, "UpsertReview", mock.Anything, mock.Anything)
	})

	t.Run("InvalidUserID", func(t *testing.T) {
		products := new(MockProductRepository)
		svc := NewProductService(products, zap.NewNop())

		_, serr := svc.AddReview(ctx, "not-a-uuid", "Asha", &AddReviewRequest{ProductID: productID, Rating: 4})

		assert.Equal(t, 400, serr.StatusCode)
	})
}

func TestGetReviews(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("ReturnsDenormalizedStats", func(t *testing.T) {
		products := new(MockProductRepository)
		svc := NewProductService(products, zap.NewNop())

		products.On("FindByID", ctx, productID).Return(&models.Product{
			ID:            productID,
			AverageRating: 4.2,
			TotalReviews:  5,
		}, nil)
		products.On("FindReviews", ctx, productID).Return([]models.Review{{Rating: 4}}, nil)

		result, serr := svc.GetReviews(ctx, productID)

		assert.Nil(t, serr)
		assert.Equal(t, 4.2, result.AverageRating)
		assert.Equal(t, 5, result.TotalReviews)
		assert.Len(t, result.Reviews, 1)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		products := new(MockProductRepository)
		svc := NewProductService(products, zap.NewNop())

		products.On("FindByID", ctx, productID).Return(nil, errors.New("record not found"))

		_, serr := svc.GetReviews(ctx, productID)

		assert.Equal(t, 404, serr.StatusCode)
	})
}

func TestRemoveProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		products := new(MockProductRepository)
		svc := NewProductService(products, zap.NewNop())

		products.On("FindByID", ctx, productID).Return(&models.Product{ID: productID}, nil)
		products.On("Delete", ctx, productID).Return(nil)

		serr := svc.RemoveProduct(ctx, productID)
		assert.Nil(t, serr)
	})

	t.Run("NotFound", func(t *testing.T) {
		products := new(MockProductRepository)
		svc := NewProductService(products, zap.NewNop())

		products.On("FindByID", ctx, productID).Return(nil, errors.New("record not found"))

		serr := svc.RemoveProduct(ctx, productID)
		assert.Equal(t, 404, serr.StatusCode)
		products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
