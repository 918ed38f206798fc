package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AryanYadav09/Ecommerce/models"
	"github.com/AryanYadav09/Ecommerce/repository"
)

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       int64    `json:"price" binding:"required,min=1"`
	Images      []string `json:"images"`
	Category    string   `json:"category" binding:"required"`
	SubCategory string   `json:"sub_category"`
	Sizes       []string `json:"sizes" binding:"required,min=1"`
	Bestseller  bool     `json:"bestseller"`
}

type AddReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment"`
}

// ProductReviews bundles a product's reviews with its denormalized stats.
type ProductReviews struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
	TotalReviews  int             `json:"total_reviews"`
}

type ProductService interface {
	AddProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, *ServiceError)
	ListProducts(ctx context.Context) ([]models.Product, *ServiceError)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError)
	RemoveProduct(ctx context.Context, id uuid.UUID) *ServiceError
	GetReviews(ctx context.Context, productID uuid.UUID) (*ProductReviews, *ServiceError)
	AddReview(ctx context.Context, userID, userName string, req *AddReviewRequest) (*ProductReviews, *ServiceError)
}

type productServiceImpl struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewProductService(products repository.ProductRepository, logger *zap.Logger) ProductService {
	return &productServiceImpl{products: products, logger: logger}
}

func (s *productServiceImpl) AddProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, *ServiceError) {
	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Sizes:       req.Sizes,
		Bestseller:  req.Bestseller,
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.String("name", req.Name), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to add product"}
	}
	return product, nil
}

func (s *productServiceImpl) ListProducts(ctx context.Context) ([]models.Product, *ServiceError) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch products"}
	}
	return products, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
	}
	return product, nil
}

func (s *productServiceImpl) RemoveProduct(ctx context.Context, id uuid.UUID) *ServiceError {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return &ServiceError{StatusCode: 404, Message: "Product not found"}
	}
	if err := s.products.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", zap.String("product_id", id.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to remove product"}
	}
	return nil
}

func (s *productServiceImpl) GetReviews(ctx context.Context, productID uuid.UUID) (*ProductReviews, *ServiceError) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
	}

	reviews, err := s.products.FindReviews(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to fetch reviews", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch reviews"}
	}

	return &ProductReviews{
		Reviews:       reviews,
		AverageRating: product.AverageRating,
		TotalReviews:  product.TotalReviews,
	}, nil
}

// AddReview upserts the caller's review and recomputes the product's rating
// stats from the full review set.
func (s *productServiceImpl) AddReview(ctx context.Context, userID, userName string, req *AddReviewRequest) (*ProductReviews, *ServiceError) {
	userUUID, serr := parseUserID(userID)
	if serr != nil {
		return nil, serr
	}

	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
	}

	review := &models.Review{
		ProductID: req.ProductID,
		UserID:    userUUID,
		UserName:  userName,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := s.products.UpsertReview(ctx, review); err != nil {
		s.logger.Error("Failed to save review", zap.String("product_id", req.ProductID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save review"}
	}

	reviews, err := s.products.FindReviews(ctx, req.ProductID)
	if err != nil {
		s.logger.Error("Failed to fetch reviews", zap.String("product_id", req.ProductID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch reviews"}
	}

	avg, total := models.ReviewStats(reviews)
	if err := s.products.UpdateReviewStats(ctx, req.ProductID, avg, total); err != nil {
		s.logger.Error("Failed to update review stats", zap.String("product_id", req.ProductID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save review"}
	}

	return &ProductReviews{Reviews: reviews, AverageRating: avg, TotalReviews: total}, nil
}
