package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AryanYadav09/Ecommerce/models"
)

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	UpsertReview(ctx context.Context, review *models.Review) error
	UpdateReviewStats(ctx context.Context, productID uuid.UUID, avg float64, total int) error
}

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// FindReviews returns a product's reviews, newest first.
func (r *GormProductRepository) FindReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// UpsertReview replaces any previous review by the same user on the same
// product before inserting the new one.
func (r *GormProductRepository) UpsertReview(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ? AND user_id = ?", review.ProductID, review.UserID).
			Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Create(review).Error
	})
}

func (r *GormProductRepository) UpdateReviewStats(ctx context.Context, productID uuid.UUID, avg float64, total int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"average_rating": avg,
			"total_reviews":  total,
		}).Error
}
