package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string         `json:"name" gorm:"not null"`
	Description   string         `json:"description" gorm:"not null"`
	Price         int64          `json:"price" gorm:"not null"`
	Images        pq.StringArray `json:"images" gorm:"type:text[]"`
	Category      string         `json:"category" gorm:"index"`
	SubCategory   string         `json:"sub_category"`
	Sizes         pq.StringArray `json:"sizes" gorm:"type:text[]"`
	Bestseller    bool           `json:"bestseller"`
	Reviews       []Review       `json:"reviews,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	AverageRating float64        `json:"average_rating" gorm:"default:0"`
	TotalReviews  int            `json:"total_reviews" gorm:"default:0"`
	CreatedAt     time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// Review is one user's rating of a product. A user has at most one review per
// product; submitting again replaces the previous one.
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index:idx_review_product_user,unique"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_review_product_user,unique"`
	UserName  string    `json:"user_name" gorm:"not null"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// ReviewStats recomputes the denormalized rating columns from a review set.
// The average is rounded to one decimal.
func ReviewStats(reviews []Review) (avg float64, total int) {
	total = len(reviews)
	if total == 0 {
		return 0, 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	avg = math.Round(float64(sum)/float64(total)*10) / 10
	return avg, total
}
