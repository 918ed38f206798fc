package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AryanYadav09/Ecommerce/middleware"
	"github.com/AryanYadav09/Ecommerce/services"
)

type ProductController struct {
	productService services.ProductService
	userService    services.UserService
	logger         *zap.Logger
}

func NewProductController(productService services.ProductService, userService services.UserService, logger *zap.Logger) *ProductController {
	return &ProductController{
		productService: productService,
		userService:    userService,
		logger:         logger,
	}
}

// AddProduct creates a catalog entry (admin only).
func (pc *ProductController) AddProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	product, serr := pc.productService.AddProduct(c.Request.Context(), &req)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Added", "product": product})
}

// ListProducts returns the full catalog.
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, serr := pc.productService.ListProducts(c.Request.Context())
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

type productIDRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// GetProduct returns one product by ID.
func (pc *ProductController) GetProduct(c *gin.Context) {
	var req productIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	id, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID format"})
		return
	}

	product, serr := pc.productService.GetProduct(c.Request.Context(), id)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// RemoveProduct deletes a catalog entry (admin only).
func (pc *ProductController) RemoveProduct(c *gin.Context) {
	var req productIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	id, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID format"})
		return
	}

	if serr := pc.productService.RemoveProduct(c.Request.Context(), id); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Removed"})
}

// GetReviews returns a product's reviews and aggregate rating.
func (pc *ProductController) GetReviews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID format"})
		return
	}

	reviews, serr := pc.productService.GetReviews(c.Request.Context(), id)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"reviews":        reviews.Reviews,
		"average_rating": reviews.AverageRating,
		"total_reviews":  reviews.TotalReviews,
	})
}

// AddReview records the caller's review, replacing any earlier one.
func (pc *ProductController) AddReview(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req services.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	profile, _, serr := pc.userService.GetProfile(c.Request.Context(), userID)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	reviews, serr := pc.productService.AddReview(c.Request.Context(), userID, profile.Name, &req)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Review Added",
		"reviews":        reviews.Reviews,
		"average_rating": reviews.AverageRating,
		"total_reviews":  reviews.TotalReviews,
	})
}
