package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AryanYadav09/Ecommerce/middleware"
	"github.com/AryanYadav09/Ecommerce/services"
)

type CartController struct {
	cartService services.CartService
	logger      *zap.Logger
}

func NewCartController(cartService services.CartService, logger *zap.Logger) *CartController {
	return &CartController{cartService: cartService, logger: logger}
}

type addToCartRequest struct {
	ItemID string `json:"itemId" binding:"required"`
	Size   string `json:"size" binding:"required"`
}

// AddToCart increments the quantity for an item/size pair.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	if _, serr := cc.cartService.AddToCart(c.Request.Context(), userID, req.ItemID, req.Size); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Added To Cart"})
}

type updateCartRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity"`
}

// UpdateCart sets the quantity for an item/size pair; zero removes it.
func (cc *CartController) UpdateCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	if _, serr := cc.cartService.UpdateCart(c.Request.Context(), userID, req.ItemID, req.Size, req.Quantity); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart Updated"})
}

// GetCart returns the user's cart contents.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	cart, serr := cc.cartService.GetCart(c.Request.Context(), userID)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cartData": cart.Items})
}
