package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AryanYadav09/Ecommerce/middleware"
	"github.com/AryanYadav09/Ecommerce/services"
)

type UserController struct {
	userService services.UserService
	logger      *zap.Logger
}

func NewUserController(userService services.UserService, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SendRegisterOTP begins signup by mailing a one-time code.
func (uc *UserController) SendRegisterOTP(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	if serr := uc.userService.SendRegisterOTP(c.Request.Context(), req.Name, req.Email, req.Password); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent to your email"})
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// VerifyRegisterOTP completes signup and returns a session token.
func (uc *UserController) VerifyRegisterOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	token, serr := uc.userService.VerifyRegisterOTP(c.Request.Context(), req.Email, req.OTP)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a registered user.
func (uc *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	token, serr := uc.userService.Login(c.Request.Context(), req.Email, req.Password)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// AdminLogin authenticates against the configured admin credentials.
func (uc *UserController) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	token, serr := uc.userService.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// VerifyAdmin confirms a valid admin token; the auth middleware does the work.
func (uc *UserController) VerifyAdmin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Profile returns the caller's account details and wishlist.
func (uc *UserController) Profile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	profile, wishlist, serr := uc.userService.GetProfile(c.Request.Context(), userID)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile, "wishlist": wishlist})
}

// Wishlist returns the caller's wishlisted product IDs.
func (uc *UserController) Wishlist(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	wishlist, serr := uc.userService.GetWishlist(c.Request.Context(), userID)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "wishlist": wishlist})
}

type toggleWishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// ToggleWishlist adds or removes a product from the caller's wishlist.
func (uc *UserController) ToggleWishlist(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req toggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	wishlist, wishlisted, serr := uc.userService.ToggleWishlist(c.Request.Context(), userID, req.ProductID)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "wishlist": wishlist, "wishlisted": wishlisted})
}
