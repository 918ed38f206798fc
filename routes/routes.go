package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AryanYadav09/Ecommerce/controllers"
	"github.com/AryanYadav09/Ecommerce/middleware"
	"github.com/AryanYadav09/Ecommerce/services"
)

// RegisterOrderRoutes mounts checkout, verification and fulfillment endpoints.
func RegisterOrderRoutes(r *gin.Engine, oc *controllers.OrderController, tokens *services.TokenService) {
	orderRoutes := r.Group("/api/order")
	orderRoutes.POST("/webhook", oc.StripeWebhook)

	userRoutes := orderRoutes.Group("")
	userRoutes.Use(middleware.AuthUser(tokens))
	userRoutes.POST("/place", oc.PlaceOrder)
	userRoutes.POST("/stripe", oc.PlaceOrderStripe)
	userRoutes.POST("/verifyStripe", oc.VerifyStripe)
	userRoutes.POST("/razorpay", oc.PlaceOrderRazorpay)
	userRoutes.POST("/verifyRazorpay", oc.VerifyRazorpay)
	userRoutes.POST("/userorders", oc.UserOrders)

	adminRoutes := orderRoutes.Group("")
	adminRoutes.Use(middleware.AuthAdmin(tokens))
	adminRoutes.POST("/list", oc.AllOrders)
	adminRoutes.POST("/status", oc.UpdateStatus)
}

// RegisterCartRoutes mounts the per-user cart endpoints.
func RegisterCartRoutes(r *gin.Engine, cc *controllers.CartController, tokens *services.TokenService) {
	cartRoutes := r.Group("/api/cart")
	cartRoutes.Use(middleware.AuthUser(tokens))
	cartRoutes.POST("/add", cc.AddToCart)
	cartRoutes.POST("/update", cc.UpdateCart)
	cartRoutes.POST("/get", cc.GetCart)
}

// RegisterProductRoutes mounts catalog and review endpoints.
func RegisterProductRoutes(r *gin.Engine, pc *controllers.ProductController, tokens *services.TokenService) {
	productRoutes := r.Group("/api/product")
	productRoutes.GET("/list", pc.ListProducts)
	productRoutes.POST("/single", pc.GetProduct)
	productRoutes.GET("/reviews/:productId", pc.GetReviews)
	productRoutes.POST("/reviews/add", middleware.AuthUser(tokens), pc.AddReview)

	adminRoutes := productRoutes.Group("")
	adminRoutes.Use(middleware.AuthAdmin(tokens))
	adminRoutes.POST("/add", pc.AddProduct)
	adminRoutes.POST("/remove", pc.RemoveProduct)
}

// RegisterUserRoutes mounts signup, login and profile endpoints. The auth
// endpoints sit behind a per-IP rate limiter.
func RegisterUserRoutes(r *gin.Engine, uc *controllers.UserController, tokens *services.TokenService, limiter *middleware.RateLimiter) {
	userRoutes := r.Group("/api/user")

	authRoutes := userRoutes.Group("")
	authRoutes.Use(limiter.Middleware())
	authRoutes.POST("/register/send-otp", uc.SendRegisterOTP)
	authRoutes.POST("/register/verify-otp", uc.VerifyRegisterOTP)
	authRoutes.POST("/login", uc.Login)
	authRoutes.POST("/admin", uc.AdminLogin)

	userRoutes.POST("/admin/verify", middleware.AuthAdmin(tokens), uc.VerifyAdmin)

	profileRoutes := userRoutes.Group("")
	profileRoutes.Use(middleware.AuthUser(tokens))
	profileRoutes.GET("/profile", uc.Profile)
	profileRoutes.GET("/wishlist", uc.Wishlist)
	profileRoutes.POST("/wishlist/toggle", uc.ToggleWishlist)
}
