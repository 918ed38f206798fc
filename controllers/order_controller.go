package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/AryanYadav09/Ecommerce/middleware"
	"github.com/AryanYadav09/Ecommerce/services"
)

type OrderController struct {
	orderService services.OrderService
	stripeSvc    *services.StripeService
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderService, stripeSvc *services.StripeService, logger *zap.Logger) *OrderController {
	return &OrderController{
		orderService: orderService,
		stripeSvc:    stripeSvc,
		logger:       logger,
	}
}

// PlaceOrder handles cash-on-delivery checkout.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	if _, serr := oc.orderService.PlaceOrderCOD(c.Request.Context(), userID, &req); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order Placed Successfully"})
}

// PlaceOrderStripe starts a hosted checkout and returns its redirect URL.
func (oc *OrderController) PlaceOrderStripe(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	origin := c.GetHeader("Origin")
	if origin == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Origin header is required"})
		return
	}

	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	_, sessionURL, serr := oc.orderService.PlaceOrderStripe(c.Request.Context(), userID, origin, &req)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session_url": sessionURL})
}

type verifyStripeRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Success string `json:"success" binding:"required"`
}

// VerifyStripe applies the checkout redirect outcome for an order.
func (oc *OrderController) VerifyStripe(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req verifyStripeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID format"})
		return
	}

	success := req.Success == "true"
	if serr := oc.orderService.VerifyStripe(c.Request.Context(), userID, orderID, success); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	if success {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment Successful"})
	} else {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Payment cancelled, order removed"})
	}
}

// PlaceOrderRazorpay starts a gateway order and returns it for the client
// checkout widget.
func (oc *OrderController) PlaceOrderRazorpay(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	_, gatewayOrder, serr := oc.orderService.PlaceOrderRazorpay(c.Request.Context(), userID, &req)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": gatewayOrder})
}

type verifyRazorpayRequest struct {
	RazorpayOrderID string `json:"razorpay_order_id" binding:"required"`
}

// VerifyRazorpay settles the local order when the gateway reports "paid".
func (oc *OrderController) VerifyRazorpay(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req verifyRazorpayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing gateway order id"})
		return
	}

	if serr := oc.orderService.VerifyRazorpay(c.Request.Context(), userID, req.RazorpayOrderID); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment Successful"})
}

// UserOrders returns the authenticated user's orders.
func (oc *OrderController) UserOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	orders, serr := oc.orderService.GetUserOrders(c.Request.Context(), userID)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// AllOrders returns every order for the admin panel.
func (oc *OrderController) AllOrders(c *gin.Context) {
	orders, serr := oc.orderService.GetAllOrders(c.Request.Context())
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

type updateStatusRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// UpdateStatus advances an order's fulfillment status (admin only).
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID format"})
		return
	}

	if serr := oc.orderService.UpdateStatus(c.Request.Context(), orderID, req.Status); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status Updated"})
}

// StripeWebhook receives signature-verified gateway events and settles
// orders on completed checkouts.
func (oc *OrderController) StripeWebhook(c *gin.Context) {
	event, err := oc.stripeSvc.ParseWebhook(c.Request)
	if err != nil {
		oc.logger.Warn("Stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			oc.logger.Error("Failed to unmarshal checkout session", zap.Error(err))
			break
		}

		orderID, err := uuid.Parse(sess.Metadata["order_id"])
		if err != nil {
			oc.logger.Warn("Missing order metadata in checkout session", zap.String("session_id", sess.ID))
			break
		}

		if serr := oc.orderService.SettleOrder(c.Request.Context(), orderID); serr != nil {
			oc.logger.Error("Failed to settle order from webhook",
				zap.String("order_id", orderID.String()),
				zap.String("message", serr.Message),
			)
		}
	default:
		oc.logger.Info("Unhandled webhook event type", zap.String("event_type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
