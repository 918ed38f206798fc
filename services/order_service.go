package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	aws_pkg "github.com/AryanYadav09/Ecommerce/pkg/aws"

	"github.com/AryanYadav09/Ecommerce/models"
	"github.com/AryanYadav09/Ecommerce/repository"
)

// PlaceOrderItem is one requested line of a checkout. Prices are never taken
// from the client; the service captures them from the catalog.
type PlaceOrderItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type PlaceOrderRequest struct {
	Items   []PlaceOrderItem `json:"items" binding:"required,dive"`
	Amount  int64            `json:"amount"`
	Address models.Address   `json:"address" binding:"required"`
}

// OrderService owns order creation, payment-method branching, payment
// verification and fulfillment progression.
type OrderService interface {
	PlaceOrderCOD(ctx context.Context, userID string, req *PlaceOrderRequest) (*models.Order, *ServiceError)
	PlaceOrderStripe(ctx context.Context, userID, origin string, req *PlaceOrderRequest) (*models.Order, string, *ServiceError)
	VerifyStripe(ctx context.Context, userID string, orderID uuid.UUID, success bool) *ServiceError
	PlaceOrderRazorpay(ctx context.Context, userID string, req *PlaceOrderRequest) (*models.Order, *GatewayOrder, *ServiceError)
	VerifyRazorpay(ctx context.Context, userID, gatewayOrderID string) *ServiceError
	SettleOrder(ctx context.Context, orderID uuid.UUID) *ServiceError
	GetUserOrders(ctx context.Context, userID string) ([]models.Order, *ServiceError)
	GetAllOrders(ctx context.Context) ([]models.Order, *ServiceError)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) *ServiceError
}

type orderServiceImpl struct {
	orders      repository.OrderRepository
	products    repository.ProductRepository
	carts       repository.CartRepository
	checkout    CheckoutSessionCreator
	gateway     GatewayOrderAPI
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	deliveryFee int64
	currency    string
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService. The payment collaborators and
// the SNS publisher are injected so tests can substitute doubles; snsClient
// may be nil when event publishing is disabled.
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	carts repository.CartRepository,
	checkout CheckoutSessionCreator,
	gateway GatewayOrderAPI,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	deliveryFee int64,
	currency string,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orders:      orders,
		products:    products,
		carts:       carts,
		checkout:    checkout,
		gateway:     gateway,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		deliveryFee: deliveryFee,
		currency:    currency,
		logger:      logger,
	}
}

// buildOrder captures catalog prices for the requested items and assembles a
// pending order. The client-submitted amount, when present, must match the
// server-side total; a disagreement is rejected rather than trusted.
func (s *orderServiceImpl) buildOrder(ctx context.Context, userID uuid.UUID, method models.PaymentMethod, req *PlaceOrderRequest) (*models.Order, *ServiceError) {
	if len(req.Items) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "At least one item is required"}
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	var total int64
	for _, item := range req.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, &ServiceError{StatusCode: 404, Message: fmt.Sprintf("Product %s not found", item.ProductID)}
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		total += product.Price * int64(item.Quantity)
	}
	total += s.deliveryFee

	if req.Amount != 0 && req.Amount != total {
		return nil, &ServiceError{StatusCode: 400, Message: "Order amount does not match item total"}
	}

	return &models.Order{
		UserID:        userID,
		Items:         items,
		Amount:        total,
		Address:       req.Address,
		PaymentMethod: method,
		PaymentStatus: models.PaymentPending,
		Status:        models.StatusPlaced,
	}, nil
}

// PlaceOrderCOD persists a cash-on-delivery order. The payment dimension is
// terminal at pending; settlement happens physically at delivery.
func (s *orderServiceImpl) PlaceOrderCOD(ctx context.Context, userID string, req *PlaceOrderRequest) (*models.Order, *ServiceError) {
	userUUID, serr := parseUserID(userID)
	if serr != nil {
		return nil, serr
	}

	order, serr := s.buildOrder(ctx, userUUID, models.PaymentMethodCOD, req)
	if serr != nil {
		return nil, serr
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to persist COD order", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to place order"}
	}

	s.clearCart(ctx, userID)
	s.publishEvent(ctx, "order.placed", order)
	return order, nil
}

// PlaceOrderStripe persists a pending order and requests a hosted checkout
// session whose callback URLs embed the order and user ids.
func (s *orderServiceImpl) PlaceOrderStripe(ctx context.Context, userID, origin string, req *PlaceOrderRequest) (*models.Order, string, *ServiceError) {
	userUUID, serr := parseUserID(userID)
	if serr != nil {
		return nil, "", serr
	}

	order, serr := s.buildOrder(ctx, userUUID, models.PaymentMethodStripe, req)
	if serr != nil {
		return nil, "", serr
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to persist Stripe order", zap.String("user_id", userID), zap.Error(err))
		return nil, "", &ServiceError{StatusCode: 500, Message: "Failed to place order"}
	}

	lineItems := make([]CheckoutLineItem, 0, len(order.Items)+1)
	for _, item := range order.Items {
		lineItems = append(lineItems, CheckoutLineItem{
			Name:     item.Name,
			Amount:   item.Price,
			Quantity: int64(item.Quantity),
		})
	}
	lineItems = append(lineItems, CheckoutLineItem{
		Name:     "Delivery Charges",
		Amount:   s.deliveryFee,
		Quantity: 1,
	})

	sess, err := s.checkout.CreateCheckoutSession(ctx, CheckoutParams{
		Currency:   s.currency,
		LineItems:  lineItems,
		SuccessURL: fmt.Sprintf("%s/verify?success=true&orderId=%s&userId=%s", origin, order.ID, userID),
		CancelURL:  fmt.Sprintf("%s/verify?success=false&orderId=%s&userId=%s", origin, order.ID, userID),
		Metadata: map[string]string{
			"order_id": order.ID.String(),
			"user_id":  userID,
		},
	})
	if err != nil {
		s.logger.Error("Failed to create checkout session",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return nil, "", &ServiceError{StatusCode: 502, Message: "Failed to create payment session"}
	}

	return order, sess.URL, nil
}

// VerifyStripe applies the redirect outcome: success settles the order and
// clears the cart, anything else hard-deletes the order unless payment has
// already settled. Repeated success calls are idempotent.
func (s *orderServiceImpl) VerifyStripe(ctx context.Context, userID string, orderID uuid.UUID, success bool) *ServiceError {
	userUUID, serr := parseUserID(userID)
	if serr != nil {
		return serr
	}

	order, err := s.orders.FindByIDAndUserID(ctx, orderID, userUUID)
	if err != nil {
		return &ServiceError{StatusCode: 404, Message: "Order not found"}
	}

	if !success {
		// A settled order (e.g. via webhook) is never deleted on the
		// strength of a client-supplied cancel flag.
		if order.Settled() {
			return nil
		}
		if err := s.orders.Delete(ctx, order.ID); err != nil {
			s.logger.Error("Failed to delete unpaid order", zap.String("order_id", order.ID.String()), zap.Error(err))
			return &ServiceError{StatusCode: 500, Message: "Failed to cancel order"}
		}
		return nil
	}

	return s.settle(ctx, order)
}

// PlaceOrderRazorpay persists a pending order and creates a gateway order
// whose receipt is the local order id.
func (s *orderServiceImpl) PlaceOrderRazorpay(ctx context.Context, userID string, req *PlaceOrderRequest) (*models.Order, *GatewayOrder, *ServiceError) {
	userUUID, serr := parseUserID(userID)
	if serr != nil {
		return nil, nil, serr
	}

	order, serr := s.buildOrder(ctx, userUUID, models.PaymentMethodRazorpay, req)
	if serr != nil {
		return nil, nil, serr
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to persist Razorpay order", zap.String("user_id", userID), zap.Error(err))
		return nil, nil, &ServiceError{StatusCode: 500, Message: "Failed to place order"}
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, order.Amount, s.currency, order.ID.String())
	if err != nil {
		s.logger.Error("Failed to create gateway order",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return nil, nil, &ServiceError{StatusCode: 502, Message: "Failed to create payment order"}
	}

	order.GatewayOrderID = gatewayOrder.ID
	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("Failed to store gateway order id",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return nil, nil, &ServiceError{StatusCode: 500, Message: "Failed to place order"}
	}

	return order, gatewayOrder, nil
}

// VerifyRazorpay fetches the gateway order and settles the local one when the
// gateway reports "paid". A failed payment leaves the order row in place so
// the client may retry against the same gateway order.
func (s *orderServiceImpl) VerifyRazorpay(ctx context.Context, userID, gatewayOrderID string) *ServiceError {
	if gatewayOrderID == "" {
		return &ServiceError{StatusCode: 400, Message: "Missing gateway order id"}
	}
	userUUID, serr := parseUserID(userID)
	if serr != nil {
		return serr
	}

	gatewayOrder, err := s.gateway.FetchOrder(ctx, gatewayOrderID)
	if err != nil {
		s.logger.Error("Failed to fetch gateway order", zap.String("gateway_order_id", gatewayOrderID), zap.Error(err))
		return &ServiceError{StatusCode: 502, Message: "Failed to verify payment"}
	}

	if gatewayOrder.Status != "paid" {
		return &ServiceError{StatusCode: 400, Message: "Payment failed"}
	}

	order, serr := s.findVerifiedOrder(ctx, gatewayOrder, userUUID)
	if serr != nil {
		return serr
	}

	return s.settle(ctx, order)
}

// findVerifiedOrder correlates a gateway order back to a local one, first via
// the receipt (which carries the local order id) and otherwise via the stored
// gateway order id.
func (s *orderServiceImpl) findVerifiedOrder(ctx context.Context, gatewayOrder *GatewayOrder, userUUID uuid.UUID) (*models.Order, *ServiceError) {
	if localID, err := uuid.Parse(gatewayOrder.Receipt); err == nil {
		if order, err := s.orders.FindByIDAndUserID(ctx, localID, userUUID); err == nil {
			return order, nil
		}
	}

	order, err := s.orders.FindByGatewayOrderID(ctx, gatewayOrder.ID)
	if err != nil || order.UserID != userUUID {
		return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
	}
	return order, nil
}

// SettleOrder marks an order paid without an ownership check. It backs the
// Stripe webhook path, where the caller is the verified gateway rather than
// a user.
func (s *orderServiceImpl) SettleOrder(ctx context.Context, orderID uuid.UUID) *ServiceError {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return &ServiceError{StatusCode: 404, Message: "Order not found"}
	}
	return s.settle(ctx, order)
}

// settle transitions payment to settled and clears the owner's cart. Already
// settled orders are left untouched so duplicate confirmations have no
// further side effects.
func (s *orderServiceImpl) settle(ctx context.Context, order *models.Order) *ServiceError {
	if order.Settled() {
		return nil
	}

	order.PaymentStatus = models.PaymentSettled
	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("Failed to settle order", zap.String("order_id", order.ID.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to confirm payment"}
	}

	s.clearCart(ctx, order.UserID.String())
	s.publishEvent(ctx, "order.payment_settled", order)
	return nil
}

func (s *orderServiceImpl) GetUserOrders(ctx context.Context, userID string) ([]models.Order, *ServiceError) {
	userUUID, serr := parseUserID(userID)
	if serr != nil {
		return nil, serr
	}

	orders, err := s.orders.FindByUserID(ctx, userUUID)
	if err != nil {
		s.logger.Error("Failed to fetch user orders", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch orders"}
	}
	return orders, nil
}

func (s *orderServiceImpl) GetAllOrders(ctx context.Context) ([]models.Order, *ServiceError) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch orders"}
	}
	return orders, nil
}

// UpdateStatus advances fulfillment. The label must belong to the enumeration
// and progression is forward-only.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) *ServiceError {
	next, err := models.ParseFulfillmentStatus(status)
	if err != nil {
		return &ServiceError{StatusCode: 400, Message: "Invalid fulfillment status"}
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return &ServiceError{StatusCode: 404, Message: "Order not found"}
	}

	if !models.CanAdvance(order.Status, next) {
		return &ServiceError{
			StatusCode: 400,
			Message:    fmt.Sprintf("Cannot move order from %q to %q", order.Status, next),
		}
	}

	order.Status = next
	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order status", zap.String("order_id", orderID.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to update status"}
	}

	s.publishEvent(ctx, "order.status_updated", order)
	return nil
}

// clearCart removes the user's cart after an order lands. The write is
// independent of the order write; failures are logged, never fatal, and a
// missing cart is a no-op.
func (s *orderServiceImpl) clearCart(ctx context.Context, userID string) {
	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		s.logger.Warn("Failed to clear cart after order", zap.String("user_id", userID), zap.Error(err))
	}
}

// publishEvent emits an order lifecycle event to SNS, best-effort.
func (s *orderServiceImpl) publishEvent(ctx context.Context, eventType string, order *models.Order) {
	if s.snsClient == nil || s.snsTopicArn == "" {
		return
	}

	event := models.OrderEvent{
		Type:          eventType,
		OrderID:       order.ID.String(),
		UserID:        order.UserID.String(),
		Amount:        order.Amount,
		PaymentMethod: string(order.PaymentMethod),
		Status:        string(order.Status),
		Timestamp:     time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("Failed to marshal order event", zap.Error(err))
		return
	}

	if err := s.snsClient.Publish(ctx, s.snsTopicArn, payload); err != nil {
		s.logger.Warn("SNS publish failed", zap.String("type", eventType), zap.Error(err))
	}
}

func parseUserID(userID string) (uuid.UUID, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}
	return userUUID, nil
}
