package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod identifies how an order is paid.
type PaymentMethod string

const (
	PaymentMethodCOD      PaymentMethod = "COD"
	PaymentMethodStripe   PaymentMethod = "Stripe"
	PaymentMethodRazorpay PaymentMethod = "Razorpay"
)

// PaymentState tracks the settlement dimension of an order. COD orders stay
// pending forever; settlement happens physically at delivery. A cancelled
// order is hard-deleted, so the state is only ever observed in memory.
type PaymentState string

const (
	PaymentPending   PaymentState = "pending"
	PaymentSettled   PaymentState = "settled"
	PaymentCancelled PaymentState = "cancelled"
)

// FulfillmentStatus is the shipping-progress label on an order, independent
// of payment state.
type FulfillmentStatus string

const (
	StatusPlaced         FulfillmentStatus = "Order Placed"
	StatusPacking        FulfillmentStatus = "Packing"
	StatusShipped        FulfillmentStatus = "Shipped"
	StatusOutForDelivery FulfillmentStatus = "Out for delivery"
	StatusDelivered      FulfillmentStatus = "Delivered"
)

var fulfillmentRank = map[FulfillmentStatus]int{
	StatusPlaced:         0,
	StatusPacking:        1,
	StatusShipped:        2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

// ParseFulfillmentStatus validates a status label supplied by the admin panel.
func ParseFulfillmentStatus(s string) (FulfillmentStatus, error) {
	status := FulfillmentStatus(s)
	if _, ok := fulfillmentRank[status]; !ok {
		return "", fmt.Errorf("unknown fulfillment status %q", s)
	}
	return status, nil
}

// CanAdvance reports whether fulfillment may move from one status to another.
// Progression is forward-only; re-applying the current status is allowed so
// retried admin updates stay idempotent.
func CanAdvance(from, to FulfillmentStatus) bool {
	fr, ok := fulfillmentRank[from]
	if !ok {
		return false
	}
	tr, ok := fulfillmentRank[to]
	if !ok {
		return false
	}
	return tr >= fr
}

// Address is the shipping destination captured at checkout.
type Address struct {
	FirstName string `json:"first_name" gorm:"column:first_name"`
	LastName  string `json:"last_name" gorm:"column:last_name"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

type Order struct {
	ID             uuid.UUID         `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;index"`
	Items          []OrderItem       `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Amount         int64             `json:"amount" gorm:"not null"`
	Address        Address           `json:"address" gorm:"embedded;embeddedPrefix:addr_"`
	PaymentMethod  PaymentMethod     `json:"payment_method" gorm:"type:varchar(20);not null"`
	PaymentStatus  PaymentState      `json:"payment_status" gorm:"type:varchar(20);not null;default:'pending'"`
	Status         FulfillmentStatus `json:"status" gorm:"type:varchar(30);not null;default:'Order Placed'"`
	GatewayOrderID string            `json:"gateway_order_id,omitempty" gorm:"index"`
	CreatedAt      time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

// OrderItem is a line item with the unit price captured at placement time,
// so later catalog edits never change historical orders.
type OrderItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     int64     `json:"price" gorm:"not null"`
}

// Settled reports whether payment has been confirmed for the order.
func (o *Order) Settled() bool {
	return o.PaymentStatus == PaymentSettled
}

// OrderEvent is the payload published to SNS on lifecycle changes.
type OrderEvent struct {
	Type          string    `json:"type"`
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}
