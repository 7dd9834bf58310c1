package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// Order is the immutable financial record produced by checkout. Its lines
// carry the unit prices captured at checkout time and are never re-read from
// the product catalog.
type Order struct {
	ID          string          `json:"id"`
	CartID      string          `json:"cartId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	Lines       []OrderLine     `json:"orderLines"`
}

// OrderLine is one priced line item of an order. Subtotal is stored
// redundantly so reads never recompute it.
type OrderLine struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"-"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CheckoutRequest is the body of POST /orders/checkout.
type CheckoutRequest struct {
	CartID string `json:"cartId" binding:"required"`
}
