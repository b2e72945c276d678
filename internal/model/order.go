package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity accepted on an order or cart line.
const MaxQuantity = 1000

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
)

// Order represents a customer order placed with one restaurant.
type Order struct {
	ID                    uuid.UUID       `json:"id"`
	UserID                uuid.UUID       `json:"user"`
	RestaurantID          uuid.UUID       `json:"restaurant"`
	Status                OrderStatus     `json:"status"`
	OrderTime             time.Time       `json:"order_time"`
	EstimatedDeliveryTime *time.Time      `json:"estimated_delivery_time"`
	TotalPrice            decimal.Decimal `json:"total_price"`
	Items                 []OrderItem     `json:"order_items"`
}

// OrderItem represents a line item in an order. Price is the unit price
// captured when the item was added.
type OrderItem struct {
	ID       uuid.UUID       `json:"id"`
	OrderID  uuid.UUID       `json:"-"`
	FoodID   uuid.UUID       `json:"food"`
	FoodName string          `json:"food_name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// LineTotal is unit price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderTotal sums the line totals of items.
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total.Round(2)
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	Restaurant uuid.UUID          `json:"restaurant" validate:"required"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemsRequest adds items to an existing pending order.
type OrderItemsRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	Food     uuid.UUID `json:"food" validate:"required"`
	Quantity int       `json:"quantity"`
}

// OrderStatusRequest changes the status of an order.
type OrderStatusRequest struct {
	Status                OrderStatus `json:"status" validate:"required,oneof=Pending Completed Cancelled"`
	EstimatedDeliveryTime *time.Time  `json:"estimated_delivery_time,omitempty"`
}
