package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the single pending basket of a user.
type Cart struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user"`
	Items      []CartItem      `json:"cart_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CartItem is a food and quantity in a cart, priced at the food's current price.
type CartItem struct {
	ID           uuid.UUID       `json:"id"`
	CartID       uuid.UUID       `json:"-"`
	FoodID       uuid.UUID       `json:"food"`
	FoodName     string          `json:"food_name"`
	FoodPrice    decimal.Decimal `json:"food_price"`
	RestaurantID uuid.UUID       `json:"restaurant"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// ComputeTotals fills every line total and the cart total, each rounded to 2 places.
func (c *Cart) ComputeTotals() {
	total := decimal.Zero
	for i := range c.Items {
		item := &c.Items[i]
		item.TotalPrice = item.FoodPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		total = total.Add(item.TotalPrice)
	}
	c.TotalPrice = total.Round(2)
}

// GroupByRestaurant splits the cart into per-restaurant line lists, keeping
// the first-seen restaurant order.
func (c *Cart) GroupByRestaurant() ([]uuid.UUID, map[uuid.UUID][]CartItem) {
	var order []uuid.UUID
	groups := make(map[uuid.UUID][]CartItem)
	for _, item := range c.Items {
		if _, ok := groups[item.RestaurantID]; !ok {
			order = append(order, item.RestaurantID)
		}
		groups[item.RestaurantID] = append(groups[item.RestaurantID], item)
	}
	return order, groups
}

// CartItemRequest adds a food to the cart. An existing line for the same food is replaced.
type CartItemRequest struct {
	Food     uuid.UUID `json:"food" validate:"required"`
	Quantity int       `json:"quantity"`
}

// CartItemUpdateRequest changes the quantity of a cart line.
type CartItemUpdateRequest struct {
	Quantity int `json:"quantity"`
}
