package service

import "dinelt/internal/model"

// orderRole is the relation of a caller to an order.
type orderRole int

const (
	roleCustomer orderRole = 1 << iota
	roleRestaurant
)

// orderTransitions lists, per source status, the target statuses and the
// roles allowed to apply them. Statuses missing from the table are terminal.
var orderTransitions = map[model.OrderStatus]map[model.OrderStatus]orderRole{
	model.OrderPending: {
		model.OrderCompleted: roleRestaurant,
		model.OrderCancelled: roleCustomer | roleRestaurant,
	},
}

// checkTransition returns nil when roles may move an order from one status to another.
func checkTransition(from, to model.OrderStatus, roles orderRole) error {
	targets, ok := orderTransitions[from]
	if !ok {
		return model.ErrInvalidTransition
	}
	allowed, ok := targets[to]
	if !ok {
		return model.ErrInvalidTransition
	}
	if allowed&roles == 0 {
		return model.ErrForbidden
	}
	return nil
}
