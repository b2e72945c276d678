package service

import (
	"time"

	"dinelt/internal/model"

	"github.com/shopspring/decimal"
)

// defaultLimit and maxLimit bound list pagination.
const (
	defaultLimit = 10
	maxLimit     = 100
)

// normalizePage clamps pagination parameters to sane values.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func validQuantity(quantity int) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}
	if quantity > model.MaxQuantity {
		return model.ErrQuantityTooLarge
	}
	return nil
}

func validTotal(total decimal.Decimal) error {
	if !model.ValidAmount(total) {
		return model.ErrTotalTooLarge
	}
	return nil
}

func validPrice(price decimal.Decimal) error {
	if !model.ValidPrice(price) {
		return model.ErrInvalidPrice
	}
	return nil
}

// clock is overridden in tests.
type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
