package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"online-bookstore/internal/domain"
)

// Assemble converts a cart snapshot into an order with one item per cart
// item. Unit prices are copied from the snapshot now and never re-read: a
// later change to a book's price does not touch the order. The cart itself is
// not mutated; clearing it is the workflow's job.
func Assemble(cart *domain.Cart, shippingAddress string, now time.Time) (domain.Order, error) {
	if cart == nil || len(cart.Items) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	o := domain.Order{
		ID:              uuid.NewString(),
		UserID:          cart.UserID,
		Status:          domain.OrderStatusPending,
		ShippingAddress: shippingAddress,
		CreatedAt:       now,
		Items:           make([]domain.OrderItem, 0, len(cart.Items)),
	}

	total := decimal.Zero
	for _, item := range cart.Items {
		o.Items = append(o.Items, domain.OrderItem{
			ID:       uuid.NewString(),
			OrderID:  o.ID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.UnitPrice,
		})
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	o.Total = total

	return o, nil
}
