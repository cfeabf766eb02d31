package order

import (
	"context"

	"online-bookstore/internal/domain"
)

type Repository interface {
	// Create persists the order with its item snapshots and clears the cart's
	// items as one atomic unit. A store that cannot combine both operations
	// must persist the order first and report a failed clear by returning the
	// created order together with an error wrapping domain.ErrCartClearFailed.
	Create(ctx context.Context, o domain.Order, clearCartID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByIDAndUser(ctx context.Context, orderID, userID string) (*domain.Order, error)
	GetItem(ctx context.Context, itemID, orderID, userID string) (*domain.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
}
