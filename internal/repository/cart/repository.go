package cart

import (
	"context"

	"online-bookstore/internal/domain"
)

type Repository interface {
	// EnsureForUser creates the user's cart if it does not exist yet. Carts
	// live as long as their user; there is no delete.
	EnsureForUser(ctx context.Context, userID string) error
	GetByOwner(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, bookID string, quantity int) error
	UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID string) error
	ClearItems(ctx context.Context, userID string) error
}
