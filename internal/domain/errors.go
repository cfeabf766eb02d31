package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateItem indicates the cart already holds an item for the book.
	ErrDuplicateItem = errors.New("duplicate cart item")

	// ErrDuplicateISBN indicates the catalog already holds a live book with
	// the given ISBN.
	ErrDuplicateISBN = errors.New("duplicate isbn")

	// ErrEmptyCart indicates an order was requested for a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrConfiguration indicates a programming or wiring mistake, e.g. a search
	// field with no registered predicate provider. It is never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrCartClearFailed indicates the order was persisted but clearing the
	// cart failed. The order is durable; the condition must be reported for
	// reconciliation, not treated as a failed order.
	ErrCartClearFailed = errors.New("cart clear failed after order was persisted")
)
