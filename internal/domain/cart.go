package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart identity equals the owning user's identity: one cart per user, created
// when the user is created and emptied, never deleted, on checkout.
type Cart struct {
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
}

type CartItem struct {
	ID        string          `json:"id"`
	CartID    string          `json:"cartId"`
	BookID    string          `json:"bookId"`
	BookTitle string          `json:"bookTitle,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	CreatedAt time.Time       `json:"createdAt"`
}
