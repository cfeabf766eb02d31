package cart

import (
	"context"
	"errors"
	"fmt"

	"online-bookstore/internal/domain"
	cartrepo "online-bookstore/internal/repository/cart"
)

type Service struct {
	repo  cartRepo
	books bookRepo
}

type cartRepo interface {
	GetByOwner(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, bookID string, quantity int) error
	UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID string) error
}

type bookRepo interface {
	Exists(ctx context.Context, id string) (bool, error)
}

func New(repo cartrepo.Repository, books bookRepo) *Service {
	return &Service{repo: repo, books: books}
}

// Get returns a read-only snapshot of the user's cart.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.repo.GetByOwner(ctx, userID)
}

// AddItem appends a new item for the book. A second item for the same book is
// rejected with domain.ErrDuplicateItem, never merged.
func (s *Service) AddItem(ctx context.Context, userID, bookID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, errors.New("quantity must be positive")
	}
	if s.books == nil {
		return nil, errors.New("book repository unavailable")
	}
	exists, err := s.books.Exists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("book %s: %w", bookID, domain.ErrNotFound)
	}
	if err := s.repo.AddItem(ctx, userID, bookID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByOwner(ctx, userID)
}

// UpdateItemQuantity replaces the quantity in place; the item keeps its
// identity.
func (s *Service) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, errors.New("quantity must be positive")
	}
	if err := s.repo.UpdateItemQuantity(ctx, userID, itemID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByOwner(ctx, userID)
}

// RemoveItem removes the item. Removal is not idempotent: repeating the call
// fails with domain.ErrNotFound.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	if err := s.repo.RemoveItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.repo.GetByOwner(ctx, userID)
}
