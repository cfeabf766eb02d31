package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"online-bookstore/internal/domain"
)

type stubRepo struct {
	cart           *domain.Cart
	getErr         error
	addErr         error
	updateErr      error
	removeErr      error
	addCalls       int
	lastAddBookID  string
	lastAddQty     int
	lastUpdateItem string
	lastUpdateQty  int
	lastRemoveItem string
}

func (s *stubRepo) GetByOwner(_ context.Context, _ string) (*domain.Cart, error) {
	return s.cart, s.getErr
}

func (s *stubRepo) AddItem(_ context.Context, _, bookID string, quantity int) error {
	s.addCalls++
	s.lastAddBookID = bookID
	s.lastAddQty = quantity
	return s.addErr
}

func (s *stubRepo) UpdateItemQuantity(_ context.Context, _, itemID string, quantity int) error {
	s.lastUpdateItem = itemID
	s.lastUpdateQty = quantity
	return s.updateErr
}

func (s *stubRepo) RemoveItem(_ context.Context, _, itemID string) error {
	s.lastRemoveItem = itemID
	return s.removeErr
}

type stubBooks struct {
	exists bool
	err    error
}

func (s *stubBooks) Exists(_ context.Context, _ string) (bool, error) {
	return s.exists, s.err
}

func testCart() *domain.Cart {
	return &domain.Cart{
		UserID: "u1",
		Items: []domain.CartItem{
			{ID: "i1", CartID: "u1", BookID: "b1", UnitPrice: decimal.RequireFromString("9.99"), Quantity: 1},
		},
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, books: &stubBooks{exists: true}}
	_, err := svc.AddItem(context.Background(), "u1", "b1", 0)
	if err == nil || err.Error() != "quantity must be positive" {
		t.Fatalf("expected quantity error, got %v", err)
	}
}

func TestAddItemUnknownBookIsNotFound(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo, books: &stubBooks{exists: false}}
	_, err := svc.AddItem(context.Background(), "u1", "missing", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.addCalls != 0 {
		t.Fatalf("expected no repo call for unknown book, got %d", repo.addCalls)
	}
}

func TestAddItemDuplicatePropagates(t *testing.T) {
	svc := &Service{
		repo:  &stubRepo{addErr: domain.ErrDuplicateItem},
		books: &stubBooks{exists: true},
	}
	_, err := svc.AddItem(context.Background(), "u1", "b1", 1)
	if !errors.Is(err, domain.ErrDuplicateItem) {
		t.Fatalf("expected duplicate item, got %v", err)
	}
}

func TestAddItemHappyPathReturnsSnapshot(t *testing.T) {
	repo := &stubRepo{cart: testCart()}
	svc := &Service{repo: repo, books: &stubBooks{exists: true}}
	got, err := svc.AddItem(context.Background(), "u1", "b1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != repo.cart {
		t.Fatalf("unexpected cart: %+v", got)
	}
	if repo.lastAddBookID != "b1" || repo.lastAddQty != 2 {
		t.Fatalf("unexpected add call book=%s qty=%d", repo.lastAddBookID, repo.lastAddQty)
	}
}

func TestUpdateItemQuantityValidation(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}
	_, err := svc.UpdateItemQuantity(context.Background(), "u1", "i1", 0)
	if err == nil || err.Error() != "quantity must be positive" {
		t.Fatalf("expected quantity error, got %v", err)
	}
}

func TestUpdateItemQuantityForeignItemIsNotFound(t *testing.T) {
	svc := &Service{repo: &stubRepo{updateErr: domain.ErrNotFound}}
	_, err := svc.UpdateItemQuantity(context.Background(), "u1", "other", 3)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveItemAbsentIsNotFound(t *testing.T) {
	svc := &Service{repo: &stubRepo{removeErr: domain.ErrNotFound}}
	_, err := svc.RemoveItem(context.Background(), "u1", "gone")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveItemHappyPath(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{UserID: "u1"}}
	svc := &Service{repo: repo}
	got, err := svc.RemoveItem(context.Background(), "u1", "i1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != repo.cart || repo.lastRemoveItem != "i1" {
		t.Fatalf("unexpected result cart=%+v item=%s", got, repo.lastRemoveItem)
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	repo := &stubRepo{cart: testCart()}
	svc := &Service{repo: repo}
	got, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != repo.cart {
		t.Fatalf("unexpected cart: %+v", got)
	}
}
