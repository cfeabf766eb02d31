package order

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"online-bookstore/internal/domain"
)

type stubOrderRepo struct {
	created       *domain.Order
	createErr     error
	lastOrder     domain.Order
	lastClearCart string
	createCalls   int
	updated       *domain.Order
	updateErr     error
	lastStatus    domain.OrderStatus
}

func (s *stubOrderRepo) Create(_ context.Context, o domain.Order, clearCartID string) (*domain.Order, error) {
	s.createCalls++
	s.lastOrder = o
	s.lastClearCart = clearCartID
	if s.createErr != nil {
		return s.created, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	return &o, nil
}

func (s *stubOrderRepo) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) GetByIDAndUser(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.created, nil
}

func (s *stubOrderRepo) GetItem(_ context.Context, _, _, _ string) (*domain.OrderItem, error) {
	return nil, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, _ string, status domain.OrderStatus) (*domain.Order, error) {
	s.lastStatus = status
	return s.updated, s.updateErr
}

type stubCartRepo struct {
	cart *domain.Cart
	err  error
}

func (s *stubCartRepo) GetByOwner(_ context.Context, _ string) (*domain.Cart, error) {
	return s.cart, s.err
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func twoItemCart() *domain.Cart {
	return &domain.Cart{
		UserID: "u1",
		Items: []domain.CartItem{
			{ID: "i1", CartID: "u1", BookID: "book-a", UnitPrice: price("9.99"), Quantity: 1},
			{ID: "i2", CartID: "u1", BookID: "book-b", UnitPrice: price("10.99"), Quantity: 2},
		},
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestAssembleEmptyCart(t *testing.T) {
	_, err := Assemble(&domain.Cart{UserID: "u1"}, "addr", time.Now())
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestAssembleComputesExactTotal(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o, err := Assemble(twoItemCart(), "221B Baker Street", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !o.Total.Equal(price("31.97")) {
		t.Fatalf("expected total 31.97, got %s", o.Total)
	}
	if o.Status != domain.OrderStatusPending {
		t.Fatalf("expected PENDING, got %s", o.Status)
	}
	if o.UserID != "u1" || o.ShippingAddress != "221B Baker Street" || !o.CreatedAt.Equal(now) {
		t.Fatalf("unexpected order header %+v", o)
	}
	if len(o.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(o.Items))
	}
	for i, item := range o.Items {
		if item.OrderID != o.ID {
			t.Fatalf("item %d not bound to order: %+v", i, item)
		}
		if item.ID == "" {
			t.Fatalf("item %d missing identity", i)
		}
	}
	if !o.Items[0].Price.Equal(price("9.99")) || o.Items[0].Quantity != 1 {
		t.Fatalf("unexpected first item %+v", o.Items[0])
	}
	if !o.Items[1].Price.Equal(price("10.99")) || o.Items[1].Quantity != 2 {
		t.Fatalf("unexpected second item %+v", o.Items[1])
	}
}

func TestAssemblePriceIsSnapshot(t *testing.T) {
	cart := twoItemCart()
	o, err := Assemble(cart, "addr", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A later catalog price change must not reach the assembled order.
	cart.Items[0].UnitPrice = price("99.99")
	if !o.Items[0].Price.Equal(price("9.99")) {
		t.Fatalf("order item price changed with book price: %s", o.Items[0].Price)
	}
}

func TestAssembleDoesNotMutateCart(t *testing.T) {
	cart := twoItemCart()
	if _, err := Assemble(cart, "addr", time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("cart mutated, items=%d", len(cart.Items))
	}
}

func TestCreateRequiresShippingAddress(t *testing.T) {
	svc := &Service{orders: &stubOrderRepo{}, carts: &stubCartRepo{}, logger: discardLogger(), now: time.Now}
	_, err := svc.Create(context.Background(), "u1", "   ")
	if err == nil || err.Error() != "shipping address required" {
		t.Fatalf("expected address error, got %v", err)
	}
}

func TestCreateMissingCartIsNotFound(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := &Service{orders: orders, carts: &stubCartRepo{err: domain.ErrNotFound}, logger: discardLogger(), now: time.Now}
	_, err := svc.Create(context.Background(), "u1", "addr")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if orders.createCalls != 0 {
		t.Fatalf("expected no persistence attempt, got %d", orders.createCalls)
	}
}

func TestCreateEmptyCartFails(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := &Service{orders: orders, carts: &stubCartRepo{cart: &domain.Cart{UserID: "u1"}}, logger: discardLogger(), now: time.Now}
	_, err := svc.Create(context.Background(), "u1", "addr")
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
	if orders.createCalls != 0 {
		t.Fatalf("expected no persistence attempt, got %d", orders.createCalls)
	}
}

func TestCreateHappyPathClearsOwnersCart(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := &Service{orders: orders, carts: &stubCartRepo{cart: twoItemCart()}, logger: discardLogger(), now: time.Now}
	got, err := svc.Create(context.Background(), "u1", "addr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders.lastClearCart != "u1" {
		t.Fatalf("expected cart u1 cleared, got %q", orders.lastClearCart)
	}
	if !got.Total.Equal(price("31.97")) {
		t.Fatalf("unexpected total %s", got.Total)
	}
}

func TestCreatePersistenceFailurePropagates(t *testing.T) {
	orders := &stubOrderRepo{createErr: errors.New("insert failed")}
	svc := &Service{orders: orders, carts: &stubCartRepo{cart: twoItemCart()}, logger: discardLogger(), now: time.Now}
	_, err := svc.Create(context.Background(), "u1", "addr")
	if err == nil || err.Error() != "insert failed" {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestCreateCartClearFailureIsWarnedNotFatal(t *testing.T) {
	durable := &domain.Order{ID: "o1", UserID: "u1", Total: price("31.97")}
	orders := &stubOrderRepo{
		created:   durable,
		createErr: fmt.Errorf("delete cart_items: %w", domain.ErrCartClearFailed),
	}
	var buf bytes.Buffer
	svc := &Service{orders: orders, carts: &stubCartRepo{cart: twoItemCart()}, logger: log.New(&buf, "", 0), now: time.Now}

	got, err := svc.Create(context.Background(), "u1", "addr")
	if err != nil {
		t.Fatalf("expected order creation to succeed, got %v", err)
	}
	if got != durable {
		t.Fatalf("unexpected order %+v", got)
	}
	if !strings.Contains(buf.String(), "consistency warning") {
		t.Fatalf("expected warning in log, got %q", buf.String())
	}
}

func TestUpdateStatusRejectsUnknownToken(t *testing.T) {
	svc := &Service{orders: &stubOrderRepo{}, logger: discardLogger(), now: time.Now}
	_, err := svc.UpdateStatus(context.Background(), "o1", "LOST")
	if err == nil || !strings.Contains(err.Error(), "unknown order status") {
		t.Fatalf("expected status parse error, got %v", err)
	}
}

func TestUpdateStatusHappyPath(t *testing.T) {
	orders := &stubOrderRepo{updated: &domain.Order{ID: "o1", Status: domain.OrderStatusShipped}}
	svc := &Service{orders: orders, logger: discardLogger(), now: time.Now}
	got, err := svc.UpdateStatus(context.Background(), "o1", "SHIPPED")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.OrderStatusShipped || orders.lastStatus != domain.OrderStatusShipped {
		t.Fatalf("unexpected status %s / %s", got.Status, orders.lastStatus)
	}
}
