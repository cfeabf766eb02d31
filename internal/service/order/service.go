package order

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"online-bookstore/internal/domain"
	orderrepo "online-bookstore/internal/repository/order"
)

type Service struct {
	orders orderRepo
	carts  cartRepo
	logger *log.Logger
	now    func() time.Time
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order, clearCartID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByIDAndUser(ctx context.Context, orderID, userID string) (*domain.Order, error)
	GetItem(ctx context.Context, itemID, orderID, userID string) (*domain.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
}

type cartRepo interface {
	GetByOwner(ctx context.Context, userID string) (*domain.Cart, error)
}

func New(orders orderrepo.Repository, carts cartRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, carts: carts, logger: logger, now: time.Now}
}

// Create runs the cart-to-order transition: load the caller's cart, assemble
// the order, persist it together with the cart clear. The store keeps both
// sides atomic; if it reports the order durable but the cart not cleared, the
// condition is logged for reconciliation and the order still succeeds.
func (s *Service) Create(ctx context.Context, userID, shippingAddress string) (*domain.Order, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, errors.New("shipping address required")
	}

	cart, err := s.carts.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	assembled, err := Assemble(cart, shippingAddress, s.now().UTC())
	if err != nil {
		return nil, err
	}

	created, err := s.orders.Create(ctx, assembled, cart.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrCartClearFailed) && created != nil {
			s.logger.Printf("consistency warning: order %s persisted for user %s but cart not cleared: %v", created.ID, userID, err)
			return created, nil
		}
		return nil, err
	}
	return created, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) GetItems(ctx context.Context, orderID, userID string) ([]domain.OrderItem, error) {
	o, err := s.orders.GetByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	return o.Items, nil
}

func (s *Service) GetItem(ctx context.Context, itemID, orderID, userID string) (*domain.OrderItem, error) {
	return s.orders.GetItem(ctx, itemID, orderID, userID)
}

// UpdateStatus is the privileged status transition; nothing else moves an
// order out of PENDING.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	return s.orders.UpdateStatus(ctx, orderID, parsed)
}
