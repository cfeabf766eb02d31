package httpserver

import (
	"context"

	"online-bookstore/internal/domain"
	bookrepo "online-bookstore/internal/repository/book"
	booksvc "online-bookstore/internal/service/book"
	categorysvc "online-bookstore/internal/service/category"
)

// Deps are the services the router dispatches to. They are interfaces so
// handler tests can stub them.
type Deps struct {
	Books      BookService
	Categories CategoryService
	Carts      CartService
	Orders     OrderService
}

type BookService interface {
	Create(ctx context.Context, in booksvc.UpsertInput) (*domain.Book, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, page bookrepo.Page) ([]domain.Book, error)
	Search(ctx context.Context, params booksvc.SearchParams, page bookrepo.Page) ([]domain.Book, error)
	ListByCategory(ctx context.Context, categoryID string, page bookrepo.Page) ([]domain.Book, error)
	Update(ctx context.Context, id string, in booksvc.UpsertInput) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}

type CategoryService interface {
	Create(ctx context.Context, in categorysvc.UpsertInput) (*domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, id string, in categorysvc.UpsertInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type CartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, bookID string, quantity int) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error)
}

type OrderService interface {
	Create(ctx context.Context, userID, shippingAddress string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetItems(ctx context.Context, orderID, userID string) ([]domain.OrderItem, error)
	GetItem(ctx context.Context, itemID, orderID, userID string) (*domain.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error)
}
