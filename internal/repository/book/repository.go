package book

import (
	"context"

	"github.com/shopspring/decimal"

	"online-bookstore/internal/domain"
	"online-bookstore/internal/search"
)

type CreateBookInput struct {
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []string
}

// Page is a limit/offset window over a stable created_at, id ordering.
type Page struct {
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, in CreateBookInput) (*domain.Book, error)
	Upsert(ctx context.Context, in CreateBookInput) (*domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, page Page) ([]domain.Book, error)
	Search(ctx context.Context, spec search.Specification, page Page) ([]domain.Book, error)
	ListByCategory(ctx context.Context, categoryID string, page Page) ([]domain.Book, error)
	Update(ctx context.Context, id string, in CreateBookInput) (*domain.Book, error)
	SoftDelete(ctx context.Context, id string) error
}
