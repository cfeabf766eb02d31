package category

import (
	"context"

	"online-bookstore/internal/domain"
)

type CreateCategoryInput struct {
	Name        string
	Description string
}

type Repository interface {
	Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, id string, in CreateCategoryInput) (*domain.Category, error)
	SoftDelete(ctx context.Context, id string) error
}
