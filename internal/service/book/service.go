package book

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"online-bookstore/internal/domain"
	bookrepo "online-bookstore/internal/repository/book"
	"online-bookstore/internal/search"
)

type Service struct {
	repo    bookRepo
	builder *search.Builder
}

type bookRepo interface {
	Create(ctx context.Context, in bookrepo.CreateBookInput) (*domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, page bookrepo.Page) ([]domain.Book, error)
	Search(ctx context.Context, spec search.Specification, page bookrepo.Page) ([]domain.Book, error)
	ListByCategory(ctx context.Context, categoryID string, page bookrepo.Page) ([]domain.Book, error)
	Update(ctx context.Context, id string, in bookrepo.CreateBookInput) (*domain.Book, error)
	SoftDelete(ctx context.Context, id string) error
}

// DefaultRegistry holds the provider per searchable book field. Adding a
// field means registering one more provider here.
func DefaultRegistry() *search.Registry {
	return search.NewRegistry(
		search.NewFieldProvider("author", "author"),
		search.NewFieldProvider("title", "title"),
		search.NewFieldProvider("isbn", "isbn"),
	)
}

func New(repo bookrepo.Repository) *Service {
	return &Service{repo: repo, builder: search.NewBuilder(DefaultRegistry())}
}

type UpsertInput struct {
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	CoverImage  string          `json:"coverImage,omitempty"`
	CategoryIDs []string        `json:"categoryIds,omitempty"`
}

// SearchParams carries the optional search fields. Empty fields filter
// nothing; within one field values are alternatives.
type SearchParams struct {
	Authors []string `json:"authors,omitempty" form:"authors"`
	Titles  []string `json:"titles,omitempty" form:"titles"`
	ISBNs   []string `json:"isbns,omitempty" form:"isbns"`
}

func (p SearchParams) fields() search.Params {
	return search.Params{
		{Key: "author", Values: p.Authors},
		{Key: "title", Values: p.Titles},
		{Key: "isbn", Values: p.ISBNs},
	}
}

func (s *Service) Create(ctx context.Context, in UpsertInput) (*domain.Book, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, toRepoInput(in))
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, page bookrepo.Page) ([]domain.Book, error) {
	return s.repo.List(ctx, page)
}

func (s *Service) Search(ctx context.Context, params SearchParams, page bookrepo.Page) ([]domain.Book, error) {
	spec, err := s.builder.Build(params.fields())
	if err != nil {
		return nil, err
	}
	return s.repo.Search(ctx, spec, page)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID string, page bookrepo.Page) ([]domain.Book, error) {
	return s.repo.ListByCategory(ctx, categoryID, page)
}

func (s *Service) Update(ctx context.Context, id string, in UpsertInput) (*domain.Book, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, toRepoInput(in))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

func validate(in UpsertInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("title required")
	}
	if strings.TrimSpace(in.Author) == "" {
		return errors.New("author required")
	}
	if strings.TrimSpace(in.ISBN) == "" {
		return errors.New("isbn required")
	}
	if in.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	return nil
}

func toRepoInput(in UpsertInput) bookrepo.CreateBookInput {
	return bookrepo.CreateBookInput{
		Title:       in.Title,
		Author:      in.Author,
		ISBN:        in.ISBN,
		Price:       in.Price,
		Description: in.Description,
		CoverImage:  in.CoverImage,
		CategoryIDs: in.CategoryIDs,
	}
}
