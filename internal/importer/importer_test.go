package importer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"online-bookstore/internal/domain"
	bookrepo "online-bookstore/internal/repository/book"
	categoryrepo "online-bookstore/internal/repository/category"
)

type stubBookWriter struct {
	mu      sync.Mutex
	created []bookrepo.CreateBookInput
	err     error
}

func (s *stubBookWriter) Upsert(_ context.Context, in bookrepo.CreateBookInput) (*domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, in)
	return &domain.Book{ID: "b" + in.ISBN, ISBN: in.ISBN}, nil
}

type stubCategoryStore struct {
	existing []domain.Category
	created  []string
	nextID   int
}

func (s *stubCategoryStore) List(_ context.Context) ([]domain.Category, error) {
	return s.existing, nil
}

func (s *stubCategoryStore) Create(_ context.Context, in categoryrepo.CreateCategoryInput) (*domain.Category, error) {
	s.nextID++
	s.created = append(s.created, in.Name)
	return &domain.Category{ID: in.Name + "-id", Name: in.Name}, nil
}

const catalog = `[
  {"title": "The Hobbit", "author": "J.R.R. Tolkien", "isbn": "978-0547928227", "price": 14.99, "categories": ["Fantasy", "Classics"]},
  {"title": "Dune", "author": "Frank Herbert", "isbn": "978-0441172719", "price": "10.99", "categories": ["Science Fiction"]},
  {"title": "Nineteen Eighty-Four", "author": "George Orwell", "isbn": "978-0451524935", "price": 9.99}
]`

func TestRunImportsAllRecords(t *testing.T) {
	books := &stubBookWriter{}
	categories := &stubCategoryStore{existing: []domain.Category{{ID: "c1", Name: "Fantasy"}}}
	imp := NewJSONImporter(books, categories, 2)

	count, err := imp.Run(context.Background(), strings.NewReader(catalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 imported, got %d", count)
	}
	if len(books.created) != 3 {
		t.Fatalf("expected 3 upserts, got %d", len(books.created))
	}
}

func TestRunCreatesOnlyMissingCategories(t *testing.T) {
	books := &stubBookWriter{}
	categories := &stubCategoryStore{existing: []domain.Category{{ID: "c1", Name: "Fantasy"}}}
	imp := NewJSONImporter(books, categories, 1)

	if _, err := imp.Run(context.Background(), strings.NewReader(catalog)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories.created) != 2 {
		t.Fatalf("expected 2 created categories, got %v", categories.created)
	}
	for _, name := range categories.created {
		if name == "Fantasy" {
			t.Fatalf("existing category recreated")
		}
	}

	for _, in := range books.created {
		if in.ISBN == "978-0547928227" {
			if len(in.CategoryIDs) != 2 || in.CategoryIDs[0] != "c1" {
				t.Fatalf("expected resolved category ids, got %v", in.CategoryIDs)
			}
		}
	}
}

func TestRunRejectsInvalidRecord(t *testing.T) {
	books := &stubBookWriter{}
	imp := NewJSONImporter(books, &stubCategoryStore{}, 1)

	bad := `[{"title": "", "author": "A", "isbn": "1", "price": 1}]`
	if _, err := imp.Run(context.Background(), strings.NewReader(bad)); err == nil {
		t.Fatal("expected validation error")
	}
	if len(books.created) != 0 {
		t.Fatalf("expected no creates, got %d", len(books.created))
	}
}

func TestRunRejectsMalformedJSON(t *testing.T) {
	imp := NewJSONImporter(&stubBookWriter{}, &stubCategoryStore{}, 1)
	if _, err := imp.Run(context.Background(), strings.NewReader(`{"not": "a list"`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRunPropagatesStoreFailure(t *testing.T) {
	boom := errors.New("boom")
	books := &stubBookWriter{err: boom}
	imp := NewJSONImporter(books, &stubCategoryStore{}, 2)

	_, err := imp.Run(context.Background(), strings.NewReader(catalog))
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
