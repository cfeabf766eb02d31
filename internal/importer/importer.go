package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"online-bookstore/internal/domain"
	bookrepo "online-bookstore/internal/repository/book"
	categoryrepo "online-bookstore/internal/repository/category"
)

type BookWriter interface {
	Upsert(ctx context.Context, in bookrepo.CreateBookInput) (*domain.Book, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, in categoryrepo.CreateCategoryInput) (*domain.Category, error)
}

// bookRecord is one entry of a JSON catalog export. Categories are referenced
// by name and created on first use.
type bookRecord struct {
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CoverImage  string          `json:"coverImage"`
	Categories  []string        `json:"categories"`
}

// JSONImporter loads a JSON book catalog into the store.
type JSONImporter struct {
	books      BookWriter
	categories CategoryStore
	workers    int
}

func NewJSONImporter(books BookWriter, categories CategoryStore, workers int) *JSONImporter {
	if workers < 1 {
		workers = 4
	}
	return &JSONImporter{books: books, categories: categories, workers: workers}
}

// Run decodes the catalog and imports every record. Category names are
// resolved to ids up front; book upserts then run concurrently, bounded by
// the worker count, so re-running the same catalog converges instead of
// failing on duplicate ISBNs. The first failing record aborts the run.
func (i *JSONImporter) Run(ctx context.Context, r io.Reader) (int, error) {
	var records []bookRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("decode catalog: %w", err)
	}

	for idx, rec := range records {
		if err := validateRecord(rec); err != nil {
			return 0, fmt.Errorf("record %d: %w", idx, err)
		}
	}

	categoryIDs, err := i.resolveCategories(ctx, records)
	if err != nil {
		return 0, err
	}

	var imported atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)

	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			in := bookrepo.CreateBookInput{
				Title:       rec.Title,
				Author:      rec.Author,
				ISBN:        rec.ISBN,
				Price:       rec.Price,
				Description: rec.Description,
				CoverImage:  rec.CoverImage,
			}
			for _, name := range rec.Categories {
				in.CategoryIDs = append(in.CategoryIDs, categoryIDs[name])
			}
			if _, err := i.books.Upsert(ctx, in); err != nil {
				return fmt.Errorf("import book %q: %w", rec.ISBN, err)
			}
			imported.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(imported.Load()), err
	}
	return int(imported.Load()), nil
}

// resolveCategories maps every referenced category name to an id, creating
// the names the store does not have yet.
func (i *JSONImporter) resolveCategories(ctx context.Context, records []bookRecord) (map[string]string, error) {
	ids := make(map[string]string)

	existing, err := i.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	for _, c := range existing {
		ids[c.Name] = c.ID
	}

	for _, rec := range records {
		for _, name := range rec.Categories {
			if _, ok := ids[name]; ok {
				continue
			}
			created, err := i.categories.Create(ctx, categoryrepo.CreateCategoryInput{Name: name})
			if err != nil {
				return nil, fmt.Errorf("create category %q: %w", name, err)
			}
			ids[name] = created.ID
		}
	}
	return ids, nil
}

func validateRecord(rec bookRecord) error {
	if strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("missing title")
	}
	if strings.TrimSpace(rec.Author) == "" {
		return fmt.Errorf("missing author")
	}
	if strings.TrimSpace(rec.ISBN) == "" {
		return fmt.Errorf("missing isbn")
	}
	if rec.Price.IsNegative() {
		return fmt.Errorf("negative price for isbn %q", rec.ISBN)
	}
	for _, name := range rec.Categories {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("blank category name for isbn %q", rec.ISBN)
		}
	}
	return nil
}
