package book

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"online-bookstore/internal/domain"
	"online-bookstore/internal/search"
)

const (
	dialect         = "postgres"
	uniqueViolation = "23505"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateBookInput) (*domain.Book, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO books (title, author, isbn, price, description, cover_image)
VALUES ($1, $2, $3, $4::numeric, NULLIF($5, ''), NULLIF($6, ''))
RETURNING id::text, created_at
`
	var b domain.Book
	if err := tx.QueryRow(ctx, q, in.Title, in.Author, in.ISBN, in.Price.String(), in.Description, in.CoverImage).
		Scan(&b.ID, &b.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateISBN
		}
		r.logger.Printf("book repo: create isbn=%s error=%v", in.ISBN, err)
		return nil, err
	}

	if err := replaceCategories(ctx, tx, b.ID, in.CategoryIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	b.Title = in.Title
	b.Author = in.Author
	b.ISBN = in.ISBN
	b.Price = in.Price
	b.Description = in.Description
	b.CoverImage = in.CoverImage
	b.CategoryIDs = in.CategoryIDs
	r.logger.Printf("book repo: created id=%s isbn=%s", b.ID, b.ISBN)
	return &b, nil
}

// Upsert inserts the book or, when a live book with the ISBN exists, updates
// it in place. Used by the catalog importer so re-runs converge.
func (r *postgresRepo) Upsert(ctx context.Context, in CreateBookInput) (*domain.Book, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO books (title, author, isbn, price, description, cover_image)
VALUES ($1, $2, $3, $4::numeric, NULLIF($5, ''), NULLIF($6, ''))
ON CONFLICT (isbn) WHERE NOT deleted DO UPDATE
SET title = EXCLUDED.title,
    author = EXCLUDED.author,
    price = EXCLUDED.price,
    description = EXCLUDED.description,
    cover_image = EXCLUDED.cover_image
RETURNING id::text, created_at
`
	var b domain.Book
	if err := tx.QueryRow(ctx, q, in.Title, in.Author, in.ISBN, in.Price.String(), in.Description, in.CoverImage).
		Scan(&b.ID, &b.CreatedAt); err != nil {
		r.logger.Printf("book repo: upsert isbn=%s error=%v", in.ISBN, err)
		return nil, err
	}

	if err := replaceCategories(ctx, tx, b.ID, in.CategoryIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	b.Title = in.Title
	b.Author = in.Author
	b.ISBN = in.ISBN
	b.Price = in.Price
	b.Description = in.Description
	b.CoverImage = in.CoverImage
	b.CategoryIDs = in.CategoryIDs
	return &b, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	const q = `
SELECT id::text, title, author, isbn, price::text, COALESCE(description, ''), COALESCE(cover_image, ''), created_at
FROM books
WHERE id = $1 AND deleted = FALSE
`
	row := r.pool.QueryRow(ctx, q, id)
	b, err := scanBook(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	categories, err := r.categoryIDs(ctx, []string{b.ID})
	if err != nil {
		return nil, err
	}
	b.CategoryIDs = categories[b.ID]
	return b, nil
}

func (r *postgresRepo) Exists(ctx context.Context, id string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1 AND deleted = FALSE)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) List(ctx context.Context, page Page) ([]domain.Book, error) {
	return r.Search(ctx, search.Specification{}, page)
}

// Search evaluates a composed specification against the non-deleted catalog.
// The empty specification matches everything.
func (r *postgresRepo) Search(ctx context.Context, spec search.Specification, page Page) ([]domain.Book, error) {
	ds := goqu.Dialect(dialect).
		From("books").
		Select(
			goqu.L("id::text"),
			goqu.C("title"),
			goqu.C("author"),
			goqu.C("isbn"),
			goqu.L("price::text"),
			goqu.L("COALESCE(description, '')"),
			goqu.L("COALESCE(cover_image, '')"),
			goqu.C("created_at"),
		).
		Where(goqu.Ex{"deleted": false}).
		Order(goqu.C("created_at").Asc(), goqu.C("id").Asc())
	ds = spec.Apply(ds)
	ds = applyPage(ds, page)

	sql, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Printf("book repo: search error=%v", err)
		return nil, err
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachCategories(ctx, books); err != nil {
		return nil, err
	}
	r.logger.Printf("book repo: search count=%d", len(books))
	return books, nil
}

func (r *postgresRepo) ListByCategory(ctx context.Context, categoryID string, page Page) ([]domain.Book, error) {
	ds := goqu.Dialect(dialect).
		From("books").
		Join(goqu.T("book_categories"), goqu.On(goqu.Ex{"book_categories.book_id": goqu.I("books.id")})).
		Select(
			goqu.L("books.id::text"),
			goqu.C("title"),
			goqu.C("author"),
			goqu.C("isbn"),
			goqu.L("price::text"),
			goqu.L("COALESCE(description, '')"),
			goqu.L("COALESCE(cover_image, '')"),
			goqu.I("books.created_at"),
		).
		Where(goqu.Ex{
			"books.deleted":                false,
			"book_categories.category_id": categoryID,
		}).
		Order(goqu.I("books.created_at").Asc(), goqu.I("books.id").Asc())
	ds = applyPage(ds, page)

	sql, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachCategories(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in CreateBookInput) (*domain.Book, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE books
SET title = $1,
    author = $2,
    isbn = $3,
    price = $4::numeric,
    description = NULLIF($5, ''),
    cover_image = NULLIF($6, '')
WHERE id = $7 AND deleted = FALSE
RETURNING id::text, created_at
`
	var b domain.Book
	if err := tx.QueryRow(ctx, q, in.Title, in.Author, in.ISBN, in.Price.String(), in.Description, in.CoverImage, id).
		Scan(&b.ID, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateISBN
		}
		return nil, err
	}

	if err := replaceCategories(ctx, tx, b.ID, in.CategoryIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	b.Title = in.Title
	b.Author = in.Author
	b.ISBN = in.ISBN
	b.Price = in.Price
	b.Description = in.Description
	b.CoverImage = in.CoverImage
	b.CategoryIDs = in.CategoryIDs
	return &b, nil
}

func (r *postgresRepo) SoftDelete(ctx context.Context, id string) error {
	const q = `UPDATE books SET deleted = TRUE WHERE id = $1 AND deleted = FALSE`
	cmd, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("book repo: soft-deleted id=%s", id)
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func applyPage(ds *goqu.SelectDataset, page Page) *goqu.SelectDataset {
	if page.Limit > 0 {
		ds = ds.Limit(uint(page.Limit))
	}
	if page.Offset > 0 {
		ds = ds.Offset(uint(page.Offset))
	}
	return ds
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	var price string
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &price, &b.Description, &b.CoverImage, &b.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	b.Price = parsed
	return &b, nil
}

func collectBooks(rows pgx.Rows) ([]domain.Book, error) {
	var result []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) attachCategories(ctx context.Context, books []domain.Book) error {
	if len(books) == 0 {
		return nil
	}
	ids := make([]string, len(books))
	for i := range books {
		ids[i] = books[i].ID
	}
	categories, err := r.categoryIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range books {
		books[i].CategoryIDs = categories[books[i].ID]
	}
	return nil
}

// categoryIDs returns the non-deleted category memberships for the given
// books. Membership in a soft-deleted category never surfaces.
func (r *postgresRepo) categoryIDs(ctx context.Context, bookIDs []string) (map[string][]string, error) {
	const q = `
SELECT bc.book_id::text, bc.category_id::text
FROM book_categories bc
JOIN categories c ON c.id = bc.category_id
WHERE bc.book_id = ANY($1) AND c.deleted = FALSE
ORDER BY bc.category_id
`
	rows, err := r.pool.Query(ctx, q, bookIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]string)
	for rows.Next() {
		var bookID, categoryID string
		if err := rows.Scan(&bookID, &categoryID); err != nil {
			return nil, err
		}
		result[bookID] = append(result[bookID], categoryID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func replaceCategories(ctx context.Context, tx pgx.Tx, bookID string, categoryIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM book_categories WHERE book_id = $1`, bookID); err != nil {
		return err
	}
	for _, categoryID := range categoryIDs {
		if _, err := tx.Exec(ctx, `
INSERT INTO book_categories (book_id, category_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`, bookID, categoryID); err != nil {
			return err
		}
	}
	return nil
}
