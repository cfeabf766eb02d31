package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userSeed struct {
	Email string
	Name  string
}

type bookSeed struct {
	Title       string
	Author      string
	ISBN        string
	Price       string
	Description string
	Categories  []string
}

// Apply inserts basic seed data for manual testing. It is idempotent: users
// upsert by email, categories by name, books by ISBN.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	users := []userSeed{
		{Email: "alice@example.com", Name: "Alice"},
		{Email: "bob@example.com", Name: "Bob"},
	}
	for _, u := range users {
		if _, err := ensureUser(ctx, pool, u); err != nil {
			return fmt.Errorf("ensure user %s: %w", u.Email, err)
		}
	}

	categoryIDs := map[string]string{}
	for _, name := range []string{"Fantasy", "Science Fiction", "Classics"} {
		id, err := ensureCategory(ctx, pool, name)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		categoryIDs[name] = id
	}

	books := []bookSeed{
		{
			Title:       "The Hobbit",
			Author:      "J.R.R. Tolkien",
			ISBN:        "978-0547928227",
			Price:       "14.99",
			Description: "Bilbo Baggins is swept into a quest for treasure.",
			Categories:  []string{"Fantasy", "Classics"},
		},
		{
			Title:       "Nineteen Eighty-Four",
			Author:      "George Orwell",
			ISBN:        "978-0451524935",
			Price:       "9.99",
			Description: "A dystopia of surveillance and doublethink.",
			Categories:  []string{"Science Fiction", "Classics"},
		},
		{
			Title:       "Dune",
			Author:      "Frank Herbert",
			ISBN:        "978-0441172719",
			Price:       "10.99",
			Description: "The desert planet Arrakis and its spice.",
			Categories:  []string{"Science Fiction"},
		},
	}
	for _, b := range books {
		if err := upsertBook(ctx, pool, b, categoryIDs); err != nil {
			return fmt.Errorf("upsert book %s: %w", b.ISBN, err)
		}
	}

	return nil
}

// ensureUser also provisions the user's cart so the API works immediately.
func ensureUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) (string, error) {
	const q = `
INSERT INTO users (email, name)
VALUES ($1, $2)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, u.Email, u.Name).Scan(&id); err != nil {
		return "", err
	}
	if _, err := pool.Exec(ctx, `INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	const q = `
INSERT INTO categories (name)
VALUES ($1)
ON CONFLICT (name) WHERE NOT deleted DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertBook(ctx context.Context, pool *pgxpool.Pool, b bookSeed, categoryIDs map[string]string) error {
	var id string
	err := pool.QueryRow(ctx, `
INSERT INTO books (title, author, isbn, price, description)
VALUES ($1, $2, $3, $4::numeric, NULLIF($5, ''))
ON CONFLICT (isbn) WHERE NOT deleted DO UPDATE
SET title = EXCLUDED.title,
    author = EXCLUDED.author,
    price = EXCLUDED.price,
    description = EXCLUDED.description
RETURNING id::text
`, b.Title, b.Author, b.ISBN, b.Price, b.Description).Scan(&id)
	if err != nil {
		return err
	}

	for _, name := range b.Categories {
		categoryID, ok := categoryIDs[name]
		if !ok {
			return fmt.Errorf("unknown category %q", name)
		}
		if _, err := pool.Exec(ctx, `
INSERT INTO book_categories (book_id, category_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`, id, categoryID); err != nil {
			return err
		}
	}
	return nil
}
