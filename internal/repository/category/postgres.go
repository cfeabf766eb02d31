package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"online-bookstore/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name, description)
VALUES ($1, NULLIF($2, ''))
RETURNING id::text, created_at
`
	var c domain.Category
	if err := r.pool.QueryRow(ctx, q, in.Name, in.Description).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Description = in.Description
	return &c, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), created_at
FROM categories
WHERE id = $1 AND deleted = FALSE
`
	var c domain.Category
	err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), created_at
FROM categories
WHERE deleted = FALSE
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in CreateCategoryInput) (*domain.Category, error) {
	const q = `
UPDATE categories
SET name = $1,
    description = NULLIF($2, '')
WHERE id = $3 AND deleted = FALSE
RETURNING id::text, created_at
`
	var c domain.Category
	if err := r.pool.QueryRow(ctx, q, in.Name, in.Description, id).Scan(&c.ID, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c.Name = in.Name
	c.Description = in.Description
	return &c, nil
}

func (r *postgresRepo) SoftDelete(ctx context.Context, id string) error {
	const q = `UPDATE categories SET deleted = TRUE WHERE id = $1 AND deleted = FALSE`
	cmd, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
