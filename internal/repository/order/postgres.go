package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"online-bookstore/internal/domain"
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

// Create runs the order insert, the item inserts and the cart clear in a
// single transaction, so a persistence failure leaves no partial order and a
// committed order always comes with an emptied cart.
func (r *postgresRepo) Create(ctx context.Context, o domain.Order, clearCartID string) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
INSERT INTO orders (id, user_id, status, total, shipping_address, created_at)
VALUES ($1, $2, $3, $4::numeric, $5, $6)
`, o.ID, o.UserID, string(o.Status), o.Total.String(), o.ShippingAddress, o.CreatedAt); err != nil {
		r.logger.Printf("order repo: insert order user_id=%s error=%v", o.UserID, err)
		return nil, err
	}

	for _, item := range o.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (id, order_id, book_id, quantity, price)
VALUES ($1, $2, $3, $4, $5::numeric)
`, item.ID, item.OrderID, item.BookID, item.Quantity, item.Price.String()); err != nil {
			r.logger.Printf("order repo: insert item order_id=%s book_id=%s error=%v", item.OrderID, item.BookID, err)
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, clearCartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s user_id=%s items=%d total=%s", o.ID, o.UserID, len(o.Items), o.Total.String())
	return &o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, status, total::text, shipping_address, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.itemsOf(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *postgresRepo) GetByIDAndUser(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, status, total::text, shipping_address, created_at
FROM orders
WHERE id = $1 AND user_id = $2
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, orderID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.Items, err = r.itemsOf(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) GetItem(ctx context.Context, itemID, orderID, userID string) (*domain.OrderItem, error) {
	const q = `
SELECT oi.id::text, oi.order_id::text, oi.book_id::text, oi.quantity, oi.price::text
FROM order_items oi
JOIN orders o ON o.id = oi.order_id
WHERE oi.id = $1 AND oi.order_id = $2 AND o.user_id = $3
`
	item, err := scanOrderItem(r.pool.QueryRow(ctx, q, itemID, orderID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $1
WHERE id = $2
RETURNING id::text, user_id::text, status, total::text, shipping_address, created_at
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, string(status), orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.Items, err = r.itemsOf(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) itemsOf(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT id::text, order_id::text, book_id::text, quantity, price::text
FROM order_items
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var status, total string
	if err := row.Scan(&o.ID, &o.UserID, &status, &total, &o.ShippingAddress, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	parsed, err := decimal.NewFromString(total)
	if err != nil {
		return nil, err
	}
	o.Total = parsed
	return &o, nil
}

func scanOrderItem(row pgx.Row) (*domain.OrderItem, error) {
	var item domain.OrderItem
	var price string
	if err := row.Scan(&item.ID, &item.OrderID, &item.BookID, &item.Quantity, &price); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	item.Price = parsed
	return &item, nil
}
