package purchases

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS purchases (
    seq            INTEGER PRIMARY KEY,
    product_name   TEXT NOT NULL,
    customer_name  TEXT NOT NULL,
    customer_email TEXT,
    quantity       BIGINT NOT NULL,
    price          DOUBLE PRECISION NOT NULL,
    total          DOUBLE PRECISION NOT NULL
)`

// PostgresStore: реализация Store поверх pgx-пула.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema создаёт таблицу, если её нет.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, pgSchema); err != nil {
		return fmt.Errorf("%w: create schema: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// ReplaceAll: DELETE + COPY в одной транзакции, читатели видят либо старый,
// либо новый набор.
func (s *PostgresStore) ReplaceAll(ctx context.Context, records []Purchase) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrStorageUnavailable, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op после Commit

	if _, err := tx.Exec(ctx, `DELETE FROM purchases`); err != nil {
		return fmt.Errorf("%w: delete: %w", ErrStorageUnavailable, err)
	}

	if len(records) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"purchases"},
			[]string{"seq", "product_name", "customer_name", "quantity", "price", "total"},
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				r := records[i]
				return []any{i, r.ProductName, r.CustomerName, r.Quantity, r.Price, r.Total}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("%w: copy: %w", ErrStorageUnavailable, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) ReadAll(ctx context.Context) ([]Purchase, error) {
	rows, err := s.db.Query(ctx, `
SELECT product_name, customer_name, quantity, price, total
FROM purchases
ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	out := []Purchase{}
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ProductName, &p.CustomerName, &p.Quantity, &p.Price, &p.Total); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", ErrStorageUnavailable, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %w", ErrStorageUnavailable, err)
	}
	return out, nil
}

// array_agg(... ORDER BY seq)[1], первое по порядку вставки значение в группе.
// COLLATE "C" даёт тот же порядок имён, что и сравнение строк в Go.
// SUM по numeric: сумма точная, как в GrossOf.
const pgTopPurchasers = `
SELECT customer_name,
       (array_agg(customer_email ORDER BY seq))[1] AS user_email,
       SUM(total::numeric)::double precision       AS total_amount_spent,
       (array_agg(product_name ORDER BY seq))[1]   AS top_product,
       MAX(quantity)                               AS top_quantity,
       MAX(price)                                  AS top_price
FROM purchases
GROUP BY customer_name
ORDER BY total_amount_spent DESC, customer_name COLLATE "C" ASC`

func (s *PostgresStore) TopPurchasers(ctx context.Context) ([]PurchaserSummary, error) {
	rows, err := s.db.Query(ctx, pgTopPurchasers)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	out := []PurchaserSummary{}
	for rows.Next() {
		var ps PurchaserSummary
		if err := rows.Scan(&ps.ID, &ps.UserEmail, &ps.TotalAmountSpent, &ps.TopProduct, &ps.TopQuantity, &ps.TopPrice); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", ErrStorageUnavailable, err)
		}
		ps.UserName = ps.ID
		out = append(out, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %w", ErrStorageUnavailable, err)
	}
	return out, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) Close(context.Context) error {
	s.db.Close()
	return nil
}
