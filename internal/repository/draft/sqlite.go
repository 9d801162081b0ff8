package draft

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"storefront-orders/internal/domain"
)

type sqliteRepo struct {
	db     *sql.DB
	logger *log.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	payload TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);
CREATE TABLE IF NOT EXISTS cart (
	slot INTEGER PRIMARY KEY CHECK (slot = 1),
	payload TEXT NOT NULL
);
`

// OpenSQLite opens (and initializes) the draft database at path.
func OpenSQLite(path string, logger *log.Logger) (Repository, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open draft db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init draft db: %w", err)
	}
	return &sqliteRepo{db: db, logger: logger}, nil
}

func (r *sqliteRepo) AppendOrder(ctx context.Context, order domain.OrderDraft) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode draft order: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO orders (payload) VALUES (?)`, string(payload)); err != nil {
		r.logger.Printf("draft repo: append error=%v", err)
		return fmt.Errorf("append draft order: %w", err)
	}
	r.logger.Printf("draft repo: append city=%s items=%d", order.City, len(order.Items))
	return nil
}

func (r *sqliteRepo) ListOrders(ctx context.Context) ([]domain.OrderDraft, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payload FROM orders ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list draft orders: %w", err)
	}
	defer rows.Close()

	var result []domain.OrderDraft
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var order domain.OrderDraft
		if err := json.Unmarshal([]byte(payload), &order); err != nil {
			return nil, fmt.Errorf("decode draft order: %w", err)
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func (r *sqliteRepo) SaveCart(ctx context.Context, items []domain.CartItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO cart (slot, payload) VALUES (1, ?) ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload`,
		string(payload))
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (r *sqliteRepo) LoadCart(ctx context.Context) ([]domain.CartItem, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM cart WHERE slot = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var items []domain.CartItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (r *sqliteRepo) ClearCart(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart WHERE slot = 1`); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
