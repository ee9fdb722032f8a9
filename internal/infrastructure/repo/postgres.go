package repo

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"orders-backend/internal/domain"
)

type PostgresOrderRepo struct {
	db *sql.DB
}

// OpenPostgres connects, verifies the connection, and bootstraps the
// schema. Close releases the pool on shutdown.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresOrderRepo, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	r := &PostgresOrderRepo{db: db}
	if err := r.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *PostgresOrderRepo) Close() error {
	return r.db.Close()
}

func (r *PostgresOrderRepo) init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		total_amount NUMERIC(14,2) NOT NULL,
		total_items INT NOT NULL,
		status TEXT NOT NULL,
		paid BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);`)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id),
		product_id TEXT NOT NULL,
		quantity INT NOT NULL,
		price NUMERIC(14,2) NOT NULL
	);`)
	return err
}

// Create writes the order and its items in one transaction. Either all
// rows land or none do.
func (r *PostgresOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	_, err = tx.ExecContext(ctx, `INSERT INTO orders (id,total_amount,total_items,status,paid,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		o.ID, o.TotalAmount, o.TotalItems, string(o.Status), o.Paid, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO order_items (order_id,product_id,quantity,price) VALUES ($1,$2,$3,$4)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, it := range o.Items {
		if _, err := stmt.ExecContext(ctx, o.ID, it.ProductID, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PostgresOrderRepo) Get(ctx context.Context, id string) (*domain.Order, bool, error) {
	var o domain.Order
	err := r.db.QueryRowContext(ctx, `SELECT id,total_amount,total_items,status,paid,created_at,updated_at
		FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.TotalAmount, &o.TotalItems, (*string)(&o.Status), &o.Paid, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT product_id,quantity,price FROM order_items WHERE order_id=$1 ORDER BY id`, id)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, false, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return &o, true, nil
}

func (r *PostgresOrderRepo) List(ctx context.Context, page, limit int, status *domain.OrderStatus) ([]domain.Order, error) {
	var (
		rows *sql.Rows
		err  error
	)
	offset := (page - 1) * limit
	if status != nil {
		rows, err = r.db.QueryContext(ctx, `SELECT id,total_amount,total_items,status,paid,created_at,updated_at
			FROM orders WHERE status=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, string(*status), limit, offset)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT id,total_amount,total_items,status,paid,created_at,updated_at
			FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Order, 0, limit)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.TotalAmount, &o.TotalItems, (*string)(&o.Status), &o.Paid, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresOrderRepo) Count(ctx context.Context, status *domain.OrderStatus) (int, error) {
	var total int
	var err error
	if status != nil {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM orders WHERE status=$1`, string(*status)).Scan(&total)
	} else {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM orders`).Scan(&total)
	}
	return total, err
}

func (r *PostgresOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) (*domain.Order, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET status=$2, updated_at=$3 WHERE id=$1`,
		id, string(status), updatedAt)
	if err != nil {
		return nil, err
	}
	o, ok, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sql.ErrNoRows
	}
	return o, nil
}
