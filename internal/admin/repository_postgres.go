package admin

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/skfood/thali-backend/internal/order"
)

// Postgres repository reads the same orders table the order package writes.

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(q ListQuery, limit, offset int) ([]order.Order, int, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if q.Status != "" {
		args = append(args, q.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.OrderNumber > 0 {
		args = append(args, q.OrderNumber)
		where = append(where, fmt.Sprintf(`"orderNumber" = $%d`, len(args)))
	}
	if q.OrderID != "" {
		args = append(args, strings.ToLower(q.OrderID))
		where = append(where, fmt.Sprintf(`"orderId" = $%d`, len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY "createdAt" DESC LIMIT $%d OFFSET $%d`,
		order.SelectOrderColumns, cond, len(args)-1, len(args))
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]order.Order, 0, limit)
	for rows.Next() {
		ord, err := order.ScanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, ord)
	}
	return orders, total, rows.Err()
}

func (r *PostgresRepository) CountByStatus(status order.Status) (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE status = $1`, status).Scan(&n)
	return n, err
}

func (r *PostgresRepository) CountAll() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}
