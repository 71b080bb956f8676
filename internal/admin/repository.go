package admin

import (
	"sort"
	"strings"

	"github.com/skfood/thali-backend/internal/order"
)

type Repository interface {
	// List returns one page of matching orders, newest first, plus the
	// total match count for pagination.
	List(q ListQuery, limit, offset int) ([]order.Order, int, error)
	CountByStatus(status order.Status) (int, error)
	CountAll() (int, error)
}

// InMemoryRepository for tests
type InMemoryRepository struct {
	orders []order.Order
}

func NewInMemoryRepository(seed []order.Order) *InMemoryRepository {
	return &InMemoryRepository{orders: seed}
}

func (r *InMemoryRepository) List(q ListQuery, limit, offset int) ([]order.Order, int, error) {
	matched := make([]order.Order, 0)
	for _, ord := range r.orders {
		if q.Status != "" && ord.Status != q.Status {
			continue
		}
		if q.OrderNumber > 0 && ord.OrderNumber != q.OrderNumber {
			continue
		}
		if q.OrderID != "" && !strings.EqualFold(ord.ID, q.OrderID) {
			continue
		}
		matched = append(matched, ord)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt > matched[j].CreatedAt })

	total := len(matched)
	if offset >= total {
		return []order.Order{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *InMemoryRepository) CountByStatus(status order.Status) (int, error) {
	n := 0
	for _, ord := range r.orders {
		if ord.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryRepository) CountAll() (int, error) {
	return len(r.orders), nil
}
