package order

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

var ErrNotFound = errors.New("order not found")

// StatusUpdate carries the fields stamped together with a transition. Empty
// strings leave the stored value untouched.
type StatusUpdate struct {
	RazorpayPaymentID string
	RazorpaySignature string
	EstimatedDelivery string
	DeliveredAt       string
}

type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id string) (Order, error)
	ListByUser(userID int) ([]Order, error)
	SetGatewayOrderID(id, razorpayOrderID string) error
	// CompareAndSetStatus moves the order from `from` to `to` only if its
	// stored status still equals `from`. It reports false when the order
	// exists but the status no longer matches, so callers can re-read and
	// decide whether a concurrent writer already did the work.
	CompareAndSetStatus(id string, from, to Status, set StatusUpdate) (Order, bool, error)
}

// InMemoryRepository for tests
type InMemoryRepository struct {
	mu      sync.Mutex
	data    map[string]Order
	nextSeq int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{data: map[string]Order{}, nextSeq: 100001}
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ord.ID == "" {
		return Order{}, fmt.Errorf("order id required")
	}
	ord.OrderNumber = r.nextSeq
	r.nextSeq++
	if ord.CreatedAt == "" {
		ord.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	r.data[ord.ID] = ord
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, ok := r.data[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, 0)
	for _, ord := range r.data {
		if ord.UserID == userID {
			out = append(out, ord)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (r *InMemoryRepository) SetGatewayOrderID(id, razorpayOrderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	ord.RazorpayOrderID = razorpayOrderID
	r.data[id] = ord
	return nil
}

func (r *InMemoryRepository) CompareAndSetStatus(id string, from, to Status, set StatusUpdate) (Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, ok := r.data[id]
	if !ok {
		return Order{}, false, ErrNotFound
	}
	if ord.Status != from {
		return Order{}, false, nil
	}
	ord.Status = to
	if set.RazorpayPaymentID != "" {
		ord.RazorpayPaymentID = set.RazorpayPaymentID
	}
	if set.RazorpaySignature != "" {
		ord.RazorpaySignature = set.RazorpaySignature
	}
	if set.EstimatedDelivery != "" {
		ord.EstimatedDelivery = set.EstimatedDelivery
	}
	if set.DeliveredAt != "" {
		ord.DeliveredAt = set.DeliveredAt
	}
	r.data[id] = ord
	return ord, true, nil
}
