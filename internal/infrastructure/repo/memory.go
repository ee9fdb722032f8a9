package repo

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"orders-backend/internal/domain"
)

// MemoryOrderRepo backs dev mode and tests. Orders are stored by value
// so callers cannot mutate persisted state behind the lock.
type MemoryOrderRepo struct {
	mu sync.RWMutex
	m  map[string]domain.Order
}

func NewMemoryOrderRepo() *MemoryOrderRepo {
	return &MemoryOrderRepo{m: make(map[string]domain.Order)}
}

func (r *MemoryOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	for i := range cp.Items {
		cp.Items[i].Name = ""
	}
	r.m[o.ID] = cp
	return nil
}

func (r *MemoryOrderRepo) Get(ctx context.Context, id string) (*domain.Order, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.m[id]
	if !ok {
		return nil, false, nil
	}
	cp := o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp, true, nil
}

func (r *MemoryOrderRepo) List(ctx context.Context, page, limit int, status *domain.OrderStatus) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.matching(status)
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *MemoryOrderRepo) Count(ctx context.Context, status *domain.OrderStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matching(status)), nil
}

func (r *MemoryOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.m[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	r.m[id] = o
	cp := o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp, nil
}

// matching is called with the lock held.
func (r *MemoryOrderRepo) matching(status *domain.OrderStatus) []domain.Order {
	out := make([]domain.Order, 0, len(r.m))
	for _, o := range r.m {
		if status != nil && o.Status != *status {
			continue
		}
		// list rows carry no items, matching the postgres shape
		o.Items = nil
		out = append(out, o)
	}
	return out
}
