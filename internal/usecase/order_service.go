package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"orders-backend/internal/domain"
	"orders-backend/internal/infrastructure/catalog"
)

// placeholderName stands in for items whose product has disappeared from
// the catalog since the order was placed. Reads stay best-effort; only
// creation fails hard on an unknown product.
const placeholderName = "unavailable product"

type OrderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, bool, error)
	List(ctx context.Context, page, limit int, status *domain.OrderStatus) ([]domain.Order, error)
	Count(ctx context.Context, status *domain.OrderStatus) (int, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) (*domain.Order, error)
}

type CatalogClient interface {
	Validate(ctx context.Context, ids []string) ([]catalog.Product, error)
}

type EventPublisher interface {
	OrderCreated(ctx context.Context, o *domain.Order) error
	OrderStatusChanged(ctx context.Context, o *domain.Order, from domain.OrderStatus) error
}

type OrderService struct {
	Repo           OrderRepo
	Catalog        CatalogClient
	Events         EventPublisher // nil when event publishing is disabled
	Policy         domain.TransitionPolicy
	CatalogTimeout time.Duration
}

type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type OrderPage struct {
	Data []domain.Order `json:"data"`
	Meta PageMeta       `json:"meta"`
}

// Create validates the submitted items against the product catalog,
// prices them, and persists the order with its items in one atomic
// write. The catalog call completes and reconciles before any store
// access; no partial order survives a failure in either step.
func (s *OrderService) Create(ctx context.Context, items []domain.OrderItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrBadRequest("items must not be empty")
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" {
			return nil, ErrBadRequest("productId is required")
		}
		if it.Quantity <= 0 {
			return nil, ErrBadRequest("quantity must be positive")
		}
		ids = append(ids, it.ProductID)
	}

	products, err := s.validateProducts(ctx, ids)
	if err != nil {
		return nil, ErrUpstream(err.Error())
	}
	priced, err := Reconcile(items, products)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &domain.Order{
		ID:          uuid.NewString(),
		TotalAmount: priced.TotalAmount,
		TotalItems:  priced.TotalItems,
		Status:      domain.OrderPending,
		Items:       priced.Items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, ErrStorage(err.Error())
	}
	if s.Events != nil {
		_ = s.Events.OrderCreated(ctx, o)
	}
	return o, nil
}

func (s *OrderService) FindAll(ctx context.Context, page, limit int, status *domain.OrderStatus) (*OrderPage, error) {
	if page < 1 {
		return nil, ErrBadRequest("page must be >= 1")
	}
	if limit < 1 {
		return nil, ErrBadRequest("limit must be >= 1")
	}
	data, err := s.Repo.List(ctx, page, limit, status)
	if err != nil {
		return nil, ErrStorage(err.Error())
	}
	total, err := s.Repo.Count(ctx, status)
	if err != nil {
		return nil, ErrStorage(err.Error())
	}
	return &OrderPage{
		Data: data,
		Meta: PageMeta{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

// FindOne returns the order with its items. Item names are resolved from
// the catalog best-effort: a product retired since the order was placed
// gets a placeholder name rather than failing the read.
func (s *OrderService) FindOne(ctx context.Context, id string) (*domain.Order, error) {
	o, ok, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, ErrStorage(err.Error())
	}
	if !ok {
		return nil, ErrNotFound("order")
	}
	s.enrichItemNames(ctx, o)
	return o, nil
}

// ChangeStatus applies the status state machine. Requesting the current
// status is an idempotent no-op and touches the store only for the read.
func (s *OrderService) ChangeStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	o, ok, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, ErrStorage(err.Error())
	}
	if !ok {
		return nil, ErrNotFound("order")
	}
	if o.Status == status {
		return o, nil
	}
	if err := s.Policy.Allowed(o.Status, status); err != nil {
		return nil, ErrBadRequest(err.Error())
	}
	from := o.Status
	updated, err := s.Repo.UpdateStatus(ctx, id, status, time.Now().UTC())
	if err != nil {
		return nil, ErrStorage(err.Error())
	}
	if s.Events != nil {
		_ = s.Events.OrderStatusChanged(ctx, updated, from)
	}
	return updated, nil
}

func (s *OrderService) validateProducts(ctx context.Context, ids []string) ([]catalog.Product, error) {
	timeout := s.CatalogTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Catalog.Validate(cctx, ids)
}

func (s *OrderService) enrichItemNames(ctx context.Context, o *domain.Order) {
	if len(o.Items) == 0 {
		return
	}
	ids := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		ids = append(ids, it.ProductID)
	}
	names := map[string]string{}
	if products, err := s.validateProducts(ctx, ids); err == nil {
		for _, p := range products {
			names[p.ID] = p.Name
		}
	}
	for i := range o.Items {
		if n, ok := names[o.Items[i].ProductID]; ok {
			o.Items[i].Name = n
		} else {
			o.Items[i].Name = placeholderName
		}
	}
}
