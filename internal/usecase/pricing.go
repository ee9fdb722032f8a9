package usecase

import (
	"github.com/shopspring/decimal"

	"orders-backend/internal/domain"
	"orders-backend/internal/infrastructure/catalog"
)

// PricedOrder is the result of reconciling submitted items against the
// catalog: authoritative per-item prices, derived totals, and item names
// for the response.
type PricedOrder struct {
	TotalAmount decimal.Decimal
	TotalItems  int
	Items       []domain.OrderItem
}

// Reconcile matches each submitted item against the catalog records by
// product id. It fails on the first item whose id the catalog did not
// return. Pure function; duplicated product ids are priced per line.
func Reconcile(items []domain.OrderItem, products []catalog.Product) (PricedOrder, error) {
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := PricedOrder{
		TotalAmount: decimal.Zero,
		Items:       make([]domain.OrderItem, 0, len(items)),
	}
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			return PricedOrder{}, ErrUnknownProduct(it.ProductID)
		}
		line := p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		out.TotalAmount = out.TotalAmount.Add(line)
		out.TotalItems += it.Quantity
		out.Items = append(out.Items, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     p.Price,
			Name:      p.Name,
		})
	}
	return out, nil
}
