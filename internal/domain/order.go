package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderStatusList is the closed set of statuses an order may carry.
var OrderStatusList = []OrderStatus{OrderPending, OrderPaid, OrderDelivered, OrderCancelled}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatusList {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	// Name is resolved from the catalog at read time and never persisted.
	Name string `json:"name,omitempty"`
}

type Order struct {
	ID          string          `json:"id"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalItems  int             `json:"totalItems"`
	Status      OrderStatus     `json:"status"`
	Paid        bool            `json:"paid"`
	Items       []OrderItem     `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
