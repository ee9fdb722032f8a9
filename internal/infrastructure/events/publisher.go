package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"orders-backend/internal/domain"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderEvent struct {
	Type        string             `json:"type"`
	OrderID     string             `json:"orderId"`
	Status      domain.OrderStatus `json:"status"`
	FromStatus  domain.OrderStatus `json:"fromStatus,omitempty"`
	TotalAmount string             `json:"totalAmount,omitempty"`
	TotalItems  int                `json:"totalItems,omitempty"`
	At          time.Time          `json:"at"`
}

// Publisher emits order lifecycle events to a kafka topic. With no
// brokers configured it stays disabled and every publish is a no-op.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokersCSV, topic string) *Publisher {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return &Publisher{}
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *Publisher) OrderCreated(ctx context.Context, o *domain.Order) error {
	return p.publish(ctx, OrderEvent{
		Type:        EventOrderCreated,
		OrderID:     o.ID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount.String(),
		TotalItems:  o.TotalItems,
		At:          time.Now().UTC(),
	})
}

func (p *Publisher) OrderStatusChanged(ctx context.Context, o *domain.Order, from domain.OrderStatus) error {
	return p.publish(ctx, OrderEvent{
		Type:       EventOrderStatusChanged,
		OrderID:    o.ID,
		Status:     o.Status,
		FromStatus: from,
		At:         time.Now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, ev OrderEvent) error {
	if p.writer == nil {
		return nil
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: data,
		Time:  time.Now().UTC(),
	})
}
