package domain

import "testing"

func TestParseOrderStatus(t *testing.T) {
	for _, st := range OrderStatusList {
		got, ok := ParseOrderStatus(string(st))
		if !ok || got != st {
			t.Fatalf("ParseOrderStatus(%q) = %q, %v", st, got, ok)
		}
	}
	if _, ok := ParseOrderStatus("SHIPPED"); ok {
		t.Fatalf("unrecognized status must not parse")
	}
	if _, ok := ParseOrderStatus("pending"); ok {
		t.Fatalf("statuses are case sensitive")
	}
}

func TestPermissivePolicy(t *testing.T) {
	p := PermissivePolicy{}
	for _, from := range OrderStatusList {
		for _, to := range OrderStatusList {
			if err := p.Allowed(from, to); err != nil {
				t.Fatalf("permissive policy rejected %s -> %s: %v", from, to, err)
			}
		}
	}
	if err := p.Allowed(OrderPending, OrderStatus("SHIPPED")); err == nil {
		t.Fatalf("unrecognized target must be rejected")
	}
}

func TestLifecyclePolicy(t *testing.T) {
	p := LifecyclePolicy{}
	allowed := [][2]OrderStatus{
		{OrderPending, OrderPaid},
		{OrderPending, OrderCancelled},
		{OrderPaid, OrderDelivered},
		{OrderPaid, OrderCancelled},
	}
	for _, c := range allowed {
		if err := p.Allowed(c[0], c[1]); err != nil {
			t.Fatalf("lifecycle policy rejected %s -> %s: %v", c[0], c[1], err)
		}
	}
	rejected := [][2]OrderStatus{
		{OrderPending, OrderDelivered},
		{OrderDelivered, OrderPending},
		{OrderDelivered, OrderPaid},
		{OrderCancelled, OrderPaid},
	}
	for _, c := range rejected {
		if err := p.Allowed(c[0], c[1]); err == nil {
			t.Fatalf("lifecycle policy allowed %s -> %s", c[0], c[1])
		}
	}
	if err := p.Allowed(OrderPending, OrderStatus("SHIPPED")); err == nil {
		t.Fatalf("unrecognized target must be rejected")
	}
}
