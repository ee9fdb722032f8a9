package domain

import "fmt"

// TransitionPolicy decides whether an order may move from one status to
// another. Same-status requests are handled by the caller as a no-op and
// never reach the policy.
type TransitionPolicy interface {
	Allowed(from, to OrderStatus) error
}

// PermissivePolicy accepts any recognized target status from any state.
type PermissivePolicy struct{}

func (PermissivePolicy) Allowed(from, to OrderStatus) error {
	if _, ok := ParseOrderStatus(string(to)); !ok {
		return fmt.Errorf("unrecognized status %q", to)
	}
	return nil
}

// LifecyclePolicy restricts transitions to the order lifecycle graph:
// PENDING -> PAID | CANCELLED, PAID -> DELIVERED | CANCELLED.
// DELIVERED and CANCELLED are terminal.
type LifecyclePolicy struct{}

var lifecycleEdges = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderPaid, OrderCancelled},
	OrderPaid:    {OrderDelivered, OrderCancelled},
}

func (LifecyclePolicy) Allowed(from, to OrderStatus) error {
	if _, ok := ParseOrderStatus(string(to)); !ok {
		return fmt.Errorf("unrecognized status %q", to)
	}
	for _, next := range lifecycleEdges[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("cannot transition order from %s to %s", from, to)
}
