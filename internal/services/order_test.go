package services

import (
	"testing"

	"github.com/yungbote/storefront-backend/internal/types"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{types.OrderStatusPending, types.OrderStatusPaid, true},
		{types.OrderStatusPending, types.OrderStatusCancelled, true},
		{types.OrderStatusPending, types.OrderStatusShipped, false},
		{types.OrderStatusPending, types.OrderStatusDelivered, false},
		{types.OrderStatusPaid, types.OrderStatusShipped, true},
		{types.OrderStatusPaid, types.OrderStatusCancelled, true},
		{types.OrderStatusPaid, types.OrderStatusPending, false},
		{types.OrderStatusShipped, types.OrderStatusDelivered, true},
		{types.OrderStatusShipped, types.OrderStatusCancelled, false},
		{types.OrderStatusDelivered, types.OrderStatusCancelled, false},
		{types.OrderStatusCancelled, types.OrderStatusPending, false},
	}
	for _, tc := range cases {
		if got := transitionAllowed(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("transition %s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestOrderStatusTransitionsUnknownStatus(t *testing.T) {
	if transitionAllowed("refunded", types.OrderStatusPaid) {
		t.Fatalf("unknown source status must not allow transitions")
	}
	if transitionAllowed(types.OrderStatusPending, "refunded") {
		t.Fatalf("unknown target status must not be allowed")
	}
}
