package cart

import (
	"testing"

	"github.com/google/uuid"
)

var (
	p1 = uuid.New()
	p2 = uuid.New()
	p3 = uuid.New()
)

func item(id uuid.UUID, name string, qty int) Item {
	return Item{ProductID: id, Name: name, Price: 1000, Quantity: qty}
}

func TestAddItemMergesByProductID(t *testing.T) {
	s := NewSession()
	s.AddItem(item(p1, "widget", 2))
	s.AddItem(item(p1, "widget", 3))

	got := s.Items()
	if len(got) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got))
	}
	if got[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", got[0].Quantity)
	}
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	s := NewSession()
	s.AddItem(item(p1, "widget", 1))
	s.AddItem(item(p2, "gadget", 1))
	s.AddItem(item(p1, "widget", 1))

	got := s.Items()
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	if got[0].ProductID != p1 || got[1].ProductID != p2 {
		t.Fatalf("insertion order not preserved: %v", got)
	}
}

func TestHoldSingleThenAddItemRevealsUnderlyingCart(t *testing.T) {
	s := NewSession()
	s.ApplySnapshot([]Item{item(p1, "widget", 1)})

	s.HoldSingle(item(p2, "gadget", 1))
	got := s.Items()
	if len(got) != 1 || got[0].ProductID != p2 {
		t.Fatalf("buy-now cart should be exactly the held item, got %v", got)
	}
	if !s.Temporary() {
		t.Fatalf("expected temporary mode after HoldSingle")
	}

	// Leaving buy-now mode: the held item is dropped, the underlying cart
	// resurfaces and the new item lands on top of it.
	s.AddItem(item(p3, "doodad", 1))
	if s.Temporary() {
		t.Fatalf("AddItem should exit temporary mode")
	}
	got = s.Items()
	if len(got) != 2 || got[0].ProductID != p1 || got[1].ProductID != p3 {
		t.Fatalf("expected [p1 p3] after exiting buy-now, got %v", got)
	}
}

func TestReleaseHoldRestoresUnderlyingCart(t *testing.T) {
	s := NewSession()
	s.AddItem(item(p1, "widget", 2))

	s.HoldSingle(item(p2, "gadget", 1))
	s.ReleaseHold()
	if s.Temporary() {
		t.Fatalf("expected temporary mode off after ReleaseHold")
	}
	got := s.Items()
	if len(got) != 1 || got[0].ProductID != p1 || got[0].Quantity != 2 {
		t.Fatalf("underlying cart not restored: %v", got)
	}
}

func TestHeldItemMutationsLeaveUnderlyingCartAlone(t *testing.T) {
	s := NewSession()
	s.AddItem(item(p1, "widget", 2))
	s.HoldSingle(item(p2, "gadget", 1))

	s.SetQuantity(p2, 3)
	got := s.Items()
	if len(got) != 1 || got[0].Quantity != 3 {
		t.Fatalf("held item quantity not updated: %v", got)
	}

	s.RemoveItem(p2)
	if len(s.Items()) != 0 {
		t.Fatalf("held item not removed: %v", s.Items())
	}

	s.ReleaseHold()
	got = s.Items()
	if len(got) != 1 || got[0].ProductID != p1 || got[0].Quantity != 2 {
		t.Fatalf("underlying cart disturbed by held-item edits: %v", got)
	}
}

func TestRemoveItemMissingIDIsNoop(t *testing.T) {
	s := NewSession()
	s.AddItem(item(p1, "widget", 1))
	s.RemoveItem(uuid.New())

	got := s.Items()
	if len(got) != 1 || got[0].ProductID != p1 {
		t.Fatalf("cart changed by removing a missing id: %v", got)
	}
}

func TestSetQuantityStoresValueVerbatim(t *testing.T) {
	s := NewSession()
	s.AddItem(item(p1, "widget", 2))

	cases := []struct {
		name string
		qty  int
	}{
		{name: "zero_kept", qty: 0},
		{name: "negative_kept", qty: -3},
		{name: "positive", qty: 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s.SetQuantity(p1, tc.qty)
			got := s.Items()
			if len(got) != 1 {
				t.Fatalf("line disappeared at quantity %d", tc.qty)
			}
			if got[0].Quantity != tc.qty {
				t.Fatalf("expected quantity %d, got %d", tc.qty, got[0].Quantity)
			}
		})
	}
}

func TestSetQuantityMissingIDIsNoop(t *testing.T) {
	s := NewSession()
	s.AddItem(item(p1, "widget", 2))
	s.SetQuantity(uuid.New(), 9)

	got := s.Items()
	if got[0].Quantity != 2 {
		t.Fatalf("quantity changed for missing id: %v", got)
	}
}

func TestClearEmptiesAndExitsTemporary(t *testing.T) {
	s := NewSession()
	s.AddItem(item(p1, "widget", 1))
	s.HoldSingle(item(p2, "gadget", 1))

	s.Clear()
	if len(s.Items()) != 0 {
		t.Fatalf("expected empty cart after Clear")
	}
	if s.Temporary() {
		t.Fatalf("expected temporary mode off after Clear")
	}
}

func TestSnapshotDiscardedWhileTemporary(t *testing.T) {
	s := NewSession()
	s.HoldSingle(item(p2, "gadget", 1))

	// A stale snapshot from the store must not disturb the held item.
	s.ApplySnapshot([]Item{item(p1, "widget", 4)})
	got := s.Items()
	if len(got) != 1 || got[0].ProductID != p2 {
		t.Fatalf("snapshot leaked into buy-now cart: %v", got)
	}
}

func TestSnapshotReplacesVerbatimWhenNotTemporary(t *testing.T) {
	s := NewSession()
	s.AddItem(item(p1, "widget", 9))

	s.ApplySnapshot([]Item{item(p2, "gadget", 1), item(p3, "doodad", 2)})
	got := s.Items()
	if len(got) != 2 || got[0].ProductID != p2 || got[1].ProductID != p3 {
		t.Fatalf("snapshot should replace the cart verbatim, got %v", got)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	s := NewSession()
	s.AddItem(item(p1, "widget", 1))

	got := s.Items()
	got[0].Quantity = 99
	if s.Items()[0].Quantity != 1 {
		t.Fatalf("Items() leaked internal slice")
	}
}
