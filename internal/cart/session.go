// Package cart implements the in-memory cart session and its reconciliation
// rules against the durable store. A session tracks the visible cart plus a
// "buy now" mode that pins the cart to a single held item without touching
// what the store has accumulated.
package cart

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Item is one visible cart line. Identity is the product id: two adds of the
// same product merge into one line even when Attributes (size, color) differ,
// with the last add winning the attribute values.
type Item struct {
	ProductID  uuid.UUID      `json:"product_id"`
	Name       string         `json:"name"`
	Price      int64          `json:"price"`
	ImageURL   string         `json:"image_url,omitempty"`
	Quantity   int            `json:"quantity"`
	Attributes datatypes.JSON `json:"attributes,omitempty"`
}

// Session is the cart state for one user. It is not safe for concurrent use;
// the owning service serializes access. While temporary is set the held item
// is the entire visible cart; items keeps the real cart untouched underneath.
type Session struct {
	items     []Item
	temporary bool
	held      *Item
}

func NewSession() *Session {
	return &Session{}
}

// Items returns a copy of the visible cart in insertion order. In buy-now mode
// that is just the held item, never the underlying cart.
func (s *Session) Items() []Item {
	if s.temporary {
		if s.held == nil {
			return []Item{}
		}
		return []Item{*s.held}
	}
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Session) Temporary() bool {
	return s.temporary
}

// AddItem leaves buy-now mode and merges the item into the underlying cart,
// which resurfaces intact; the held item is dropped, not merged. An existing
// line with the same product id absorbs the added quantity; attributes and
// price snapshot from the incoming item. No upper bound on quantity is
// enforced here, stock limits are the caller's concern.
func (s *Session) AddItem(item Item) {
	s.temporary = false
	s.held = nil
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			merged := item
			merged.Quantity = s.items[i].Quantity + item.Quantity
			s.items[i] = merged
			return
		}
	}
	s.items = append(s.items, item)
}

// RemoveItem drops the line with the given product id. Absent ids are a no-op.
// In buy-now mode only the held item is reachable; the underlying cart is not.
func (s *Session) RemoveItem(productID uuid.UUID) {
	if s.temporary {
		if s.held != nil && s.held.ProductID == productID {
			s.held = nil
		}
		return
	}
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// SetQuantity stores quantity verbatim for the matching line, including zero
// and below. Callers that want a line gone must call RemoveItem; nothing is
// auto-removed here.
func (s *Session) SetQuantity(productID uuid.UUID, quantity int) {
	if s.temporary {
		if s.held != nil && s.held.ProductID == productID {
			s.held.Quantity = quantity
		}
		return
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart and leaves buy-now mode.
func (s *Session) Clear() {
	s.temporary = false
	s.held = nil
	s.items = nil
}

// HoldSingle enters buy-now mode: the visible cart becomes exactly [item]
// until AddItem, ReleaseHold or Clear ends the mode. The underlying cart is
// left alone so leaving the mode reveals it unchanged.
func (s *Session) HoldSingle(item Item) {
	held := item
	s.temporary = true
	s.held = &held
}

// ReleaseHold leaves buy-now mode and discards the held item, revealing the
// cart as it stood before HoldSingle.
func (s *Session) ReleaseHold() {
	s.temporary = false
	s.held = nil
}

// ApplySnapshot reconciles a fresh snapshot from the durable store. In buy-now
// mode the snapshot is discarded and the held item stays the visible cart;
// otherwise the snapshot replaces the cart verbatim (last writer wins, no
// merge).
func (s *Session) ApplySnapshot(items []Item) {
	if s.temporary {
		return
	}
	s.items = make([]Item, len(items))
	copy(s.items, items)
}
