package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/cart"
	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/requestdata"
	"github.com/yungbote/storefront-backend/internal/types"
)

type fakeCartStore struct {
	snapshots map[uuid.UUID][]cart.Item
	saves     int
	clears    int
	failSave  bool
	failLoad  bool
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{snapshots: map[uuid.UUID][]cart.Item{}}
}

func (f *fakeCartStore) Load(ctx context.Context, userID uuid.UUID) ([]cart.Item, error) {
	if f.failLoad {
		return nil, fmt.Errorf("store unavailable")
	}
	return f.snapshots[userID], nil
}

func (f *fakeCartStore) Save(ctx context.Context, userID uuid.UUID, items []cart.Item) error {
	f.saves++
	if f.failSave {
		return fmt.Errorf("store unavailable")
	}
	f.snapshots[userID] = items
	return nil
}

func (f *fakeCartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	f.clears++
	delete(f.snapshots, userID)
	return nil
}

// fakeCatalog overrides only product lookup; everything else panics if called.
type fakeCatalog struct {
	CatalogService
	products map[uuid.UUID]*types.Product
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	return f.products[id], nil
}

func newCartFixture(t *testing.T, store *fakeCartStore) (CartService, context.Context, uuid.UUID, uuid.UUID) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	productID := uuid.New()
	catalog := &fakeCatalog{products: map[uuid.UUID]*types.Product{
		productID: {ID: productID, Name: "mug", Price: 1250, Active: true},
	}}
	var persistence CartPersistence
	if store != nil {
		persistence = store
	}
	svc := NewCartService(nil, log, persistence, catalog)
	userID := uuid.New()
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
	return svc, ctx, userID, productID
}

func TestCartServiceWriteThrough(t *testing.T) {
	store := newFakeCartStore()
	svc, ctx, userID, productID := newCartFixture(t, store)

	items, err := svc.AddToCart(ctx, productID, 2, nil)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("unexpected cart %+v", items)
	}
	if store.saves != 1 {
		t.Fatalf("expected 1 save, got %d", store.saves)
	}
	persisted := store.snapshots[userID]
	if len(persisted) != 1 || persisted[0].ProductID != productID {
		t.Fatalf("snapshot not written: %+v", persisted)
	}
}

func TestCartServiceTemporarySuppressesWrites(t *testing.T) {
	store := newFakeCartStore()
	svc, ctx, userID, productID := newCartFixture(t, store)

	if _, err := svc.AddToCart(ctx, productID, 1, nil); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	savesBefore := store.saves

	if _, err := svc.AddToCartTemporary(ctx, productID, 3, nil); err != nil {
		t.Fatalf("AddToCartTemporary: %v", err)
	}
	if store.saves != savesBefore {
		t.Fatalf("buy-now must not touch the store, saves went %d -> %d", savesBefore, store.saves)
	}
	// The saved cart still holds the original item.
	persisted := store.snapshots[userID]
	if len(persisted) != 1 || persisted[0].Quantity != 1 {
		t.Fatalf("persisted cart mutated by buy-now: %+v", persisted)
	}
}

func TestCartServiceSaveFailureKeepsMemoryState(t *testing.T) {
	store := newFakeCartStore()
	store.failSave = true
	svc, ctx, _, productID := newCartFixture(t, store)

	items, err := svc.AddToCart(ctx, productID, 1, nil)
	if err != nil {
		t.Fatalf("AddToCart should not surface store errors: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("in-memory cart lost on store failure: %+v", items)
	}
}

func TestCartServiceClearAwaitsStore(t *testing.T) {
	store := newFakeCartStore()
	svc, ctx, userID, productID := newCartFixture(t, store)

	if _, err := svc.AddToCart(ctx, productID, 1, nil); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if err := svc.ClearCart(ctx); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	if store.clears != 1 {
		t.Fatalf("expected 1 clear, got %d", store.clears)
	}
	items, err := svc.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart not empty after clear: %+v", items)
	}
	if _, ok := store.snapshots[userID]; ok {
		t.Fatalf("store snapshot survived clear")
	}
}

func TestCartServiceLoadsPersistedCartOnFirstUse(t *testing.T) {
	store := newFakeCartStore()
	svc, ctx, userID, productID := newCartFixture(t, store)
	store.snapshots[userID] = []cart.Item{{ProductID: productID, Name: "mug", Price: 1250, Quantity: 4}}

	items, err := svc.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 4 {
		t.Fatalf("persisted cart not loaded: %+v", items)
	}
}

func TestCartServiceSnapshotIgnoredWhileTemporary(t *testing.T) {
	store := newFakeCartStore()
	svc, ctx, userID, productID := newCartFixture(t, store)

	if _, err := svc.AddToCartTemporary(ctx, productID, 1, nil); err != nil {
		t.Fatalf("AddToCartTemporary: %v", err)
	}
	otherProduct := uuid.New()
	svc.ApplySnapshot(userID, []cart.Item{{ProductID: otherProduct, Name: "hat", Price: 900, Quantity: 1}})

	items, _, err := svc.VisibleCart(ctx, userID)
	if err != nil {
		t.Fatalf("VisibleCart: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != productID {
		t.Fatalf("held item lost to snapshot: %+v", items)
	}
}

func TestCartServiceSnapshotReplacesNormalCart(t *testing.T) {
	store := newFakeCartStore()
	svc, ctx, userID, productID := newCartFixture(t, store)

	if _, err := svc.AddToCart(ctx, productID, 1, nil); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	otherProduct := uuid.New()
	svc.ApplySnapshot(userID, []cart.Item{{ProductID: otherProduct, Name: "hat", Price: 900, Quantity: 2}})

	items, err := svc.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != otherProduct || items[0].Quantity != 2 {
		t.Fatalf("snapshot not applied verbatim: %+v", items)
	}
}

func TestCartServiceAddAfterBuyNowMergesIntoSavedCart(t *testing.T) {
	store := newFakeCartStore()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	widget, gadget, doodad := uuid.New(), uuid.New(), uuid.New()
	catalog := &fakeCatalog{products: map[uuid.UUID]*types.Product{
		widget: {ID: widget, Name: "widget", Price: 1000, Active: true},
		gadget: {ID: gadget, Name: "gadget", Price: 2000, Active: true},
		doodad: {ID: doodad, Name: "doodad", Price: 3000, Active: true},
	}}
	svc := NewCartService(nil, log, store, catalog)
	userID := uuid.New()
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})

	if _, err := svc.AddToCart(ctx, widget, 1, nil); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if _, err := svc.AddToCartTemporary(ctx, gadget, 1, nil); err != nil {
		t.Fatalf("AddToCartTemporary: %v", err)
	}
	items, err := svc.AddToCart(ctx, doodad, 1, nil)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if len(items) != 2 || items[0].ProductID != widget || items[1].ProductID != doodad {
		t.Fatalf("expected [widget doodad] after leaving buy-now, got %+v", items)
	}
	for _, it := range store.snapshots[userID] {
		if it.ProductID == gadget {
			t.Fatalf("buy-now item leaked into the store: %+v", store.snapshots[userID])
		}
	}
	if len(store.snapshots[userID]) != 2 {
		t.Fatalf("persisted cart should hold [widget doodad], got %+v", store.snapshots[userID])
	}
}

func TestCartServiceFinishCheckoutTemporaryRestoresSavedCart(t *testing.T) {
	store := newFakeCartStore()
	svc, ctx, userID, productID := newCartFixture(t, store)

	if _, err := svc.AddToCart(ctx, productID, 2, nil); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if _, err := svc.AddToCartTemporary(ctx, productID, 1, nil); err != nil {
		t.Fatalf("AddToCartTemporary: %v", err)
	}
	if err := svc.FinishCheckout(ctx, userID); err != nil {
		t.Fatalf("FinishCheckout: %v", err)
	}
	items, err := svc.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("saved cart not restored after buy-now checkout: %+v", items)
	}
	if store.clears != 0 {
		t.Fatalf("buy-now checkout must not clear the saved cart")
	}
}

func TestCartServiceFinishCheckoutKeepsCartWhenReloadFails(t *testing.T) {
	store := newFakeCartStore()
	svc, ctx, userID, productID := newCartFixture(t, store)

	if _, err := svc.AddToCart(ctx, productID, 2, nil); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if _, err := svc.AddToCartTemporary(ctx, productID, 1, nil); err != nil {
		t.Fatalf("AddToCartTemporary: %v", err)
	}
	store.failLoad = true

	if err := svc.FinishCheckout(ctx, userID); err != nil {
		t.Fatalf("FinishCheckout should tolerate a failed refresh: %v", err)
	}
	items, err := svc.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("in-memory cart lost on refresh failure: %+v", items)
	}
}

func TestCartServiceRequiresUser(t *testing.T) {
	svc, _, _, productID := newCartFixture(t, newFakeCartStore())
	if _, err := svc.AddToCart(context.Background(), productID, 1, nil); err == nil {
		t.Fatalf("expected error without request data")
	}
}
