package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/cart"
	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/requestdata"
)

// CartPersistence is the durable collaborator. The redis client satisfies it;
// tests swap in a fake.
type CartPersistence interface {
	Load(ctx context.Context, userID uuid.UUID) ([]cart.Item, error)
	Save(ctx context.Context, userID uuid.UUID, items []cart.Item) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type CartService interface {
	GetCart(ctx context.Context) ([]cart.Item, error)
	AddToCart(ctx context.Context, productID uuid.UUID, quantity int, attributes datatypes.JSON) ([]cart.Item, error)
	AddToCartTemporary(ctx context.Context, productID uuid.UUID, quantity int, attributes datatypes.JSON) ([]cart.Item, error)
	RemoveFromCart(ctx context.Context, productID uuid.UUID) ([]cart.Item, error)
	UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) ([]cart.Item, error)
	ClearCart(ctx context.Context) error
	// ApplySnapshot is the reconciliation callback the persistence forwarder
	// invokes when another instance writes a snapshot for this user.
	ApplySnapshot(userID uuid.UUID, items []cart.Item)
	// VisibleCart reads the cart for a specific user without request data;
	// checkout uses it inside its own transaction.
	VisibleCart(ctx context.Context, userID uuid.UUID) ([]cart.Item, bool, error)
	FinishCheckout(ctx context.Context, userID uuid.UUID) error
}

type userCart struct {
	mu      sync.Mutex
	session *cart.Session
	loaded  bool
}

type cartService struct {
	db      *gorm.DB
	log     *logger.Logger
	store   CartPersistence
	catalog CatalogService

	mu    sync.Mutex
	carts map[uuid.UUID]*userCart
}

func NewCartService(db *gorm.DB, log *logger.Logger, store CartPersistence, catalog CatalogService) CartService {
	serviceLog := log.With("service", "CartService")
	return &cartService{
		db:      db,
		log:     serviceLog,
		store:   store,
		catalog: catalog,
		carts:   map[uuid.UUID]*userCart{},
	}
}

func (cs *cartService) cartFor(userID uuid.UUID) *userCart {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	uc, ok := cs.carts[userID]
	if !ok {
		uc = &userCart{session: cart.NewSession()}
		cs.carts[userID] = uc
	}
	return uc
}

func (cs *cartService) userID(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("unauthorized")
	}
	return rd.UserID, nil
}

// ensureLoaded pulls the persisted snapshot the first time this instance sees
// the user. Callers hold uc.mu.
func (cs *cartService) ensureLoaded(ctx context.Context, userID uuid.UUID, uc *userCart) {
	if uc.loaded {
		return
	}
	uc.loaded = true
	if cs.store == nil {
		return
	}
	items, err := cs.store.Load(ctx, userID)
	if err != nil {
		cs.log.Warn("Failed to load persisted cart (starting empty)", "user_id", userID.String(), "error", err)
		return
	}
	uc.session.ApplySnapshot(items)
}

// persist writes through the current cart. Temporary mode suppresses writes
// so buy-now never pollutes the durable cart. Failures are logged only; the
// in-memory cart stays the visible truth until the next snapshot arrives.
func (cs *cartService) persist(ctx context.Context, userID uuid.UUID, uc *userCart) {
	if cs.store == nil || uc.session.Temporary() {
		return
	}
	if err := cs.store.Save(ctx, userID, uc.session.Items()); err != nil {
		cs.log.Warn("Cart write-through failed", "user_id", userID.String(), "error", err)
	}
}

func (cs *cartService) GetCart(ctx context.Context) ([]cart.Item, error) {
	userID, err := cs.userID(ctx)
	if err != nil {
		return nil, err
	}
	uc := cs.cartFor(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	cs.ensureLoaded(ctx, userID, uc)
	return uc.session.Items(), nil
}

func (cs *cartService) buildItem(ctx context.Context, productID uuid.UUID, quantity int, attributes datatypes.JSON) (cart.Item, error) {
	if quantity <= 0 {
		return cart.Item{}, fmt.Errorf("quantity must be at least 1")
	}
	product, err := cs.catalog.GetProduct(ctx, productID)
	if err != nil {
		return cart.Item{}, err
	}
	if product == nil {
		return cart.Item{}, fmt.Errorf("product not found")
	}
	return cart.Item{
		ProductID:  product.ID,
		Name:       product.Name,
		Price:      product.Price,
		ImageURL:   product.ImageURL,
		Quantity:   quantity,
		Attributes: attributes,
	}, nil
}

func (cs *cartService) AddToCart(ctx context.Context, productID uuid.UUID, quantity int, attributes datatypes.JSON) ([]cart.Item, error) {
	userID, err := cs.userID(ctx)
	if err != nil {
		return nil, err
	}
	item, err := cs.buildItem(ctx, productID, quantity, attributes)
	if err != nil {
		return nil, err
	}
	uc := cs.cartFor(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	cs.ensureLoaded(ctx, userID, uc)
	uc.session.AddItem(item)
	cs.persist(ctx, userID, uc)
	return uc.session.Items(), nil
}

func (cs *cartService) AddToCartTemporary(ctx context.Context, productID uuid.UUID, quantity int, attributes datatypes.JSON) ([]cart.Item, error) {
	userID, err := cs.userID(ctx)
	if err != nil {
		return nil, err
	}
	item, err := cs.buildItem(ctx, productID, quantity, attributes)
	if err != nil {
		return nil, err
	}
	uc := cs.cartFor(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	cs.ensureLoaded(ctx, userID, uc)
	uc.session.HoldSingle(item)
	return uc.session.Items(), nil
}

func (cs *cartService) RemoveFromCart(ctx context.Context, productID uuid.UUID) ([]cart.Item, error) {
	userID, err := cs.userID(ctx)
	if err != nil {
		return nil, err
	}
	uc := cs.cartFor(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	cs.ensureLoaded(ctx, userID, uc)
	uc.session.RemoveItem(productID)
	cs.persist(ctx, userID, uc)
	return uc.session.Items(), nil
}

func (cs *cartService) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) ([]cart.Item, error) {
	userID, err := cs.userID(ctx)
	if err != nil {
		return nil, err
	}
	uc := cs.cartFor(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	cs.ensureLoaded(ctx, userID, uc)
	uc.session.SetQuantity(productID, quantity)
	cs.persist(ctx, userID, uc)
	return uc.session.Items(), nil
}

// ClearCart is the one mutation that awaits the durable clear.
func (cs *cartService) ClearCart(ctx context.Context) error {
	userID, err := cs.userID(ctx)
	if err != nil {
		return err
	}
	uc := cs.cartFor(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.session.Clear()
	uc.loaded = true
	if cs.store == nil {
		return nil
	}
	if err := cs.store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear persisted cart: %w", err)
	}
	return nil
}

func (cs *cartService) ApplySnapshot(userID uuid.UUID, items []cart.Item) {
	cs.mu.Lock()
	uc, ok := cs.carts[userID]
	cs.mu.Unlock()
	if !ok {
		// No local state to reconcile; the next load will read the store.
		return
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.loaded = true
	uc.session.ApplySnapshot(items)
}

func (cs *cartService) VisibleCart(ctx context.Context, userID uuid.UUID) ([]cart.Item, bool, error) {
	uc := cs.cartFor(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	cs.ensureLoaded(ctx, userID, uc)
	return uc.session.Items(), uc.session.Temporary(), nil
}

// FinishCheckout empties the cart after a successful order. A temporary
// (buy-now) checkout only drops the held item; the persisted cart survives
// and is refreshed from the store in case another instance wrote to it while
// the hold suppressed snapshots.
func (cs *cartService) FinishCheckout(ctx context.Context, userID uuid.UUID) error {
	uc := cs.cartFor(userID)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.session.Temporary() {
		uc.session.ReleaseHold()
		if cs.store != nil {
			items, err := cs.store.Load(ctx, userID)
			if err != nil {
				cs.log.Warn("Failed to refresh cart after buy-now checkout", "user_id", userID.String(), "error", err)
				return nil
			}
			uc.session.ApplySnapshot(items)
		}
		return nil
	}
	uc.session.Clear()
	if cs.store == nil {
		return nil
	}
	if err := cs.store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear persisted cart: %w", err)
	}
	return nil
}
