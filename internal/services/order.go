package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/normalization"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/requestdata"
	"github.com/yungbote/storefront-backend/internal/types"
)

// OrderPage is one page of a filtered order listing.
type OrderPage struct {
	Orders []*types.Order `json:"orders"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// CheckoutInput carries the non-cart half of a checkout request.
type CheckoutInput struct {
	AddressID *uuid.UUID
	Note      string
}

type OrderService interface {
	Checkout(ctx context.Context, input CheckoutInput) (*types.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*types.Order, error)
	ListMyOrders(ctx context.Context, limit, offset int) (*OrderPage, error)
	ListOrders(ctx context.Context, filter repos.OrderFilter) (*OrderPage, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*types.Order, error)
	Stats(ctx context.Context) (*repos.OrderStats, error)
}

// allowedTransitions is the order lifecycle. Cancellation is only possible
// before shipping.
var allowedTransitions = map[string][]string{
	types.OrderStatusPending:   {types.OrderStatusPaid, types.OrderStatusCancelled},
	types.OrderStatusPaid:      {types.OrderStatusShipped, types.OrderStatusCancelled},
	types.OrderStatusShipped:   {types.OrderStatusDelivered},
	types.OrderStatusDelivered: {},
	types.OrderStatusCancelled: {},
}

type orderService struct {
	db          *gorm.DB
	log         *logger.Logger
	orderRepo   repos.OrderRepo
	addressRepo repos.AddressRepo
	productRepo repos.ProductRepo
	cartService CartService
}

func NewOrderService(
	db *gorm.DB,
	log *logger.Logger,
	orderRepo repos.OrderRepo,
	addressRepo repos.AddressRepo,
	productRepo repos.ProductRepo,
	cartService CartService,
) OrderService {
	serviceLog := log.With("service", "OrderService")
	return &orderService{
		db:          db,
		log:         serviceLog,
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
		productRepo: productRepo,
		cartService: cartService,
	}
}

// Checkout turns the visible cart (held item included) into a pending order.
// Unit prices are re-read from the catalog so a stale cart cannot lock in an
// old price, and the snapshot on the order item keeps history stable after
// later catalog edits.
func (os *orderService) Checkout(ctx context.Context, input CheckoutInput) (*types.Order, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("unauthorized")
	}

	items, _, cErr := os.cartService.VisibleCart(ctx, rd.UserID)
	if cErr != nil {
		return nil, fmt.Errorf("error reading cart: %w", cErr)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	if input.AddressID != nil {
		addresses, aErr := os.addressRepo.GetByIDs(ctx, nil, []uuid.UUID{*input.AddressID})
		if aErr != nil {
			return nil, fmt.Errorf("error fetching address: %w", aErr)
		}
		if len(addresses) == 0 || addresses[0].UserID != rd.UserID {
			return nil, fmt.Errorf("address not found")
		}
	}

	productIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, pErr := os.productRepo.GetByIDs(ctx, nil, productIDs)
	if pErr != nil {
		return nil, fmt.Errorf("error fetching products: %w", pErr)
	}
	byID := make(map[uuid.UUID]*types.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	order := &types.Order{
		ID:        uuid.New(),
		UserID:    rd.UserID,
		Status:    types.OrderStatusPending,
		AddressID: input.AddressID,
		Note:      normalization.TrimInputString(input.Note),
	}
	var total int64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity for product %s", item.ProductID)
		}
		product, ok := byID[item.ProductID]
		if !ok || !product.Active {
			return nil, fmt.Errorf("product %s is no longer available", item.ProductID)
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("insufficient stock for %s", product.Name)
		}
		order.Items = append(order.Items, types.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			ProductID:  product.ID,
			Name:       product.Name,
			UnitPrice:  product.Price,
			ImageURL:   product.ImageURL,
			Quantity:   item.Quantity,
			Attributes: item.Attributes,
		})
		total += product.Price * int64(item.Quantity)
	}
	order.TotalAmount = total

	if err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if err := os.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("failed to reserve stock: %w", err)
			}
		}
		if _, err := os.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := os.cartService.FinishCheckout(ctx, rd.UserID); err != nil {
		os.log.Warn("Failed to clear cart after checkout", "order_id", order.ID.String(), "error", err)
	}
	return order, nil
}

func (os *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*types.Order, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("unauthorized")
	}
	found, err := os.orderRepo.GetByIDs(ctx, nil, []uuid.UUID{orderID})
	if err != nil {
		return nil, fmt.Errorf("error fetching order: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("order not found")
	}
	order := found[0]
	if order.UserID != rd.UserID && !rd.IsAdmin() {
		return nil, fmt.Errorf("forbidden")
	}
	return order, nil
}

func (os *orderService) ListMyOrders(ctx context.Context, limit, offset int) (*OrderPage, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("unauthorized")
	}
	userID := rd.UserID
	return os.listPage(ctx, repos.OrderFilter{UserID: &userID, Limit: limit, Offset: offset})
}

func (os *orderService) ListOrders(ctx context.Context, filter repos.OrderFilter) (*OrderPage, error) {
	if filter.Status != "" {
		if _, ok := allowedTransitions[filter.Status]; !ok {
			return nil, fmt.Errorf("unknown order status %q", filter.Status)
		}
	}
	return os.listPage(ctx, filter)
}

func (os *orderService) listPage(ctx context.Context, filter repos.OrderFilter) (*OrderPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	orders, err := os.orderRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing orders: %w", err)
	}
	total, err := os.orderRepo.Count(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting orders: %w", err)
	}
	return &OrderPage{Orders: orders, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (os *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*types.Order, error) {
	if _, ok := allowedTransitions[status]; !ok {
		return nil, fmt.Errorf("unknown order status %q", status)
	}
	var updated *types.Order
	err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, fErr := os.orderRepo.GetByIDs(ctx, tx, []uuid.UUID{orderID})
		if fErr != nil {
			return fmt.Errorf("error fetching order: %w", fErr)
		}
		if len(found) == 0 {
			return fmt.Errorf("order not found")
		}
		order := found[0]
		if !transitionAllowed(order.Status, status) {
			return fmt.Errorf("cannot move order from %q to %q", order.Status, status)
		}
		if uErr := os.orderRepo.UpdateStatus(ctx, tx, orderID, status); uErr != nil {
			return fmt.Errorf("failed to update order status: %w", uErr)
		}
		// Cancelling puts the reserved stock back.
		if status == types.OrderStatusCancelled {
			for _, item := range order.Items {
				if sErr := os.productRepo.DecrementStock(ctx, tx, item.ProductID, -item.Quantity); sErr != nil {
					return fmt.Errorf("failed to restore stock: %w", sErr)
				}
			}
		}
		order.Status = status
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (os *orderService) Stats(ctx context.Context) (*repos.OrderStats, error) {
	return os.orderRepo.Stats(ctx, nil)
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
