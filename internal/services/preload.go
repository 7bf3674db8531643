package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/types"
)

// CatalogCache keeps the category and product lists in memory for synchronous
// by-id lookup. It is filled once at startup and refreshed after admin
// mutations; readers never hit the database.
type CatalogCache struct {
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
	productRepo  repos.ProductRepo

	mu         sync.RWMutex
	categories []*types.Category
	products   []*types.Product
	byCategory map[uuid.UUID]*types.Category
	byProduct  map[uuid.UUID]*types.Product
}

func NewCatalogCache(log *logger.Logger, categoryRepo repos.CategoryRepo, productRepo repos.ProductRepo) *CatalogCache {
	return &CatalogCache{
		log:          log.With("service", "CatalogCache"),
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		byCategory:   map[uuid.UUID]*types.Category{},
		byProduct:    map[uuid.UUID]*types.Product{},
	}
}

// Refresh loads both lists concurrently and swaps them in atomically.
func (cc *CatalogCache) Refresh(ctx context.Context) error {
	var categories []*types.Category
	var products []*types.Product

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		got, err := cc.categoryRepo.List(gctx, nil)
		if err != nil {
			return err
		}
		categories = got
		return nil
	})
	g.Go(func() error {
		got, err := cc.productRepo.List(gctx, nil, repos.ProductFilter{ActiveOnly: false})
		if err != nil {
			return err
		}
		products = got
		return nil
	})
	if err := g.Wait(); err != nil {
		cc.log.Warn("Catalog cache refresh failed", "error", err)
		return err
	}

	cc.set(categories, products)
	cc.log.Debug("Catalog cache refreshed", "categories", len(categories), "products", len(products))
	return nil
}

func (cc *CatalogCache) set(categories []*types.Category, products []*types.Product) {
	byCategory := make(map[uuid.UUID]*types.Category, len(categories))
	for _, c := range categories {
		byCategory[c.ID] = c
	}
	byProduct := make(map[uuid.UUID]*types.Product, len(products))
	for _, p := range products {
		byProduct[p.ID] = p
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.categories = categories
	cc.products = products
	cc.byCategory = byCategory
	cc.byProduct = byProduct
}

func (cc *CatalogCache) Categories() []*types.Category {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	out := make([]*types.Category, len(cc.categories))
	copy(out, cc.categories)
	return out
}

func (cc *CatalogCache) Products() []*types.Product {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	out := make([]*types.Product, len(cc.products))
	copy(out, cc.products)
	return out
}

func (cc *CatalogCache) CategoryByID(id uuid.UUID) (*types.Category, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	c, ok := cc.byCategory[id]
	return c, ok
}

func (cc *CatalogCache) ProductByID(id uuid.UUID) (*types.Product, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	p, ok := cc.byProduct[id]
	return p, ok
}
