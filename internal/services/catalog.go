package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/normalization"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/types"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

// ProductPage is one page of a filtered product listing.
type ProductPage struct {
	Products []*types.Product `json:"products"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]*types.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*types.Category, error)
	CreateCategory(ctx context.Context, category *types.Category) (*types.Category, error)
	UpdateCategory(ctx context.Context, category *types.Category) (*types.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListProducts(ctx context.Context, filter repos.ProductFilter) (*ProductPage, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*types.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*types.Product, error)
	CreateProduct(ctx context.Context, product *types.Product) (*types.Product, error)
	UpdateProduct(ctx context.Context, product *types.Product) (*types.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
	productRepo  repos.ProductRepo
	cache        *CatalogCache
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, categoryRepo repos.CategoryRepo, productRepo repos.ProductRepo, cache *CatalogCache) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{
		db:           db,
		log:          serviceLog,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        cache,
	}
}

func (cs *catalogService) ListCategories(ctx context.Context) ([]*types.Category, error) {
	if cs.cache != nil {
		if cached := cs.cache.Categories(); len(cached) > 0 {
			return cached, nil
		}
	}
	return cs.categoryRepo.List(ctx, nil)
}

func (cs *catalogService) GetCategory(ctx context.Context, id uuid.UUID) (*types.Category, error) {
	if cs.cache != nil {
		if c, ok := cs.cache.CategoryByID(id); ok {
			return c, nil
		}
	}
	found, err := cs.categoryRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("error fetching category: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (cs *catalogService) CreateCategory(ctx context.Context, category *types.Category) (*types.Category, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	category.ID = uuid.New()
	category.Slug = Slugify(category.Name)
	if _, err := cs.categoryRepo.Create(ctx, nil, []*types.Category{category}); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	cs.refreshCache(ctx)
	return category, nil
}

func (cs *catalogService) UpdateCategory(ctx context.Context, category *types.Category) (*types.Category, error) {
	if category.ID == uuid.Nil {
		return nil, fmt.Errorf("category id required")
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	category.Slug = Slugify(category.Name)
	if err := cs.categoryRepo.Update(ctx, nil, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	cs.refreshCache(ctx)
	return category, nil
}

func (cs *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := cs.categoryRepo.Delete(ctx, nil, []uuid.UUID{id}); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	cs.refreshCache(ctx)
	return nil
}

func (cs *catalogService) ListProducts(ctx context.Context, filter repos.ProductFilter) (*ProductPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	products, err := cs.productRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	total, err := cs.productRepo.Count(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting products: %w", err)
	}
	return &ProductPage{
		Products: products,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}, nil
}

func (cs *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	if cs.cache != nil {
		if p, ok := cs.cache.ProductByID(id); ok {
			return p, nil
		}
	}
	found, err := cs.productRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("error fetching product: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (cs *catalogService) GetProductBySlug(ctx context.Context, slug string) (*types.Product, error) {
	found, err := cs.productRepo.GetBySlugs(ctx, nil, []string{slug})
	if err != nil {
		return nil, fmt.Errorf("error fetching product: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (cs *catalogService) CreateProduct(ctx context.Context, product *types.Product) (*types.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.ID = uuid.New()
	product.Slug = Slugify(product.Name)
	if _, err := cs.productRepo.Create(ctx, nil, []*types.Product{product}); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	cs.refreshCache(ctx)
	return product, nil
}

func (cs *catalogService) UpdateProduct(ctx context.Context, product *types.Product) (*types.Product, error) {
	if product.ID == uuid.Nil {
		return nil, fmt.Errorf("product id required")
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.Slug = Slugify(product.Name)
	if err := cs.productRepo.Update(ctx, nil, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	cs.refreshCache(ctx)
	return product, nil
}

func (cs *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := cs.productRepo.Delete(ctx, nil, []uuid.UUID{id}); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	cs.refreshCache(ctx)
	return nil
}

func (cs *catalogService) refreshCache(ctx context.Context) {
	if cs.cache == nil {
		return
	}
	if err := cs.cache.Refresh(ctx); err != nil {
		cs.log.Warn("Catalog cache refresh after mutation failed", "error", err)
	}
}

func validateCategory(category *types.Category) error {
	if category == nil {
		return fmt.Errorf("no category given")
	}
	category.Name = normalization.TrimInputString(category.Name)
	if category.Name == "" {
		return fmt.Errorf("category name required")
	}
	return nil
}

func validateProduct(product *types.Product) error {
	if product == nil {
		return fmt.Errorf("no product given")
	}
	product.Name = normalization.TrimInputString(product.Name)
	if product.Name == "" {
		return fmt.Errorf("product name required")
	}
	if product.Price < 0 {
		return fmt.Errorf("product price cannot be negative")
	}
	if product.Stock < 0 {
		return fmt.Errorf("product stock cannot be negative")
	}
	return nil
}

var slugCleanRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify builds the URL slug used for category and product lookups.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugCleanRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
