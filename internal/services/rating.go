package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/normalization"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/requestdata"
	"github.com/yungbote/storefront-backend/internal/types"
)

// ProductRatings bundles a product's reviews with the rollup shown on cards.
type ProductRatings struct {
	Ratings []*types.Rating        `json:"ratings"`
	Summary *repos.RatingAggregate `json:"summary"`
}

type RatingService interface {
	SubmitRating(ctx context.Context, productID uuid.UUID, stars int, comment string, images datatypes.JSON) (*types.Rating, error)
	GetProductRatings(ctx context.Context, productID uuid.UUID) (*ProductRatings, error)
	GetAggregates(ctx context.Context, productIDs []uuid.UUID) ([]*repos.RatingAggregate, error)
	DeleteRating(ctx context.Context, ratingID uuid.UUID) error
}

type ratingService struct {
	db          *gorm.DB
	log         *logger.Logger
	ratingRepo  repos.RatingRepo
	productRepo repos.ProductRepo

	mu    sync.RWMutex
	cache map[uuid.UUID]*ProductRatings
}

func NewRatingService(db *gorm.DB, log *logger.Logger, ratingRepo repos.RatingRepo, productRepo repos.ProductRepo) RatingService {
	serviceLog := log.With("service", "RatingService")
	return &ratingService{
		db:          db,
		log:         serviceLog,
		ratingRepo:  ratingRepo,
		productRepo: productRepo,
		cache:       map[uuid.UUID]*ProductRatings{},
	}
}

// SubmitRating upserts the caller's one rating per product. Resubmitting
// replaces stars, comment and images.
func (rs *ratingService) SubmitRating(ctx context.Context, productID uuid.UUID, stars int, comment string, images datatypes.JSON) (*types.Rating, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("unauthorized")
	}
	if stars < 1 || stars > 5 {
		return nil, fmt.Errorf("stars must be between 1 and 5")
	}
	products, pErr := rs.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if pErr != nil {
		return nil, fmt.Errorf("error fetching product: %w", pErr)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("product not found")
	}

	rating := &types.Rating{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    rd.UserID,
		Stars:     stars,
		Comment:   normalization.TrimInputString(comment),
		Images:    images,
		UpdatedAt: time.Now(),
	}
	if err := rs.ratingRepo.Upsert(ctx, nil, rating); err != nil {
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}
	rs.invalidate(productID)
	return rating, nil
}

func (rs *ratingService) GetProductRatings(ctx context.Context, productID uuid.UUID) (*ProductRatings, error) {
	rs.mu.RLock()
	cached, ok := rs.cache[productID]
	rs.mu.RUnlock()
	if ok {
		return cached, nil
	}

	ratings, rErr := rs.ratingRepo.GetByProductIDs(ctx, nil, []uuid.UUID{productID})
	if rErr != nil {
		return nil, fmt.Errorf("error fetching ratings: %w", rErr)
	}
	aggregates, aErr := rs.ratingRepo.AggregateByProductIDs(ctx, nil, []uuid.UUID{productID})
	if aErr != nil {
		return nil, fmt.Errorf("error aggregating ratings: %w", aErr)
	}
	summary := &repos.RatingAggregate{ProductID: productID}
	if len(aggregates) > 0 {
		summary = aggregates[0]
	}
	result := &ProductRatings{Ratings: ratings, Summary: summary}

	rs.mu.Lock()
	rs.cache[productID] = result
	rs.mu.Unlock()
	return result, nil
}

func (rs *ratingService) GetAggregates(ctx context.Context, productIDs []uuid.UUID) ([]*repos.RatingAggregate, error) {
	return rs.ratingRepo.AggregateByProductIDs(ctx, nil, productIDs)
}

// DeleteRating removes the caller's own rating, or any rating for admins.
func (rs *ratingService) DeleteRating(ctx context.Context, ratingID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("unauthorized")
	}
	found, err := rs.ratingRepo.GetByIDs(ctx, nil, []uuid.UUID{ratingID})
	if err != nil {
		return fmt.Errorf("error fetching rating: %w", err)
	}
	if len(found) == 0 {
		return fmt.Errorf("rating not found")
	}
	rating := found[0]
	if rating.UserID != rd.UserID && !rd.IsAdmin() {
		return fmt.Errorf("forbidden")
	}
	if err := rs.ratingRepo.Delete(ctx, nil, []uuid.UUID{ratingID}); err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	rs.invalidate(rating.ProductID)
	return nil
}

func (rs *ratingService) invalidate(productID uuid.UUID) {
	rs.mu.Lock()
	delete(rs.cache, productID)
	rs.mu.Unlock()
}
