package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

// RatingAggregate is the count/average rollup shown on product cards.
type RatingAggregate struct {
	ProductID uuid.UUID `json:"product_id"`
	Count     int64     `json:"count"`
	Average   float64   `json:"average"`
}

type RatingRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rating *types.Rating) error
	GetByIDs(ctx context.Context, tx *gorm.DB, ratingIDs []uuid.UUID) ([]*types.Rating, error)
	GetByProductIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Rating, error)
	Delete(ctx context.Context, tx *gorm.DB, ratingIDs []uuid.UUID) error
	AggregateByProductIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*RatingAggregate, error)
}

type ratingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	repoLog := baseLog.With("repo", "RatingRepo")
	return &ratingRepo{db: db, log: repoLog}
}

func (rr *ratingRepo) Upsert(ctx context.Context, tx *gorm.DB, rating *types.Rating) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"stars", "comment", "images", "updated_at"}),
		}).
		Create(rating).Error
}

func (rr *ratingRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ratingIDs []uuid.UUID) ([]*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Rating
	if len(ratingIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ratingIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *ratingRepo) GetByProductIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Rating
	if len(productIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("User").
		Where("product_id IN ?", productIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *ratingRepo) Delete(ctx context.Context, tx *gorm.DB, ratingIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(ratingIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ratingIDs).
		Delete(&types.Rating{}).Error
}

func (rr *ratingRepo) AggregateByProductIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*RatingAggregate, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*RatingAggregate
	if len(productIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Rating{}).
		Select("product_id, COUNT(*) AS count, AVG(stars) AS average").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
