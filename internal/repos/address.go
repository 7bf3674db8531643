package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

type AddressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, addresses []*types.Address) ([]*types.Address, error)
	Update(ctx context.Context, tx *gorm.DB, address *types.Address) error
	Delete(ctx context.Context, tx *gorm.DB, addressIDs []uuid.UUID) error
	GetByIDs(ctx context.Context, tx *gorm.DB, addressIDs []uuid.UUID) ([]*types.Address, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Address, error)
	ClearDefault(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type addressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAddressRepo(db *gorm.DB, baseLog *logger.Logger) AddressRepo {
	repoLog := baseLog.With("repo", "AddressRepo")
	return &addressRepo{db: db, log: repoLog}
}

func (ar *addressRepo) Create(ctx context.Context, tx *gorm.DB, addresses []*types.Address) ([]*types.Address, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(addresses) == 0 {
		return []*types.Address{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (ar *addressRepo) Update(ctx context.Context, tx *gorm.DB, address *types.Address) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).Save(address).Error
}

func (ar *addressRepo) Delete(ctx context.Context, tx *gorm.DB, addressIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(addressIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", addressIDs).
		Delete(&types.Address{}).Error
}

func (ar *addressRepo) GetByIDs(ctx context.Context, tx *gorm.DB, addressIDs []uuid.UUID) ([]*types.Address, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Address
	if len(addressIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", addressIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *addressRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Address, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Address
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *addressRepo) ClearDefault(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
