package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/normalization"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/requestdata"
	"github.com/yungbote/storefront-backend/internal/types"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error)
	UpdateAvatarFromImage(ctx context.Context, raw []byte) (*types.User, error)
	SetRole(ctx context.Context, userID uuid.UUID, role string) error

	ListAddresses(ctx context.Context) ([]*types.Address, error)
	CreateAddress(ctx context.Context, address *types.Address) (*types.Address, error)
	UpdateAddress(ctx context.Context, address *types.Address) (*types.Address, error)
	DeleteAddress(ctx context.Context, addressID uuid.UUID) error
	SetDefaultAddress(ctx context.Context, addressID uuid.UUID) error
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	addressRepo   repos.AddressRepo
	avatarService AvatarService
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	addressRepo repos.AddressRepo,
	avatarService AvatarService,
) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		addressRepo:   addressRepo,
		avatarService: avatarService,
	}
}

func (us *userService) currentUser(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("unauthorized")
	}
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user not found")
	}
	return users[0], nil
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	return us.currentUser(ctx)
}

// UpdateName also regenerates the initials avatar, but only when the user
// never uploaded a photo of their own.
func (us *userService) UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error) {
	user, err := us.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	firstName = normalization.TrimInputString(firstName)
	lastName = normalization.TrimInputString(lastName)
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("first and last name required")
	}

	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if uErr := us.userRepo.UpdateName(ctx, tx, user.ID, firstName, lastName); uErr != nil {
			return fmt.Errorf("failed to update name: %w", uErr)
		}
		user.FirstName = firstName
		user.LastName = lastName
		if us.avatarService != nil && isGeneratedAvatar(user.AvatarBucketKey) {
			if aErr := us.avatarService.CreateAndUploadUserAvatar(ctx, tx, user); aErr != nil {
				us.log.Warn("Failed to regenerate avatar after rename (continuing)", "error", aErr)
				return nil
			}
			if fErr := us.userRepo.UpdateAvatarFields(ctx, tx, user.ID, user.AvatarBucketKey, user.AvatarURL); fErr != nil {
				return fmt.Errorf("failed to store avatar fields: %w", fErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (us *userService) UpdateAvatarFromImage(ctx context.Context, raw []byte) (*types.User, error) {
	user, err := us.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if us.avatarService == nil {
		return nil, fmt.Errorf("avatar uploads are not configured")
	}
	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if aErr := us.avatarService.CreateAndUploadUserAvatarFromImage(ctx, tx, user, raw); aErr != nil {
			return aErr
		}
		return us.userRepo.UpdateAvatarFields(ctx, tx, user.ID, user.AvatarBucketKey, user.AvatarURL)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SetRole promotes or demotes another user. Only superadmins get here (the
// router enforces it); a superadmin still cannot demote themselves.
func (us *userService) SetRole(ctx context.Context, userID uuid.UUID, role string) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("unauthorized")
	}
	if role != types.RoleUser && role != types.RoleAdmin && role != types.RoleSuperAdmin {
		return fmt.Errorf("unknown role %q", role)
	}
	if userID == rd.UserID {
		return fmt.Errorf("cannot change your own role")
	}
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return fmt.Errorf("error fetching user: %w", err)
	}
	if len(users) == 0 {
		return fmt.Errorf("user not found")
	}
	return us.userRepo.UpdateRole(ctx, nil, userID, role)
}

func (us *userService) ListAddresses(ctx context.Context) ([]*types.Address, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("unauthorized")
	}
	return us.addressRepo.ListByUserID(ctx, nil, rd.UserID)
}

func (us *userService) CreateAddress(ctx context.Context, address *types.Address) (*types.Address, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("unauthorized")
	}
	if err := validateAddress(address); err != nil {
		return nil, err
	}
	address.ID = uuid.New()
	address.UserID = rd.UserID

	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, lErr := us.addressRepo.ListByUserID(ctx, tx, rd.UserID)
		if lErr != nil {
			return fmt.Errorf("error listing addresses: %w", lErr)
		}
		// First address becomes the default automatically.
		if len(existing) == 0 {
			address.IsDefault = true
		} else if address.IsDefault {
			if cErr := us.addressRepo.ClearDefault(ctx, tx, rd.UserID); cErr != nil {
				return fmt.Errorf("failed to clear default address: %w", cErr)
			}
		}
		if _, cErr := us.addressRepo.Create(ctx, tx, []*types.Address{address}); cErr != nil {
			return fmt.Errorf("failed to create address: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (us *userService) UpdateAddress(ctx context.Context, address *types.Address) (*types.Address, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("unauthorized")
	}
	if address == nil || address.ID == uuid.Nil {
		return nil, fmt.Errorf("address id required")
	}
	if err := validateAddress(address); err != nil {
		return nil, err
	}
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, fErr := us.addressRepo.GetByIDs(ctx, tx, []uuid.UUID{address.ID})
		if fErr != nil {
			return fmt.Errorf("error fetching address: %w", fErr)
		}
		if len(existing) == 0 || existing[0].UserID != rd.UserID {
			return fmt.Errorf("address not found")
		}
		address.UserID = rd.UserID
		address.CreatedAt = existing[0].CreatedAt
		if address.IsDefault && !existing[0].IsDefault {
			if cErr := us.addressRepo.ClearDefault(ctx, tx, rd.UserID); cErr != nil {
				return fmt.Errorf("failed to clear default address: %w", cErr)
			}
		}
		if uErr := us.addressRepo.Update(ctx, tx, address); uErr != nil {
			return fmt.Errorf("failed to update address: %w", uErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (us *userService) DeleteAddress(ctx context.Context, addressID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("unauthorized")
	}
	existing, err := us.addressRepo.GetByIDs(ctx, nil, []uuid.UUID{addressID})
	if err != nil {
		return fmt.Errorf("error fetching address: %w", err)
	}
	if len(existing) == 0 || existing[0].UserID != rd.UserID {
		return fmt.Errorf("address not found")
	}
	return us.addressRepo.Delete(ctx, nil, []uuid.UUID{addressID})
}

func (us *userService) SetDefaultAddress(ctx context.Context, addressID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("unauthorized")
	}
	return us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, fErr := us.addressRepo.GetByIDs(ctx, tx, []uuid.UUID{addressID})
		if fErr != nil {
			return fmt.Errorf("error fetching address: %w", fErr)
		}
		if len(existing) == 0 || existing[0].UserID != rd.UserID {
			return fmt.Errorf("address not found")
		}
		if cErr := us.addressRepo.ClearDefault(ctx, tx, rd.UserID); cErr != nil {
			return fmt.Errorf("failed to clear default address: %w", cErr)
		}
		address := existing[0]
		address.IsDefault = true
		return us.addressRepo.Update(ctx, tx, address)
	})
}

// isGeneratedAvatar reports whether the stored avatar is one we synthesized
// from initials. Uploaded photos get a distinct key prefix and survive renames.
func isGeneratedAvatar(bucketKey string) bool {
	return bucketKey == "" || strings.HasPrefix(bucketKey, "user_avatar/")
}

func validateAddress(address *types.Address) error {
	if address == nil {
		return fmt.Errorf("no address given")
	}
	address.Line1 = normalization.TrimInputString(address.Line1)
	address.City = normalization.TrimInputString(address.City)
	address.PostalCode = normalization.TrimInputString(address.PostalCode)
	address.Country = normalization.TrimInputString(address.Country)
	if address.Line1 == "" || address.City == "" || address.PostalCode == "" || address.Country == "" {
		return fmt.Errorf("line1, city, postal code and country are required")
	}
	return nil
}
