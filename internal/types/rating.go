package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Rating struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_rating_product_user" json:"product_id"`
	Product   *Product       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProductID;references:ID" json:"product,omitempty"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_rating_product_user" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Stars     int            `gorm:"column:stars;not null" json:"stars"`
	Comment   string         `gorm:"column:comment" json:"comment"`
	Images    datatypes.JSON `gorm:"column:images;type:jsonb" json:"images"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Rating) TableName() string { return "rating" }
