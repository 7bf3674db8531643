package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CategoryID  *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category    *Category      `gorm:"constraint:OnDelete:SET NULL;foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Slug        string         `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Description string         `gorm:"column:description" json:"description"`
	// Price is stored in the smallest currency unit (cents).
	Price      int64          `gorm:"column:price;not null" json:"price"`
	ImageURL   string         `gorm:"column:image_url" json:"image_url"`
	Images     datatypes.JSON `gorm:"column:images;type:jsonb" json:"images"`
	Stock      int            `gorm:"column:stock;not null;default:0" json:"stock"`
	Attributes datatypes.JSON `gorm:"column:attributes;type:jsonb" json:"attributes"`
	Active     bool           `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Product) TableName() string { return "product" }
