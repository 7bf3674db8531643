package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderItem snapshots name and unit price at checkout time so later catalog
// edits do not rewrite order history.
type OrderItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Name       string         `gorm:"column:name;not null" json:"name"`
	UnitPrice  int64          `gorm:"column:unit_price;not null" json:"unit_price"`
	ImageURL   string         `gorm:"column:image_url" json:"image_url"`
	Quantity   int            `gorm:"column:quantity;not null" json:"quantity"`
	Attributes datatypes.JSON `gorm:"column:attributes;type:jsonb" json:"attributes"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (OrderItem) TableName() string { return "order_item" }
