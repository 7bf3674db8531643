package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Status      string      `gorm:"column:status;not null;default:'pending';index" json:"status"`
	TotalAmount int64       `gorm:"column:total_amount;not null" json:"total_amount"`
	AddressID   *uuid.UUID  `gorm:"type:uuid" json:"address_id,omitempty"`
	Address     *Address    `gorm:"constraint:OnDelete:SET NULL;foreignKey:AddressID;references:ID" json:"address,omitempty"`
	Note        string      `gorm:"column:note" json:"note"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;references:ID" json:"items,omitempty"`
	CreatedAt   time.Time   `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Order) TableName() string { return "order" }
