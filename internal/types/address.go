package types

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Label      string    `gorm:"column:label" json:"label"`
	Line1      string    `gorm:"column:line1;not null" json:"line1"`
	Line2      string    `gorm:"column:line2" json:"line2"`
	City       string    `gorm:"column:city;not null" json:"city"`
	State      string    `gorm:"column:state" json:"state"`
	PostalCode string    `gorm:"column:postal_code;not null" json:"postal_code"`
	Country    string    `gorm:"column:country;not null" json:"country"`
	Phone      string    `gorm:"column:phone" json:"phone"`
	IsDefault  bool      `gorm:"column:is_default;not null;default:false" json:"is_default"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Address) TableName() string {
	return "address"
}
