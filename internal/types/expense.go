package types

import (
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CategoryID  *uuid.UUID       `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category    *ExpenseCategory `gorm:"constraint:OnDelete:SET NULL;foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Title       string           `gorm:"column:title;not null" json:"title"`
	// Amount in the smallest currency unit (cents).
	Amount      int64     `gorm:"column:amount;not null" json:"amount"`
	Note        string    `gorm:"column:note" json:"note"`
	SpentAt     time.Time `gorm:"column:spent_at;not null;index" json:"spent_at"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedBy   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:CreatedByID;references:ID" json:"created_by,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Expense) TableName() string { return "expense" }
