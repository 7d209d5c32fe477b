package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a handmade item listed by its owner.
type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Images      []string        `json:"images" gorm:"serializer:json"`
	Category    string          `json:"category" gorm:"size:100;index"`
	OwnerID     uuid.UUID       `json:"owner_id" gorm:"type:char(36);index;not null"`
	Owner       *User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	IsActive    bool            `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
