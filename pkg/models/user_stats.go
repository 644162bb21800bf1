package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStats is the per-user balance ledger. PendingBalance holds sale
// proceeds still inside the escrow window; AvailableBalance is withdrawable.
type UserStats struct {
	ID               string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID           string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	PendingBalance   int64     `gorm:"default:0" json:"pending_balance"`   // Cents held in escrow
	AvailableBalance int64     `gorm:"default:0" json:"available_balance"` // Cents withdrawable
	TotalSales       int       `gorm:"default:0" json:"total_sales"`
	TotalPurchases   int       `gorm:"default:0" json:"total_purchases"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (s *UserStats) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
