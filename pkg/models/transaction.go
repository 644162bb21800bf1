package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
	TransactionStatusRefunded  TransactionStatus = "REFUNDED"
)

type Transaction struct {
	ID        string            `gorm:"type:uuid;primary_key" json:"id"`
	ItemID    string            `gorm:"type:uuid;not null;index" json:"item_id"`
	BuyerID   string            `gorm:"type:uuid;not null;index" json:"buyer_id"`
	Amount    int64             `gorm:"not null" json:"amount"` // Amount in cents
	Status    TransactionStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
