package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemStatus string

const (
	ItemStatusActive  ItemStatus = "active"
	ItemStatusSold    ItemStatus = "sold"
	ItemStatusRemoved ItemStatus = "removed"
)

type Item struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	SellerID    string         `gorm:"type:uuid;not null;index" json:"seller_id"`
	ClubID      string         `gorm:"type:uuid;index" json:"club_id,omitempty"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // Price in cents
	Category    string         `gorm:"index" json:"category"`
	Campus      string         `gorm:"index" json:"campus"`
	ImageURL    string         `json:"image_url"`
	Status      ItemStatus     `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
