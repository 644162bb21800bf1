package entity

import "time"

type ItemStatus string

const (
	ItemStatusActive  ItemStatus = "active"
	ItemStatusSold    ItemStatus = "sold"
	ItemStatusRemoved ItemStatus = "removed"
)

type Item struct {
	ID          string     `json:"id"`
	SellerID    string     `json:"seller_id"`
	ClubID      string     `json:"club_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	Category    string     `json:"category"`
	Campus      string     `json:"campus"`
	ImageURL    string     `json:"image_url"`
	Status      ItemStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
