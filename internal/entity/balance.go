package entity

import "time"

// Balance is a user's ledger: funds held in escrow plus funds withdrawable.
type Balance struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	PendingBalance   int64     `json:"pending_balance"`
	AvailableBalance int64     `json:"available_balance"`
	TotalSales       int       `json:"total_sales"`
	TotalPurchases   int       `json:"total_purchases"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
