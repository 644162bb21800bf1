package entity

import "time"

type Conversation struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id,omitempty"`
	BuyerID   string    `json:"buyer_id"`
	SellerID  string    `json:"seller_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID                    string    `json:"id"`
	ConversationID        string    `json:"conversation_id"`
	SenderID              string    `json:"sender_id"`
	ReceiverID            string    `json:"receiver_id"`
	Content               string    `json:"content"`
	IsRead                bool      `json:"is_read"`
	EmailNotificationSent bool      `json:"email_notification_sent"`
	CreatedAt             time.Time `json:"created_at"`
}
