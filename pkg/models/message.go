package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Conversation struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	ItemID    string    `gorm:"type:uuid;index" json:"item_id,omitempty"`
	BuyerID   string    `gorm:"type:uuid;not null;index" json:"buyer_id"`
	SellerID  string    `gorm:"type:uuid;not null;index" json:"seller_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID                    string    `gorm:"type:uuid;primary_key" json:"id"`
	ConversationID        string    `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderID              string    `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID            string    `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Content               string    `gorm:"not null" json:"content"`
	IsRead                bool      `gorm:"default:false;index" json:"is_read"`
	EmailNotificationSent bool      `gorm:"default:false;index" json:"email_notification_sent"`
	CreatedAt             time.Time `gorm:"index" json:"created_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
