package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID        string                 `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string                 `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string                 `gorm:"type:varchar(30);not null" json:"type"`
	Title     string                 `gorm:"not null" json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `gorm:"serializer:json" json:"data,omitempty"`
	IsRead    bool                   `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time              `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
