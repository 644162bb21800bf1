package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Club struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID     string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`
	Description string         `json:"description"`
	Campus      string         `gorm:"index" json:"campus"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type ClubMember struct {
	ID       string    `gorm:"type:uuid;primary_key" json:"id"`
	ClubID   string    `gorm:"type:uuid;not null;index:idx_club_member,unique" json:"club_id"`
	UserID   string    `gorm:"type:uuid;not null;index:idx_club_member,unique" json:"user_id"`
	Role     string    `gorm:"type:varchar(20);default:'member'" json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func (c *Club) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (m *ClubMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	return nil
}
