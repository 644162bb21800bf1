package persistent

import (
	"campus-market/internal/entity"
	"campus-market/pkg/models"
)

func ToUserEntity(m *models.User) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Username:  m.Username,
		Password:  m.Password,
		Campus:    m.Campus,
		Role:      string(m.Role),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToItemEntity(m *models.Item) *entity.Item {
	if m == nil {
		return nil
	}

	return &entity.Item{
		ID:          m.ID,
		SellerID:    m.SellerID,
		ClubID:      m.ClubID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		Campus:      m.Campus,
		ImageURL:    m.ImageURL,
		Status:      entity.ItemStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToClubEntity(m *models.Club) *entity.Club {
	if m == nil {
		return nil
	}

	return &entity.Club{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Description: m.Description,
		Campus:      m.Campus,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToClubMemberEntity(m *models.ClubMember) *entity.ClubMember {
	if m == nil {
		return nil
	}

	return &entity.ClubMember{
		ID:       m.ID,
		ClubID:   m.ClubID,
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}

func ToConversationEntity(m *models.Conversation) *entity.Conversation {
	if m == nil {
		return nil
	}

	return &entity.Conversation{
		ID:        m.ID,
		ItemID:    m.ItemID,
		BuyerID:   m.BuyerID,
		SellerID:  m.SellerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToMessageEntity(m *models.Message) *entity.Message {
	if m == nil {
		return nil
	}

	return &entity.Message{
		ID:                    m.ID,
		ConversationID:        m.ConversationID,
		SenderID:              m.SenderID,
		ReceiverID:            m.ReceiverID,
		Content:               m.Content,
		IsRead:                m.IsRead,
		EmailNotificationSent: m.EmailNotificationSent,
		CreatedAt:             m.CreatedAt,
	}
}

func ToTransactionEntity(m *models.Transaction) *entity.Transaction {
	if m == nil {
		return nil
	}

	return &entity.Transaction{
		ID:        m.ID,
		ItemID:    m.ItemID,
		BuyerID:   m.BuyerID,
		Amount:    m.Amount,
		Status:    entity.TransactionStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Item:      ToItemEntity(m.Item),
	}
}

func ToBalanceEntity(m *models.UserStats) *entity.Balance {
	if m == nil {
		return nil
	}

	return &entity.Balance{
		ID:               m.ID,
		UserID:           m.UserID,
		PendingBalance:   m.PendingBalance,
		AvailableBalance: m.AvailableBalance,
		TotalSales:       m.TotalSales,
		TotalPurchases:   m.TotalPurchases,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToNotificationEntity(m *models.Notification) *entity.Notification {
	if m == nil {
		return nil
	}

	return &entity.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      m.Type,
		Title:     m.Title,
		Message:   m.Message,
		Data:      m.Data,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}
