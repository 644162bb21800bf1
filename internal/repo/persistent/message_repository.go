package persistent

import (
	"time"

	"campus-market/internal/entity"
	"campus-market/pkg/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	GetOrCreateConversation(itemID, buyerID, sellerID string) (*entity.Conversation, error)
	GetConversation(id string) (*entity.Conversation, error)
	GetConversationsForUser(userID string, limit, offset int) ([]*entity.Conversation, error)
	CreateMessage(message *entity.Message) (*entity.Message, error)
	GetMessages(conversationID string, limit, offset int) ([]*entity.Message, error)
	MarkConversationRead(conversationID, receiverID string) (int64, error)
	GetUnnotifiedBefore(cutoff time.Time, conversationID string, limit, offset int) ([]*entity.Message, error)
	MarkEmailNotified(messageID string) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) GetOrCreateConversation(itemID, buyerID, sellerID string) (*entity.Conversation, error) {
	var conversationModel models.Conversation
	err := r.db.Where("item_id = ? AND buyer_id = ? AND seller_id = ?", itemID, buyerID, sellerID).First(&conversationModel).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		conversationModel = models.Conversation{
			ItemID:   itemID,
			BuyerID:  buyerID,
			SellerID: sellerID,
		}
		if err := r.db.Create(&conversationModel).Error; err != nil {
			return nil, err
		}
	}
	return ToConversationEntity(&conversationModel), nil
}

func (r *messageRepository) GetConversation(id string) (*entity.Conversation, error) {
	var conversationModel models.Conversation
	if err := r.db.Where("id = ?", id).First(&conversationModel).Error; err != nil {
		return nil, err
	}
	return ToConversationEntity(&conversationModel), nil
}

func (r *messageRepository) GetConversationsForUser(userID string, limit, offset int) ([]*entity.Conversation, error) {
	query := r.db.Model(&models.Conversation{}).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("updated_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var conversationModels []models.Conversation
	if err := query.Find(&conversationModels).Error; err != nil {
		return nil, err
	}

	conversations := make([]*entity.Conversation, len(conversationModels))
	for i := range conversationModels {
		conversations[i] = ToConversationEntity(&conversationModels[i])
	}
	return conversations, nil
}

func (r *messageRepository) CreateMessage(message *entity.Message) (*entity.Message, error) {
	messageModel := &models.Message{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		ReceiverID:     message.ReceiverID,
		Content:        message.Content,
	}
	if err := r.db.Create(messageModel).Error; err != nil {
		return nil, err
	}

	// Bump the conversation so it sorts to the top of inboxes
	r.db.Model(&models.Conversation{}).Where("id = ?", message.ConversationID).Update("updated_at", time.Now())

	return ToMessageEntity(messageModel), nil
}

func (r *messageRepository) GetMessages(conversationID string, limit, offset int) ([]*entity.Message, error) {
	query := r.db.Model(&models.Message{}).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var messageModels []models.Message
	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	messages := make([]*entity.Message, len(messageModels))
	for i := range messageModels {
		messages[i] = ToMessageEntity(&messageModels[i])
	}
	return messages, nil
}

func (r *messageRepository) MarkConversationRead(conversationID, receiverID string) (int64, error) {
	result := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, receiverID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// GetUnnotifiedBefore selects messages still awaiting an email notification:
// unread, unflagged, and created at or before the cutoff.
func (r *messageRepository) GetUnnotifiedBefore(cutoff time.Time, conversationID string, limit, offset int) ([]*entity.Message, error) {
	query := r.db.Model(&models.Message{}).
		Where("is_read = ? AND email_notification_sent = ? AND created_at <= ?", false, false, cutoff).
		Order("created_at ASC")
	if conversationID != "" {
		query = query.Where("conversation_id = ?", conversationID)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var messageModels []models.Message
	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	messages := make([]*entity.Message, len(messageModels))
	for i := range messageModels {
		messages[i] = ToMessageEntity(&messageModels[i])
	}
	return messages, nil
}

func (r *messageRepository) MarkEmailNotified(messageID string) error {
	return r.db.Model(&models.Message{}).
		Where("id = ?", messageID).
		Update("email_notification_sent", true).Error
}
