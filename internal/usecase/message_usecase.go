package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"campus-market/internal/entity"
	"campus-market/internal/repo/persistent"
	"campus-market/pkg/logger"
	"campus-market/pkg/queue"

	"github.com/redis/go-redis/v9"
)

type MessageUseCase interface {
	StartConversation(itemID, buyerID string) (*entity.Conversation, error)
	ListConversations(userID string, limit, offset int) ([]*entity.Conversation, error)
	SendMessage(conversationID, senderID, content string) (*entity.Message, error)
	GetMessages(conversationID, userID string, limit, offset int) ([]*entity.Message, error)
	MarkConversationRead(conversationID, userID string) (int64, error)
}

type messageUseCase struct {
	messageRepo persistent.MessageRepository
	itemRepo    persistent.ItemRepository
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewMessageUseCase(
	messageRepo persistent.MessageRepository,
	itemRepo persistent.ItemRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) MessageUseCase {
	return &messageUseCase{
		messageRepo: messageRepo,
		itemRepo:    itemRepo,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *messageUseCase) StartConversation(itemID, buyerID string) (*entity.Conversation, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, fmt.Errorf("item not found")
	}
	if item.SellerID == buyerID {
		return nil, fmt.Errorf("cannot message yourself about your own item")
	}

	conversation, err := uc.messageRepo.GetOrCreateConversation(itemID, buyerID, item.SellerID)
	if err != nil {
		uc.logger.Error("Failed to create conversation: %v", err)
		return nil, fmt.Errorf("failed to start conversation: %w", err)
	}
	return conversation, nil
}

func (uc *messageUseCase) ListConversations(userID string, limit, offset int) ([]*entity.Conversation, error) {
	conversations, err := uc.messageRepo.GetConversationsForUser(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

func (uc *messageUseCase) SendMessage(conversationID, senderID, content string) (*entity.Message, error) {
	conversation, err := uc.messageRepo.GetConversation(conversationID)
	if err != nil {
		return nil, fmt.Errorf("conversation not found")
	}

	receiverID := conversation.SellerID
	if senderID == conversation.SellerID {
		receiverID = conversation.BuyerID
	} else if senderID != conversation.BuyerID {
		return nil, fmt.Errorf("not a participant in this conversation")
	}

	message, err := uc.messageRepo.CreateMessage(&entity.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
	})
	if err != nil {
		uc.logger.Error("Failed to create message: %v", err)
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	uc.publishRealtime(message)

	// Fanout an in-app notification; the unread-message email sweep handles
	// receivers who stay offline past the grace period
	if uc.queueClient != nil {
		task := &queue.Task{
			Type:    "new_message",
			UserID:  receiverID,
			Title:   "New message",
			Message: "You have a new message about a listing",
			Data: map[string]interface{}{
				"conversation_id": conversationID,
				"sender_id":       senderID,
			},
		}
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Warn("Failed to publish new_message task: %v", err)
		}
	}

	return message, nil
}

func (uc *messageUseCase) GetMessages(conversationID, userID string, limit, offset int) ([]*entity.Message, error) {
	conversation, err := uc.messageRepo.GetConversation(conversationID)
	if err != nil {
		return nil, fmt.Errorf("conversation not found")
	}
	if conversation.BuyerID != userID && conversation.SellerID != userID {
		return nil, fmt.Errorf("not a participant in this conversation")
	}

	messages, err := uc.messageRepo.GetMessages(conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return messages, nil
}

func (uc *messageUseCase) MarkConversationRead(conversationID, userID string) (int64, error) {
	conversation, err := uc.messageRepo.GetConversation(conversationID)
	if err != nil {
		return 0, fmt.Errorf("conversation not found")
	}
	if conversation.BuyerID != userID && conversation.SellerID != userID {
		return 0, fmt.Errorf("not a participant in this conversation")
	}

	count, err := uc.messageRepo.MarkConversationRead(conversationID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark conversation read: %w", err)
	}
	return count, nil
}

func (uc *messageUseCase) publishRealtime(message *entity.Message) {
	if uc.redisClient == nil {
		return
	}

	messageJSON, err := json.Marshal(message)
	if err != nil {
		uc.logger.Warn("Failed to marshal message for realtime push: %v", err)
		return
	}

	channel := fmt.Sprintf("conversations:%s", message.ConversationID)
	if err := uc.redisClient.Publish(context.Background(), channel, messageJSON).Err(); err != nil {
		uc.logger.Warn("Failed to publish message to channel %s: %v", channel, err)
	}
}
